package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/khaohom/savings/internal/services"
)

const (
	minProjectionYears = 1
	maxProjectionYears = 30
)

type ReportingHandler struct {
	service services.PortfolioService
	logger  *zap.Logger
}

func NewReportingHandler(service services.PortfolioService, logger *zap.Logger) *ReportingHandler {
	return &ReportingHandler{service: service, logger: logger}
}

// HandleHoldings handles GET /api/reports/holdings
// @Summary Get holdings
// @Description Get current per-asset positions valued with live quotes
// @Tags reports
// @Produce json
// @Success 200 {array} models.Holding
// @Failure 500 {string} string "Internal server error"
// @Router /reports/holdings [get]
func (h *ReportingHandler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.service.Holdings(r.Context())
	if err != nil {
		h.logger.Error("failed to compute holdings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to compute holdings")
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

// HandleSummary handles GET /api/reports/summary
// @Summary Get portfolio summary
// @Description Get total value, cost, profit and APY across the portfolio
// @Tags reports
// @Produce json
// @Success 200 {object} models.PortfolioSummary
// @Failure 500 {string} string "Internal server error"
// @Router /reports/summary [get]
func (h *ReportingHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to compute summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleChart handles GET /api/reports/chart
// @Summary Get value series
// @Description Get the chronological cumulative value series, one point per transaction
// @Tags reports
// @Produce json
// @Success 200 {array} models.ChartPoint
// @Failure 500 {string} string "Internal server error"
// @Router /reports/chart [get]
func (h *ReportingHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.ChartSeries(r.Context())
	if err != nil {
		h.logger.Error("failed to compute chart series", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to compute chart series")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleProjections handles GET /api/reports/projections?years=N
// @Summary Get projections
// @Description Compound each asset's current value forward by its assumed CAGR
// @Tags reports
// @Produce json
// @Param years query int true "Projection horizon in years (1-30)"
// @Success 200 {array} models.Projection
// @Failure 400 {string} string "Invalid years"
// @Failure 500 {string} string "Internal server error"
// @Router /reports/projections [get]
func (h *ReportingHandler) HandleProjections(w http.ResponseWriter, r *http.Request) {
	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil || years < minProjectionYears || years > maxProjectionYears {
		writeError(w, http.StatusBadRequest, "years must be an integer between 1 and 30")
		return
	}

	projections, err := h.service.Projections(r.Context(), years)
	if err != nil {
		h.logger.Error("failed to compute projections", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to compute projections")
		return
	}
	writeJSON(w, http.StatusOK, projections)
}
