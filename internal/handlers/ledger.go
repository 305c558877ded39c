package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/khaohom/savings/internal/services"
)

type LedgerHandler struct {
	service services.PortfolioService
	logger  *zap.Logger
}

func NewLedgerHandler(service services.PortfolioService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, logger: logger}
}

// HandleAssets handles GET /api/assets
// @Summary List assets
// @Description Get the asset catalog with CAGR values
// @Tags assets
// @Produce json
// @Success 200 {array} models.Asset
// @Failure 500 {string} string "Internal server error"
// @Router /assets [get]
func (h *LedgerHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.ListAssets(r.Context())
	if err != nil {
		h.logger.Error("failed to list assets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// HandlePayments handles GET /api/payments
// @Summary List transactions
// @Description Get all transactions enriched with asset display names
// @Tags payments
// @Produce json
// @Success 200 {array} models.TransactionDetail
// @Failure 500 {string} string "Internal server error"
// @Router /payments [get]
func (h *LedgerHandler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListTransactions(r.Context())
	if err != nil {
		h.logger.Error("failed to list payments", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
