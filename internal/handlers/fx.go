package handlers

import (
	"net/http"

	"github.com/khaohom/savings/internal/services"
)

type FXHandler struct {
	service services.PortfolioService
}

func NewFXHandler(service services.PortfolioService) *FXHandler {
	return &FXHandler{service: service}
}

// HandleCurrentRate handles GET /api/current-exchange-rate
// @Summary Get current USD/THB rate
// @Description Fetch the current exchange rate; falls back to a fixed rate with a note when the provider is unavailable
// @Tags fx
// @Produce json
// @Success 200 {object} models.ExchangeRate
// @Router /current-exchange-rate [get]
func (h *FXHandler) HandleCurrentRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.CurrentRate(r.Context()))
}
