package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/khaohom/savings/internal/errors"
	"github.com/khaohom/savings/internal/models"
	"github.com/khaohom/savings/internal/services"
)

type SyncHandler struct {
	service services.SyncService
	logger  *zap.Logger
}

func NewSyncHandler(service services.SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{service: service, logger: logger}
}

// HandleSync handles POST /api/sync-payments
// @Summary Sync transaction batch
// @Description Upsert a batch of externally sourced transaction rows; rows failing validation are skipped and reported
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} models.SyncReport "Full success"
// @Success 207 {object} models.SyncReport "Partial success with row errors"
// @Failure 400 {string} string "Malformed batch"
// @Failure 401 {string} string "Invalid credential"
// @Failure 500 {string} string "Storage failure, batch rolled back"
// @Router /sync-payments [post]
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	report, err := h.service.Sync(r.Context(), req.Credential, req.Records)
	if err != nil {
		var uerr *apperrors.ErrUnauthorized
		var berr *apperrors.ErrBadRequest
		var serr *apperrors.ErrStorage
		switch {
		case errors.As(err, &uerr):
			writeError(w, http.StatusUnauthorized, uerr.Message)
		case errors.As(err, &berr):
			writeError(w, http.StatusBadRequest, berr.Message)
		case errors.As(err, &serr):
			h.logger.Error("sync batch failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to sync payments")
		default:
			h.logger.Error("sync batch failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to sync payments")
		}
		return
	}

	if report.Partial() {
		writeJSON(w, http.StatusMultiStatus, map[string]interface{}{
			"message":  fmt.Sprintf("Synced %d payments with %d errors", report.Synced(), len(report.Errors)),
			"inserted": report.Inserted,
			"updated":  report.Updated,
			"errors":   report.Errors,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  fmt.Sprintf("Synced %d payments successfully", report.Synced()),
		"inserted": report.Inserted,
		"updated":  report.Updated,
	})
}
