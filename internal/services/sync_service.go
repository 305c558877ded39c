package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/khaohom/savings/internal/errors"
	"github.com/khaohom/savings/internal/models"
	"github.com/khaohom/savings/internal/repositories"
)

const syncTimeout = 15 * time.Second

type syncService struct {
	repo   repositories.LedgerRepository
	secret string
	logger *zap.Logger
}

// NewSyncService creates a new sync service guarding writes with the given
// pre-shared secret.
func NewSyncService(repo repositories.LedgerRepository, secret string, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, secret: secret, logger: logger}
}

// Sync validates the credential and batch shape, then upserts every valid
// row inside one storage transaction. Rows that fail validation are skipped
// and reported; a database error rolls the whole batch back.
func (s *syncService) Sync(ctx context.Context, credential string, records []models.RawRecord) (*models.SyncReport, error) {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(credential), []byte(s.secret)) != 1 {
		return nil, &apperrors.ErrUnauthorized{Message: "Invalid password"}
	}

	if len(records) == 0 {
		return nil, &apperrors.ErrBadRequest{Message: "Invalid payments data"}
	}

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	assets, err := s.repo.ListAssets(ctx)
	if err != nil {
		return nil, &apperrors.ErrStorage{Err: err}
	}
	known := make(map[string]bool, len(assets))
	for _, a := range assets {
		known[a.AssetName] = true
	}

	report := &models.SyncReport{}
	rows := make([]*models.Transaction, 0, len(records))
	for i, record := range records {
		row, verr := buildRow(record, known)
		if verr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", i+1, verr.Message))
			continue
		}
		rows = append(rows, row)
	}

	inserted, updated, err := s.repo.UpsertBatch(ctx, rows)
	if err != nil {
		return nil, &apperrors.ErrStorage{Err: err}
	}
	report.Inserted = inserted
	report.Updated = updated

	s.logger.Info("sync batch committed",
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
		zap.Int("skipped", len(report.Errors)))

	return report, nil
}

// buildRow validates one raw record and shapes it into a ledger row.
// Returned errors are row-level: the caller collects them and moves on.
func buildRow(record models.RawRecord, knownAssets map[string]bool) (*models.Transaction, *apperrors.ErrValidation) {
	if record.Date == "" || record.Amount == nil || record.Asset == "" ||
		record.USDValue == nil || record.USDCumulative == nil || record.USDTHBRate == nil {
		return nil, &apperrors.ErrValidation{Message: "Missing required fields"}
	}

	date, err := time.ParseInLocation("2006-01-02", record.Date, time.UTC)
	if err != nil {
		return nil, &apperrors.ErrValidation{Field: "date", Message: fmt.Sprintf("Invalid date '%s'", record.Date)}
	}

	symbol := strings.ToUpper(record.Asset)
	if !knownAssets[symbol] {
		return nil, &apperrors.ErrValidation{Field: "asset_symbol", Message: fmt.Sprintf("Asset '%s' not found in database", record.Asset)}
	}

	status := models.StatusNotPaid
	if record.Status != nil && *record.Status != "" {
		status = *record.Status
	}

	row := &models.Transaction{
		TransactionDate: date,
		Amount:          *record.Amount,
		AssetName:       symbol,
		THBPrice:        record.THBPrice,
		USDValueAtTx:    *record.USDValue,
		USDCumulative:   *record.USDCumulative,
		Reason:          record.Reason,
		Status:          status,
		USDTHBRate:      *record.USDTHBRate,
	}
	if err := row.Validate(); err != nil {
		return nil, &apperrors.ErrValidation{Message: err.Error()}
	}
	return row, nil
}
