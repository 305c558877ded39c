package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/khaohom/savings/internal/db"
	"github.com/khaohom/savings/internal/models"
)

type ledgerRepository struct {
	db *db.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(database *db.DB) LedgerRepository {
	return &ledgerRepository{db: database}
}

func (r *ledgerRepository) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	if err := r.db.WithContext(ctx).Order("asset_name").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (r *ledgerRepository) GetAssetBySymbol(ctx context.Context, symbol string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, "asset_name = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	if err := r.db.WithContext(ctx).Order("transaction_date ASC, synced_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *ledgerRepository) ListTransactionDetails(ctx context.Context) ([]*models.TransactionDetail, error) {
	// LEFT JOIN keeps rows whose symbol has no catalog entry; the raw
	// symbol stands in for the display name.
	var details []*models.TransactionDetail
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("savings_transactions.*, COALESCE(assets.display_name, savings_transactions.asset_name) AS asset_display_name").
		Joins("LEFT JOIN assets ON assets.asset_name = savings_transactions.asset_name").
		Order("savings_transactions.transaction_date DESC").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction details: %w", err)
	}
	return details, nil
}

func (r *ledgerRepository) UpsertBatch(ctx context.Context, rows []*models.Transaction) (int, int, error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	var inserted, updated int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.Transaction
			err := tx.Where(
				"transaction_date = ? AND amount = ? AND asset_name = ? AND usd_value_at_tx = ?",
				row.TransactionDate, row.Amount, row.AssetName, row.USDValueAtTx,
			).First(&existing).Error

			switch {
			case err == nil:
				updates := map[string]interface{}{
					"thb_price":      row.THBPrice,
					"usd_cumulative": row.USDCumulative,
					"reason":         row.Reason,
					"status":         row.Status,
					"usdthb_rate":    row.USDTHBRate,
					"updated_at":     time.Now(),
				}
				if err := tx.Model(&models.Transaction{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("failed to update transaction: %w", err)
				}
				updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(row).Error; err != nil {
					return fmt.Errorf("failed to insert transaction: %w", err)
				}
				inserted++
			default:
				return fmt.Errorf("failed to look up transaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return inserted, updated, nil
}
