package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khaohom/savings/internal/db"
	"github.com/khaohom/savings/internal/models"
)

func setupRepo(t *testing.T) (LedgerRepository, *db.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database := &db.DB{DB: gdb}
	require.NoError(t, database.Migrate())
	require.NoError(t, database.Create(&models.Asset{AssetName: "BTC", DisplayName: "Bitcoin", CAGRPercent: 25}).Error)

	return NewLedgerRepository(database), database
}

func ledgerRow(day string, amount, usdValue float64) *models.Transaction {
	d, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		panic(err)
	}
	return &models.Transaction{
		TransactionDate: d,
		Amount:          decimal.NewFromFloat(amount),
		AssetName:       "BTC",
		USDValueAtTx:    decimal.NewFromFloat(usdValue),
		USDCumulative:   decimal.NewFromFloat(usdValue),
		USDTHBRate:      decimal.NewFromInt(33),
	}
}

// A database-level failure partway through a batch must leave no trace of
// the rows written before it.
func TestUpsertBatchRollsBackOnStorageError(t *testing.T) {
	repo, database := setupRepo(t)

	first := ledgerRow("2023-01-01", 1, 20000)
	first.ID = "fixed-id"
	second := ledgerRow("2023-02-01", 2, 40000)
	second.ID = "fixed-id"

	// Distinct natural keys, shared primary key: the first insert lands,
	// the second violates the key constraint mid-transaction.
	_, _, err := repo.UpsertBatch(context.Background(), []*models.Transaction{first, second})
	require.Error(t, err)

	var count int64
	require.NoError(t, database.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
