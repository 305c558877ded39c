package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khaohom/savings/internal/db"
	"github.com/khaohom/savings/internal/models"
	"github.com/khaohom/savings/internal/repositories"
)

func setupLedgerDB(t *testing.T) *db.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database := &db.DB{DB: gdb}
	require.NoError(t, database.Migrate())

	seedAssets(t, database)
	return database
}

func seedAssets(t *testing.T, database *db.DB) {
	t.Helper()

	assets := []*models.Asset{
		{AssetName: "BTC", DisplayName: "Bitcoin", CAGRPercent: 25},
		{AssetName: "GOLD", DisplayName: "Gold", CAGRPercent: 8},
		{AssetName: "USD", DisplayName: "US Dollar", CAGRPercent: 4},
	}
	for _, a := range assets {
		require.NoError(t, database.Create(a).Error)
	}
}

func newTestSyncService(t *testing.T, database *db.DB, secret string) SyncService {
	t.Helper()
	return NewSyncService(repositories.NewLedgerRepository(database), secret, zap.NewNop())
}

func countTransactions(t *testing.T, database *db.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.Model(&models.Transaction{}).Count(&count).Error)
	return count
}
