package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khaohom/savings/internal/db"
	"github.com/khaohom/savings/internal/models"
	"github.com/khaohom/savings/internal/repositories"
	"github.com/khaohom/savings/internal/services"
)

func setupPortfolioService(t *testing.T) services.PortfolioService {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database := &db.DB{DB: gdb}
	require.NoError(t, database.Migrate())

	require.NoError(t, database.Create(&models.Asset{AssetName: "BTC", DisplayName: "Bitcoin", CAGRPercent: 25}).Error)
	require.NoError(t, database.Create(&models.Transaction{
		TransactionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(1),
		AssetName:       "BTC",
		USDValueAtTx:    decimal.NewFromInt(20000),
		USDCumulative:   decimal.NewFromInt(20000),
		USDTHBRate:      decimal.NewFromInt(33),
		Status:          models.StatusNotPaid,
	}).Error)

	quotes := services.NewQuoteService(
		services.NewStaticRateProvider(decimal.NewFromInt(35)),
		services.NewStaticPriceProvider(map[string]decimal.Decimal{"BTC": decimal.NewFromInt(60000)}),
		time.Minute,
	)
	return services.NewPortfolioService(repositories.NewLedgerRepository(database), quotes)
}

func TestHandleProjections_YearsValidation(t *testing.T) {
	handler := NewReportingHandler(setupPortfolioService(t), zap.NewNop())

	for _, years := range []string{"", "0", "31", "-3", "abc"} {
		req := httptest.NewRequest("GET", "/api/reports/projections?years="+years, nil)
		rec := httptest.NewRecorder()
		handler.HandleProjections(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "years=%q", years)
	}
}

func TestHandleProjections_OK(t *testing.T) {
	handler := NewReportingHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/reports/projections?years=1", nil)
	rec := httptest.NewRecorder()
	handler.HandleProjections(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var projections []models.Projection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projections))
	require.Len(t, projections, 1)
	assert.Equal(t, "BTC", projections[0].AssetName)
	assert.InDelta(t, 75000, projections[0].FutureValueUSD.InexactFloat64(), 1e-6)
}

func TestHandleHoldings_OK(t *testing.T) {
	handler := NewReportingHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/reports/holdings", nil)
	rec := httptest.NewRecorder()
	handler.HandleHoldings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var holdings []models.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &holdings))
	require.Len(t, holdings, 1)
	assert.Equal(t, "Bitcoin", holdings[0].DisplayName)
	assert.True(t, holdings[0].CurrentValueUSD.Equal(decimal.NewFromInt(60000)))
	assert.True(t, holdings[0].CurrentValueTHB.Equal(decimal.NewFromInt(2100000)))
}

func TestHandleSummary_OK(t *testing.T) {
	handler := NewReportingHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/reports/summary", nil)
	rec := httptest.NewRecorder()
	handler.HandleSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.PortfolioSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.True(t, summary.TotalValueUSD.Equal(decimal.NewFromInt(60000)))
	assert.True(t, summary.TotalCostUSD.Equal(decimal.NewFromInt(20000)))
	assert.True(t, summary.ProfitUSD.Equal(decimal.NewFromInt(40000)))
	assert.InDelta(t, 200, summary.ProfitPercent, 1e-9)
}

func TestHandleChart_OK(t *testing.T) {
	handler := NewReportingHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/reports/chart", nil)
	rec := httptest.NewRecorder()
	handler.HandleChart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var points []models.ChartPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.True(t, points[0].ValueUSD.Equal(decimal.NewFromInt(20000)))
	assert.True(t, points[0].ValueTHB.Equal(decimal.NewFromInt(700000)))
}

func TestHandleCurrentRate_OK(t *testing.T) {
	handler := NewFXHandler(setupPortfolioService(t))

	req := httptest.NewRequest("GET", "/api/current-exchange-rate", nil)
	rec := httptest.NewRecorder()
	handler.HandleCurrentRate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rate models.ExchangeRate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rate))
	assert.True(t, rate.Rate.Equal(decimal.NewFromInt(35)))
	assert.False(t, rate.Timestamp.IsZero())
}

func TestHandlePayments_EnrichedWithDisplayName(t *testing.T) {
	handler := NewLedgerHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/payments", nil)
	rec := httptest.NewRecorder()
	handler.HandlePayments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payments []models.TransactionDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, "BTC", payments[0].AssetName)
	assert.Equal(t, "Bitcoin", payments[0].AssetDisplayName)
}

func TestHandleAssets_OK(t *testing.T) {
	handler := NewLedgerHandler(setupPortfolioService(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/assets", nil)
	rec := httptest.NewRecorder()
	handler.HandleAssets(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var assets []models.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, "BTC", assets[0].AssetName)
	assert.InDelta(t, 25, assets[0].CAGRPercent, 1e-9)
}
