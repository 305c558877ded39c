package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/khaohom/savings/internal/models"
)

// SyncService defines the interface for the ingestion pipeline
type SyncService interface {
	// Sync validates and upserts a batch of externally sourced rows. The
	// returned report distinguishes full from partial success; a nil report
	// means the call failed before any row was written.
	Sync(ctx context.Context, credential string, records []models.RawRecord) (*models.SyncReport, error)
}

// PortfolioService defines the interface for ledger reads and all derived
// portfolio views
type PortfolioService interface {
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	ListTransactions(ctx context.Context) ([]*models.TransactionDetail, error)
	CurrentRate(ctx context.Context) *models.ExchangeRate

	Holdings(ctx context.Context) ([]*models.Holding, error)
	Summary(ctx context.Context) (*models.PortfolioSummary, error)
	ChartSeries(ctx context.Context) ([]*models.ChartPoint, error)
	Projections(ctx context.Context, years int) ([]*models.Projection, error)
}

// RateProvider fetches the current USD to THB exchange rate. Implementations
// never fail: a provider outage degrades to a fallback rate with a note.
type RateProvider interface {
	CurrentRate(ctx context.Context) *models.ExchangeRate
}

// PriceProvider fetches current spot prices in USD for asset symbols.
// Implementations are best effort: unknown or unavailable symbols are simply
// absent from the result, and USD is always pinned to 1.0.
type PriceProvider interface {
	CurrentPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal
}

// QuoteService assembles live quotes from the rate and price providers,
// caching them briefly in process memory.
type QuoteService interface {
	CurrentRate(ctx context.Context) *models.ExchangeRate
	CurrentQuote(ctx context.Context, symbols []string) *models.Quote
}
