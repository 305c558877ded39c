package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khaohom/savings/internal/models"
	"github.com/khaohom/savings/internal/repositories"
)

const readTimeout = 10 * time.Second

type portfolioService struct {
	repo   repositories.LedgerRepository
	quotes QuoteService
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(repo repositories.LedgerRepository, quotes QuoteService) PortfolioService {
	return &portfolioService{repo: repo, quotes: quotes}
}

func (s *portfolioService) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()
	return s.repo.ListAssets(ctx)
}

func (s *portfolioService) ListTransactions(ctx context.Context) ([]*models.TransactionDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()
	return s.repo.ListTransactionDetails(ctx)
}

func (s *portfolioService) CurrentRate(ctx context.Context) *models.ExchangeRate {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()
	return s.quotes.CurrentRate(ctx)
}

func (s *portfolioService) Holdings(ctx context.Context) ([]*models.Holding, error) {
	transactions, assets, quote, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeHoldings(transactions, assets, quote), nil
}

func (s *portfolioService) Summary(ctx context.Context) (*models.PortfolioSummary, error) {
	transactions, assets, quote, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	holdings := ComputeHoldings(transactions, assets, quote)
	return ComputeSummary(transactions, holdings, quote.USDTHBRate, time.Now().UTC()), nil
}

func (s *portfolioService) ChartSeries(ctx context.Context) ([]*models.ChartPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	rate := s.quotes.CurrentRate(ctx)
	return ComputeChartSeries(transactions, rate.Rate), nil
}

func (s *portfolioService) Projections(ctx context.Context, years int) ([]*models.Projection, error) {
	transactions, assets, quote, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeProjections(transactions, assets, quote, years), nil
}

// load fetches the full ledger, the asset catalog and a live quote. Quote
// failures never surface here: the gateway degrades to fallbacks.
func (s *portfolioService) load(ctx context.Context) ([]*models.Transaction, []*models.Asset, *models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	assets, err := s.repo.ListAssets(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.AssetName)
	}
	quote := s.quotes.CurrentQuote(ctx, symbols)

	return transactions, assets, quote, nil
}

// ComputeHoldings groups transactions by asset symbol and values each group
// with the quote's current prices. The join to the catalog is tolerant: a
// symbol without a catalog entry still produces a holding under its raw
// symbol. Result is sorted descending by current USD value.
func ComputeHoldings(transactions []*models.Transaction, assets []*models.Asset, quote *models.Quote) []*models.Holding {
	catalog := make(map[string]*models.Asset, len(assets))
	for _, a := range assets {
		catalog[a.AssetName] = a
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, tx := range transactions {
		if _, seen := totals[tx.AssetName]; !seen {
			order = append(order, tx.AssetName)
		}
		totals[tx.AssetName] = totals[tx.AssetName].Add(tx.Amount)
	}

	holdings := make([]*models.Holding, 0, len(order))
	for _, symbol := range order {
		displayName := symbol
		cagr := 0.0
		if asset, ok := catalog[symbol]; ok {
			displayName = asset.DisplayName
			cagr = asset.CAGRPercent
		}

		valueUSD := totals[symbol].Mul(quote.PriceUSD(symbol))
		holdings = append(holdings, &models.Holding{
			AssetName:       symbol,
			DisplayName:     displayName,
			TotalAmount:     totals[symbol],
			CurrentValueUSD: valueUSD,
			CurrentValueTHB: valueUSD.Mul(quote.USDTHBRate),
			CAGRPercent:     cagr,
		})
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CurrentValueUSD.GreaterThan(holdings[j].CurrentValueUSD)
	})

	return holdings
}

// ComputeSummary aggregates holdings into a portfolio summary. Total cost is
// the maximum running USD total across the ledger, trusting the source's
// cumulative figures rather than resumming contributions.
func ComputeSummary(transactions []*models.Transaction, holdings []*models.Holding, rate decimal.Decimal, now time.Time) *models.PortfolioSummary {
	totalValueUSD := decimal.Zero
	for _, h := range holdings {
		totalValueUSD = totalValueUSD.Add(h.CurrentValueUSD)
	}

	totalCostUSD := decimal.Zero
	if len(transactions) > 0 {
		totalCostUSD = transactions[0].USDCumulative
		for _, tx := range transactions[1:] {
			if tx.USDCumulative.GreaterThan(totalCostUSD) {
				totalCostUSD = tx.USDCumulative
			}
		}
	}

	profitUSD := totalValueUSD.Sub(totalCostUSD)
	profitPercent := 0.0
	if totalCostUSD.Sign() > 0 {
		profitPercent = profitUSD.Div(totalCostUSD).InexactFloat64() * 100
	}

	return &models.PortfolioSummary{
		TotalValueUSD: totalValueUSD,
		TotalValueTHB: totalValueUSD.Mul(rate),
		TotalCostUSD:  totalCostUSD,
		ProfitUSD:     profitUSD,
		ProfitPercent: profitPercent,
		APYPercent:    computeAPY(transactions, totalValueUSD, totalCostUSD, now),
	}
}

// computeAPY is a single-cohort CAGR approximation anchored at the earliest
// transaction date. It does not time-weight individual contributions.
func computeAPY(transactions []*models.Transaction, totalValue, totalCost decimal.Decimal, now time.Time) float64 {
	if len(transactions) == 0 || totalCost.Sign() <= 0 {
		return 0
	}

	first := transactions[0].TransactionDate
	for _, tx := range transactions {
		if tx.TransactionDate.Before(first) {
			first = tx.TransactionDate
		}
	}

	days := int64(now.Sub(first).Hours() / 24)
	if days <= 0 {
		return 0
	}

	years := float64(days) / 365.0
	totalReturn := totalValue.InexactFloat64() / totalCost.InexactFloat64()
	apy := (math.Pow(totalReturn, 1.0/years) - 1) * 100

	if math.IsNaN(apy) || math.IsInf(apy, 0) {
		return 0
	}
	return apy
}

// ComputeChartSeries emits one point per transaction in date order: the
// running USD total, also expressed in THB at the current rate. Same-day
// transactions keep their own points; there is no resampling.
func ComputeChartSeries(transactions []*models.Transaction, rate decimal.Decimal) []*models.ChartPoint {
	sorted := make([]*models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
	})

	points := make([]*models.ChartPoint, 0, len(sorted))
	for _, tx := range sorted {
		points = append(points, &models.ChartPoint{
			Date:     tx.TransactionDate,
			ValueUSD: tx.USDCumulative,
			ValueTHB: tx.USDCumulative.Mul(rate),
		})
	}
	return points
}

// ComputeProjections compounds each asset group's current value forward by
// its assumed CAGR. Years is taken as given; range enforcement is the
// caller's input validation concern.
func ComputeProjections(transactions []*models.Transaction, assets []*models.Asset, quote *models.Quote, years int) []*models.Projection {
	holdings := ComputeHoldings(transactions, assets, quote)

	projections := make([]*models.Projection, 0, len(holdings))
	for _, h := range holdings {
		growth := math.Pow(1+h.CAGRPercent/100, float64(years))
		futureValue := h.CurrentValueUSD.InexactFloat64() * growth

		projections = append(projections, &models.Projection{
			AssetName:       h.AssetName,
			DisplayName:     h.DisplayName,
			CurrentValueUSD: h.CurrentValueUSD,
			FutureValueUSD:  decimal.NewFromFloat(futureValue),
			Years:           years,
		})
	}

	// Holdings are already sorted descending by current value.
	return projections
}
