package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khaohom/savings/internal/models"
)

// quoteService composes the rate and price providers behind a short-lived
// in-memory cache. Quotes are never persisted; the cache only keeps repeated
// aggregation requests from hammering the upstream APIs.
type quoteService struct {
	rates  RateProvider
	prices PriceProvider
	ttl    time.Duration

	mu       sync.Mutex
	rate     *models.ExchangeRate
	rateAt   time.Time
	priceMap map[string]decimal.Decimal
	priceKey string
	pricesAt time.Time
}

// NewQuoteService creates a new quote service with the given cache TTL.
func NewQuoteService(rates RateProvider, prices PriceProvider, ttl time.Duration) QuoteService {
	return &quoteService{rates: rates, prices: prices, ttl: ttl}
}

func (s *quoteService) CurrentRate(ctx context.Context) *models.ExchangeRate {
	s.mu.Lock()
	if s.rate != nil && time.Since(s.rateAt) < s.ttl {
		cached := *s.rate
		s.mu.Unlock()
		return &cached
	}
	s.mu.Unlock()

	rate := s.rates.CurrentRate(ctx)

	s.mu.Lock()
	// Fallback readings are not cached so recovery is picked up promptly.
	if rate.Note == "" {
		s.rate = rate
		s.rateAt = time.Now()
	}
	s.mu.Unlock()

	return rate
}

func (s *quoteService) CurrentQuote(ctx context.Context, symbols []string) *models.Quote {
	rate := s.CurrentRate(ctx)
	prices := s.currentPrices(ctx, symbols)

	return &models.Quote{
		USDTHBRate: rate.Rate,
		PricesUSD:  prices,
		RateNote:   rate.Note,
	}
}

func (s *quoteService) currentPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	key := cacheKey(symbols)

	s.mu.Lock()
	if s.priceMap != nil && s.priceKey == key && time.Since(s.pricesAt) < s.ttl {
		cached := make(map[string]decimal.Decimal, len(s.priceMap))
		for k, v := range s.priceMap {
			cached[k] = v
		}
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	prices := s.prices.CurrentPrices(ctx, symbols)

	s.mu.Lock()
	s.priceMap = prices
	s.priceKey = key
	s.pricesAt = time.Now()
	s.mu.Unlock()

	return prices
}

func cacheKey(symbols []string) string {
	sorted := make([]string, len(symbols))
	for i, s := range symbols {
		sorted[i] = strings.ToUpper(s)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
