package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/khaohom/savings/internal/models"
)

type countingRateProvider struct {
	mu    sync.Mutex
	calls int
	rate  *models.ExchangeRate
}

func (p *countingRateProvider) CurrentRate(ctx context.Context) *models.ExchangeRate {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.rate
}

func TestQuoteService_CachesWithinTTL(t *testing.T) {
	provider := &countingRateProvider{rate: &models.ExchangeRate{
		Rate:      decimal.NewFromInt(35),
		Timestamp: time.Now().UTC(),
	}}
	quotes := NewQuoteService(provider, NewStaticPriceProvider(nil), time.Minute)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		rate := quotes.CurrentRate(ctx)
		assert.True(t, rate.Rate.Equal(decimal.NewFromInt(35)))
	}

	assert.Equal(t, 1, provider.calls)
}

func TestQuoteService_DoesNotCacheFallback(t *testing.T) {
	provider := &countingRateProvider{rate: &models.ExchangeRate{
		Rate:      decimal.NewFromFloat(33.5),
		Timestamp: time.Now().UTC(),
		Note:      "Fallback rate - API unavailable",
	}}
	quotes := NewQuoteService(provider, NewStaticPriceProvider(nil), time.Minute)

	ctx := context.Background()
	quotes.CurrentRate(ctx)
	quotes.CurrentRate(ctx)

	// Each call retries the provider while it is degraded
	assert.Equal(t, 2, provider.calls)
}

func TestQuoteService_CurrentQuoteCarriesRateNote(t *testing.T) {
	provider := &countingRateProvider{rate: &models.ExchangeRate{
		Rate:      decimal.NewFromFloat(33.5),
		Timestamp: time.Now().UTC(),
		Note:      "Fallback rate - API unavailable",
	}}
	prices := NewStaticPriceProvider(map[string]decimal.Decimal{"BTC": decimal.NewFromInt(60000)})
	quotes := NewQuoteService(provider, prices, time.Minute)

	quote := quotes.CurrentQuote(context.Background(), []string{"BTC", "USD"})

	assert.True(t, quote.USDTHBRate.Equal(decimal.NewFromFloat(33.5)))
	assert.Equal(t, "Fallback rate - API unavailable", quote.RateNote)
	assert.True(t, quote.PriceUSD("BTC").Equal(decimal.NewFromInt(60000)))
	assert.True(t, quote.PriceUSD("USD").Equal(decimal.NewFromInt(1)))
	assert.True(t, quote.PriceUSD("GOLD").IsZero())
}
