package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khaohom/savings/internal/models"
)

// StaticRateProvider serves a fixed USD to THB rate for testing and offline
// development.
type StaticRateProvider struct {
	Rate decimal.Decimal
	Note string
}

// NewStaticRateProvider creates a rate provider pinned to the given rate.
func NewStaticRateProvider(rate decimal.Decimal) *StaticRateProvider {
	return &StaticRateProvider{Rate: rate}
}

func (p *StaticRateProvider) CurrentRate(ctx context.Context) *models.ExchangeRate {
	return &models.ExchangeRate{
		Rate:      p.Rate,
		Timestamp: time.Now().UTC(),
		Note:      p.Note,
	}
}

// StaticPriceProvider serves fixed USD spot prices for testing and offline
// development. USD stays pinned to 1.0 like the real provider.
type StaticPriceProvider struct {
	Prices map[string]decimal.Decimal
}

// NewStaticPriceProvider creates a price provider pinned to the given prices.
func NewStaticPriceProvider(prices map[string]decimal.Decimal) *StaticPriceProvider {
	return &StaticPriceProvider{Prices: prices}
}

func (p *StaticPriceProvider) CurrentPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	prices := map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)}
	for _, symbol := range symbols {
		upper := strings.ToUpper(symbol)
		if price, ok := p.Prices[upper]; ok {
			prices[upper] = price
		}
	}
	return prices
}
