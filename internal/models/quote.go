package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the current USD to THB rate with the moment it was read.
// Note is set when the provider failed and the rate is a hardcoded fallback.
type ExchangeRate struct {
	Rate      decimal.Decimal `json:"rate"`
	Timestamp time.Time       `json:"timestamp"`
	Note      string          `json:"note,omitempty"`
}

// Quote bundles the live market readings a valuation needs. Quotes are
// ephemeral: they are fetched per computation and never persisted.
// PricesUSD carries current spot prices keyed by asset symbol, with USD
// always pinned to 1.0; an asset missing from the map values to zero.
type Quote struct {
	USDTHBRate decimal.Decimal            `json:"usdthb_rate"`
	PricesUSD  map[string]decimal.Decimal `json:"prices_usd"`
	RateNote   string                     `json:"rate_note,omitempty"`
}

// PriceUSD returns the current spot price for a symbol, or zero when the
// quote has no entry for it.
func (q *Quote) PriceUSD(symbol string) decimal.Decimal {
	if q == nil || q.PricesUSD == nil {
		return decimal.Zero
	}
	if price, ok := q.PricesUSD[symbol]; ok {
		return price
	}
	return decimal.Zero
}
