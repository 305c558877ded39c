package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents the aggregated current position in one asset, valued
// with live quotes. Recomputed on every request, never persisted.
type Holding struct {
	AssetName       string          `json:"asset_name"`
	DisplayName     string          `json:"display_name"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CurrentValueUSD decimal.Decimal `json:"current_value_usd"`
	CurrentValueTHB decimal.Decimal `json:"current_value_thb"`
	CAGRPercent     float64         `json:"cagr_percent"`
}

// PortfolioSummary aggregates the whole portfolio against total capital
// contributed. APYPercent is a single-cohort CAGR approximation anchored at
// the earliest transaction date.
type PortfolioSummary struct {
	TotalValueUSD decimal.Decimal `json:"total_value_usd"`
	TotalValueTHB decimal.Decimal `json:"total_value_thb"`
	TotalCostUSD  decimal.Decimal `json:"total_cost_usd"`
	ProfitUSD     decimal.Decimal `json:"profit_usd"`
	ProfitPercent float64         `json:"profit_percent"`
	APYPercent    float64         `json:"apy_percent"`
}

// ChartPoint is one step of the historical value series: the running USD
// total after a transaction, in both display currencies.
type ChartPoint struct {
	Date     time.Time       `json:"date"`
	ValueUSD decimal.Decimal `json:"value_usd"`
	ValueTHB decimal.Decimal `json:"value_thb"`
}

// Projection compounds an asset's current value forward by its assumed CAGR.
type Projection struct {
	AssetName       string          `json:"asset_name"`
	DisplayName     string          `json:"display_name"`
	CurrentValueUSD decimal.Decimal `json:"current_value_usd"`
	FutureValueUSD  decimal.Decimal `json:"future_value_usd"`
	Years           int             `json:"years"`
}
