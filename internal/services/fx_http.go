package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khaohom/savings/internal/models"
)

// HTTPRateProvider fetches the USD to THB rate from an exchangerate-api.com
// compatible endpoint. It degrades to a fixed fallback rate instead of
// failing; callers can tell from the Note field.
type HTTPRateProvider struct {
	baseURL      string
	fallbackRate decimal.Decimal
	httpClient   *http.Client
}

// NewHTTPRateProvider creates a new HTTP rate provider.
// Uses exchangerate-api.com as the default provider (free tier available)
func NewHTTPRateProvider(baseURL string, fallbackRate decimal.Decimal) RateProvider {
	if baseURL == "" {
		baseURL = "https://api.exchangerate-api.com/v4/latest"
	}
	return &HTTPRateProvider{
		baseURL:      baseURL,
		fallbackRate: fallbackRate,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CurrentRate retrieves the current USD to THB exchange rate
func (p *HTTPRateProvider) CurrentRate(ctx context.Context) *models.ExchangeRate {
	rate, err := p.fetchRateFromAPI(ctx)
	if err != nil {
		return &models.ExchangeRate{
			Rate:      p.fallbackRate,
			Timestamp: time.Now().UTC(),
			Note:      "Fallback rate - API unavailable",
		}
	}

	return &models.ExchangeRate{
		Rate:      rate,
		Timestamp: time.Now().UTC(),
	}
}

func (p *HTTPRateProvider) fetchRateFromAPI(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/USD", p.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	// Decode generically to support both v6 (conversion_rates) and v4 (rates)
	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	var ratesMap map[string]interface{}
	if cr, ok := raw["conversion_rates"].(map[string]interface{}); ok {
		ratesMap = cr
	} else if rr, ok := raw["rates"].(map[string]interface{}); ok {
		ratesMap = rr
	} else {
		return decimal.Zero, fmt.Errorf("API response missing rates")
	}

	v, exists := ratesMap["THB"]
	if !exists {
		return decimal.Zero, fmt.Errorf("rate not found for USD to THB")
	}

	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return decimal.NewFromFloat(f), nil
		}
	}
	return decimal.Zero, fmt.Errorf("non-numeric THB rate in response")
}
