package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CoinGecko-based implementation (no API key required for basic endpoints)
type CoinGeckoPriceProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoPriceProvider creates a price provider backed by the CoinGecko
// simple price endpoint.
func NewCoinGeckoPriceProvider(baseURL string) PriceProvider {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	return &CoinGeckoPriceProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentPrices fetches current USD spot prices for the given symbols.
// USD is always pinned to 1.0 regardless of the provider response, unknown
// symbols are skipped, and a provider failure yields just the USD entry so
// valuation can proceed with missing prices treated as zero.
func (p *CoinGeckoPriceProvider) CurrentPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	prices := map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)}

	ids := make([]string, 0, len(symbols))
	idBySymbol := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		upper := strings.ToUpper(symbol)
		if upper == "USD" {
			continue
		}
		if id := mapSymbolToCoinGeckoID(upper); id != "" {
			ids = append(ids, id)
			idBySymbol[upper] = id
		}
	}
	if len(ids) == 0 {
		return prices
	}

	payload, err := p.fetchSimplePrices(ctx, ids)
	if err != nil {
		return prices
	}

	for symbol, id := range idBySymbol {
		if m, ok := payload[id]; ok {
			if usd, ok := m["usd"]; ok {
				prices[symbol] = decimal.NewFromFloat(usd)
			}
		}
	}

	return prices
}

func (p *CoinGeckoPriceProvider) fetchSimplePrices(ctx context.Context, ids []string) (map[string]map[string]float64, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", p.baseURL, strings.Join(ids, ","))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko status %d", resp.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func mapSymbolToCoinGeckoID(symbol string) string {
	switch strings.ToUpper(symbol) {
	case "BTC":
		return "bitcoin"
	case "ETH":
		return "ethereum"

	// Gold is tracked through tokenized gold products
	case "GOLD":
		return "tether-gold"
	case "PAXG", "XAU":
		return "pax-gold"

	// Stablecoins
	case "USDT":
		return "tether"
	case "USDC":
		return "usd-coin"

	case "SOL":
		return "solana"
	case "ADA":
		return "cardano"
	case "DOT":
		return "polkadot"
	case "BNB":
		return "binancecoin"
	case "XRP":
		return "ripple"
	case "LTC":
		return "litecoin"
	case "DOGE":
		return "dogecoin"

	default:
		return ""
	}
}
