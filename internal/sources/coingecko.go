package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// CoinGecko fetches spot prices, daily close history, and market dominance.
type CoinGecko struct {
	http *resty.Client
}

func NewCoinGecko(baseURL string, timeout time.Duration, retries int) *CoinGecko {
	return &CoinGecko{http: newHTTPClient(baseURL, timeout, retries)}
}

// SimplePrice is one asset's spot quote.
type SimplePrice struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

// SimplePrices fetches spot USD prices and 24h changes for the given asset IDs.
func (c *CoinGecko) SimplePrices(ctx context.Context, ids []string) (map[string]SimplePrice, error) {
	var out map[string]SimplePrice
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		SetResult(&out).
		Get("/api/v3/simple/price")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch simple prices: %w", err)
	}
	if err := checkResponse(resp, "coingecko"); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("coingecko response missing asset %q", id)
		}
	}
	return out, nil
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// DailyCloses fetches up to days daily close prices for an asset, oldest first.
func (c *CoinGecko) DailyCloses(ctx context.Context, id string, days int) ([]float64, error) {
	var out marketChartResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        fmt.Sprintf("%d", days),
			"interval":    "daily",
		}).
		SetResult(&out).
		Get(fmt.Sprintf("/api/v3/coins/%s/market_chart", id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market chart for %s: %w", id, err)
	}
	if err := checkResponse(resp, "coingecko"); err != nil {
		return nil, err
	}
	if len(out.Prices) == 0 {
		return nil, fmt.Errorf("coingecko returned no price history for %s", id)
	}
	closes := make([]float64, 0, len(out.Prices))
	for _, p := range out.Prices {
		closes = append(closes, p[1])
	}
	return closes, nil
}

type globalResponse struct {
	Data struct {
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}

// BTCDominance fetches bitcoin's share of total market capitalization.
func (c *CoinGecko) BTCDominance(ctx context.Context) (float64, error) {
	var out globalResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v3/global")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch global data: %w", err)
	}
	if err := checkResponse(resp, "coingecko"); err != nil {
		return 0, err
	}
	dom, ok := out.Data.MarketCapPercentage["btc"]
	if !ok {
		return 0, fmt.Errorf("coingecko global data missing btc dominance")
	}
	return dom, nil
}
