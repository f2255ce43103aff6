package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefiLlama fetches aggregate stablecoin circulation.
type DefiLlama struct {
	http *resty.Client
}

func NewDefiLlama(baseURL string, timeout time.Duration, retries int) *DefiLlama {
	return &DefiLlama{http: newHTTPClient(baseURL, timeout, retries)}
}

type stablecoinsResponse struct {
	PeggedAssets []struct {
		Circulating map[string]float64 `json:"circulating"`
	} `json:"peggedAssets"`
}

// StablecoinFloatBillions returns total outstanding USD-pegged circulation in
// billions of dollars. Non-USD pegs are excluded.
func (c *DefiLlama) StablecoinFloatBillions(ctx context.Context) (float64, error) {
	var out stablecoinsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("includePrices", "false").
		SetResult(&out).
		Get("/stablecoins")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch stablecoin data: %w", err)
	}
	if err := checkResponse(resp, "defillama"); err != nil {
		return 0, err
	}
	if len(out.PeggedAssets) == 0 {
		return 0, fmt.Errorf("defillama returned no pegged assets")
	}

	var totalUSD float64
	for _, asset := range out.PeggedAssets {
		totalUSD += asset.Circulating["peggedUSD"]
	}
	return totalUSD / 1e9, nil
}
