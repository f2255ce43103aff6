package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Upbit fetches KRW trade prices from the Upbit exchange.
type Upbit struct {
	http *resty.Client
}

func NewUpbit(baseURL string, timeout time.Duration, retries int) *Upbit {
	return &Upbit{http: newHTTPClient(baseURL, timeout, retries)}
}

type upbitTicker struct {
	TradePrice float64 `json:"trade_price"`
}

// TradePrice returns the latest trade price for a market like "KRW-BTC".
func (c *Upbit) TradePrice(ctx context.Context, market string) (float64, error) {
	var out []upbitTicker
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("markets", market).
		SetResult(&out).
		Get("/v1/ticker")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch upbit ticker: %w", err)
	}
	if err := checkResponse(resp, "upbit"); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("upbit returned no ticker for %s", market)
	}
	if out[0].TradePrice <= 0 {
		return 0, fmt.Errorf("upbit returned non-positive price for %s", market)
	}
	return out[0].TradePrice, nil
}
