package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// FX fetches USD exchange rates.
type FX struct {
	http *resty.Client
}

func NewFX(baseURL string, timeout time.Duration, retries int) *FX {
	return &FX{http: newHTTPClient(baseURL, timeout, retries)}
}

type fxResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// USDRate returns the USD exchange rate for the given currency code.
func (c *FX) USDRate(ctx context.Context, currency string) (float64, error) {
	var out fxResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v4/latest/USD")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch FX rates: %w", err)
	}
	if err := checkResponse(resp, "exchangerate-api"); err != nil {
		return 0, err
	}
	rate, ok := out.Rates[currency]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("FX response missing usable rate for %s", currency)
	}
	return rate, nil
}
