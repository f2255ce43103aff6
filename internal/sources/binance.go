package sources

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Binance fetches perpetual funding rates and spot prices.
type Binance struct {
	futures *resty.Client
	spot    *resty.Client
}

func NewBinance(futuresBaseURL, spotBaseURL string, timeout time.Duration, retries int) *Binance {
	return &Binance{
		futures: newHTTPClient(futuresBaseURL, timeout, retries),
		spot:    newHTTPClient(spotBaseURL, timeout, retries),
	}
}

type fundingRateEntry struct {
	FundingRate string `json:"fundingRate"`
}

// FundingRate returns the latest perpetual funding rate for symbol in percent.
func (c *Binance) FundingRate(ctx context.Context, symbol string) (float64, error) {
	var out []fundingRateEntry
	resp, err := c.futures.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"symbol": symbol, "limit": "1"}).
		SetResult(&out).
		Get("/fapi/v1/fundingRate")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch funding rate: %w", err)
	}
	if err := checkResponse(resp, "binance"); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("binance returned no funding rate for %s", symbol)
	}
	rate, err := strconv.ParseFloat(out[0].FundingRate, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid funding rate %q: %w", out[0].FundingRate, err)
	}
	return rate * 100, nil
}

type openInterestResponse struct {
	OpenInterest string `json:"openInterest"`
}

// OpenInterest returns the current perpetual open interest for symbol,
// denominated in the base asset.
func (c *Binance) OpenInterest(ctx context.Context, symbol string) (float64, error) {
	var out openInterestResponse
	resp, err := c.futures.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&out).
		Get("/fapi/v1/openInterest")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch open interest: %w", err)
	}
	if err := checkResponse(resp, "binance"); err != nil {
		return 0, err
	}
	oi, err := strconv.ParseFloat(out.OpenInterest, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid open interest %q: %w", out.OpenInterest, err)
	}
	return oi, nil
}

type tickerPriceResponse struct {
	Price string `json:"price"`
}

// SpotPrice returns the spot ticker price for symbol in the quote currency.
func (c *Binance) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	var out tickerPriceResponse
	resp, err := c.spot.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&out).
		Get("/api/v3/ticker/price")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch spot price: %w", err)
	}
	if err := checkResponse(resp, "binance"); err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(out.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid spot price %q: %w", out.Price, err)
	}
	return price, nil
}
