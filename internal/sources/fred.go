package sources

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// FRED fetches money-supply observations from the St. Louis Fed API.
type FRED struct {
	http   *resty.Client
	apiKey string
}

func NewFRED(baseURL, apiKey string, timeout time.Duration, retries int) *FRED {
	return &FRED{http: newHTTPClient(baseURL, timeout, retries), apiKey: apiKey}
}

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// M2YoY returns the year-over-year growth of the M2SL series in percent.
// The series is monthly, so 13 observations cover exactly one year.
func (c *FRED) M2YoY(ctx context.Context) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("FRED API key is not configured")
	}

	var out fredResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":  "M2SL",
			"api_key":    c.apiKey,
			"file_type":  "json",
			"sort_order": "desc",
			"limit":      "13",
		}).
		SetResult(&out).
		Get("/fred/series/observations")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch M2 observations: %w", err)
	}
	if err := checkResponse(resp, "fred"); err != nil {
		return 0, err
	}
	if len(out.Observations) < 13 {
		return 0, fmt.Errorf("fred returned %d observations, need 13 for YoY", len(out.Observations))
	}

	current, err := strconv.ParseFloat(out.Observations[0].Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid M2 value %q: %w", out.Observations[0].Value, err)
	}
	yearAgo, err := strconv.ParseFloat(out.Observations[12].Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid M2 value %q: %w", out.Observations[12].Value, err)
	}
	if yearAgo == 0 {
		return 0, fmt.Errorf("year-ago M2 value is zero")
	}

	return (current - yearAgo) / yearAgo * 100, nil
}
