package sources

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// FearGreed fetches the alternative.me Fear & Greed index.
type FearGreed struct {
	http *resty.Client
}

func NewFearGreed(baseURL string, timeout time.Duration, retries int) *FearGreed {
	return &FearGreed{http: newHTTPClient(baseURL, timeout, retries)}
}

type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
	} `json:"data"`
}

// SentimentWindow is the current index value with its short history.
type SentimentWindow struct {
	Current   float64
	Yesterday float64
	WeekAgo   float64
}

// Fetch returns the current index plus the yesterday and week-ago values from
// the same response. Shorter histories fall back to the current value, the
// way the upstream pads its own charts.
func (c *FearGreed) Fetch(ctx context.Context) (SentimentWindow, error) {
	var out fngResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "7").
		SetResult(&out).
		Get("/fng/")
	if err != nil {
		return SentimentWindow{}, fmt.Errorf("failed to fetch fear & greed index: %w", err)
	}
	if err := checkResponse(resp, "alternative.me"); err != nil {
		return SentimentWindow{}, err
	}
	if len(out.Data) == 0 {
		return SentimentWindow{}, fmt.Errorf("alternative.me returned no data")
	}

	values := make([]float64, len(out.Data))
	for i, d := range out.Data {
		v, err := strconv.ParseFloat(d.Value, 64)
		if err != nil {
			return SentimentWindow{}, fmt.Errorf("invalid index value %q: %w", d.Value, err)
		}
		values[i] = v
	}

	w := SentimentWindow{Current: values[0], Yesterday: values[0], WeekAgo: values[0]}
	if len(values) > 1 {
		w.Yesterday = values[1]
	}
	if len(values) > 6 {
		w.WeekAgo = values[6]
	}
	return w, nil
}
