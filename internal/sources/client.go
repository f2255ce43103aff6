// Package sources fetches raw metrics from public upstream APIs and
// materializes them into a snapshot. Every fetch failure degrades to an
// absent metric; the engine never sees a sentinel value.
package sources

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "cryptobrief/1.0"

// newHTTPClient builds a resty client with retry and 429 handling shared by
// every upstream.
func newHTTPClient(baseURL string, timeout time.Duration, retries int) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == 429 {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		}).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
}

// checkResponse turns non-2xx responses into errors; resty does not by itself.
func checkResponse(resp *resty.Response, source string) error {
	if resp.IsError() {
		return fmt.Errorf("%s returned status %d", source, resp.StatusCode())
	}
	return nil
}
