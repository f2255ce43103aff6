package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectAllUpstreamsDown(t *testing.T) {
	down := failingServer(t)

	c := New(Config{
		CoinGeckoURL:      down.URL,
		FearGreedURL:      down.URL,
		FREDURL:           down.URL,
		FREDAPIKey:        "test-key",
		BinanceFuturesURL: down.URL,
		BinanceSpotURL:    down.URL,
		UpbitURL:          down.URL,
		FXURL:             down.URL,
		DefiLlamaURL:      down.URL,
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		Pace:              0,
	})

	snap, mktCtx := c.Collect(context.Background())

	require.NoError(t, snap.Validate(), "degraded snapshot must still honor the key contract")
	for _, k := range models.Keys() {
		assert.True(t, snap[k].Absent(), "key %q should be absent when every upstream fails", k)
	}
	assert.True(t, mktCtx.BTCSpotUSD.Absent())
	assert.True(t, mktCtx.USDKRW.Absent())
	assert.True(t, mktCtx.BTCOpenInterest.Absent())
}

func TestCollectPremiumFromThreeQuotes(t *testing.T) {
	down := failingServer(t)
	upbit := jsonServer(t, `[{"market":"KRW-BTC","trade_price":71400000.0}]`)
	spot := jsonServer(t, `{"symbol":"BTCUSDT","price":"50000.0"}`)
	fx := jsonServer(t, `{"base":"USD","rates":{"KRW":1400.0}}`)

	c := New(Config{
		CoinGeckoURL:      down.URL,
		FearGreedURL:      down.URL,
		FREDURL:           down.URL,
		FREDAPIKey:        "test-key",
		BinanceFuturesURL: down.URL,
		BinanceSpotURL:    spot.URL,
		UpbitURL:          upbit.URL,
		FXURL:             fx.URL,
		DefiLlamaURL:      down.URL,
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		Pace:              0,
	})

	snap, mktCtx := c.Collect(context.Background())
	require.NoError(t, snap.Validate())

	// Reference price 50000 * 1400 = 70M KRW, Upbit quotes 71.4M: +2%.
	premium, ok := snap[models.KeyPremium].Get()
	require.True(t, ok, "premium should be present when all three quotes resolve")
	assert.InDelta(t, 2.0, premium, 0.0001)

	rate, ok := mktCtx.USDKRW.Get()
	require.True(t, ok)
	assert.Equal(t, 1400.0, rate)
}

func TestCollectRespectsCancelledContext(t *testing.T) {
	down := failingServer(t)

	c := New(Config{
		CoinGeckoURL:      down.URL,
		FearGreedURL:      down.URL,
		FREDURL:           down.URL,
		FREDAPIKey:        "test-key",
		BinanceFuturesURL: down.URL,
		BinanceSpotURL:    down.URL,
		UpbitURL:          down.URL,
		FXURL:             down.URL,
		DefiLlamaURL:      down.URL,
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		Pace:              time.Hour, // would hang without cancellation
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		snap, _ := c.Collect(ctx)
		assert.NoError(t, snap.Validate())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Collect did not return after context cancellation")
	}
}
