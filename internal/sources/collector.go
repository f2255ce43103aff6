package sources

import (
	"context"
	"time"

	"github.com/dwkim-dev/cryptobrief/internal/logger"
	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Config wires the collector to its upstreams.
type Config struct {
	CoinGeckoURL      string
	FearGreedURL      string
	FREDURL           string
	FREDAPIKey        string
	BinanceFuturesURL string
	BinanceSpotURL    string
	UpbitURL          string
	FXURL             string
	DefiLlamaURL      string
	Timeout           time.Duration
	MaxRetries        int
	Pace              time.Duration // pause between upstream calls
}

// Collector materializes a snapshot from all upstreams. Fetches run
// sequentially with a pacing pause to respect upstream rate limits.
type Collector struct {
	coingecko *CoinGecko
	feargreed *FearGreed
	fred      *FRED
	binance   *Binance
	upbit     *Upbit
	fx        *FX
	llama     *DefiLlama
	pace      time.Duration
}

func New(cfg Config) *Collector {
	return &Collector{
		coingecko: NewCoinGecko(cfg.CoinGeckoURL, cfg.Timeout, cfg.MaxRetries),
		feargreed: NewFearGreed(cfg.FearGreedURL, cfg.Timeout, cfg.MaxRetries),
		fred:      NewFRED(cfg.FREDURL, cfg.FREDAPIKey, cfg.Timeout, cfg.MaxRetries),
		binance:   NewBinance(cfg.BinanceFuturesURL, cfg.BinanceSpotURL, cfg.Timeout, cfg.MaxRetries),
		upbit:     NewUpbit(cfg.UpbitURL, cfg.Timeout, cfg.MaxRetries),
		fx:        NewFX(cfg.FXURL, cfg.Timeout, cfg.MaxRetries),
		llama:     NewDefiLlama(cfg.DefiLlamaURL, cfg.Timeout, cfg.MaxRetries),
		pace:      cfg.Pace,
	}
}

// Collect fetches every metric and returns a complete snapshot plus display
// context. Individual fetch failures are logged and leave the affected
// metrics absent; Collect itself never fails.
func (c *Collector) Collect(ctx context.Context) (models.Snapshot, models.MarketContext) {
	snap := models.NewSnapshot()
	var mktCtx models.MarketContext

	prices, err := c.coingecko.SimplePrices(ctx, []string{"bitcoin", "ethereum"})
	if err != nil {
		logger.Warn("Spot price fetch failed: %v", err)
	} else {
		btc := prices["bitcoin"]
		eth := prices["ethereum"]
		mktCtx.BTCSpotUSD = models.Some(btc.USD)
		mktCtx.BTCChange24h = models.Some(btc.Change24h)
		mktCtx.ETHSpotUSD = models.Some(eth.USD)
		mktCtx.ETHChange24h = models.Some(eth.Change24h)
	}
	c.pause(ctx)

	c.collectPriceDistances(ctx, snap, "bitcoin", mktCtx.BTCSpotUSD,
		models.KeyBTCMA120Dist, models.KeyBTCHigh52wDist, models.KeyBTCLow52wDist)
	c.pause(ctx)

	c.collectPriceDistances(ctx, snap, "ethereum", mktCtx.ETHSpotUSD,
		models.KeyETHMA120Dist, models.KeyETHHigh52wDist, models.KeyETHLow52wDist)
	c.pause(ctx)

	if window, err := c.feargreed.Fetch(ctx); err != nil {
		logger.Warn("Fear & Greed fetch failed: %v", err)
	} else {
		snap[models.KeySentiment] = models.Some(window.Current)
		mktCtx.SentimentYesterday = models.Some(window.Yesterday)
		mktCtx.SentimentWeekAgo = models.Some(window.WeekAgo)
	}
	c.pause(ctx)

	if yoy, err := c.fred.M2YoY(ctx); err != nil {
		logger.Warn("M2 fetch failed: %v", err)
	} else {
		snap[models.KeyM2YoY] = models.Some(yoy)
	}
	c.pause(ctx)

	if rate, err := c.binance.FundingRate(ctx, "BTCUSDT"); err != nil {
		logger.Warn("Funding rate fetch failed: %v", err)
	} else {
		snap[models.KeyFunding] = models.Some(rate)
	}
	c.pause(ctx)

	if oi, err := c.binance.OpenInterest(ctx, "BTCUSDT"); err != nil {
		logger.Warn("Open interest fetch failed: %v", err)
	} else {
		mktCtx.BTCOpenInterest = models.Some(oi)
	}
	c.pause(ctx)

	c.collectPremium(ctx, snap, &mktCtx)
	c.pause(ctx)

	if dom, err := c.coingecko.BTCDominance(ctx); err != nil {
		logger.Warn("Dominance fetch failed: %v", err)
	} else {
		snap[models.KeyDominance] = models.Some(dom)
	}
	c.pause(ctx)

	if float, err := c.llama.StablecoinFloatBillions(ctx); err != nil {
		logger.Warn("Stablecoin float fetch failed: %v", err)
	} else {
		snap[models.KeyStablecoinFloat] = models.Some(float)
	}

	return snap, mktCtx
}

// collectPriceDistances derives the three price-domain distances for one
// asset from a year of daily closes and the live spot price.
func (c *Collector) collectPriceDistances(ctx context.Context, snap models.Snapshot, assetID string, spot models.Metric, maKey, highKey, lowKey models.Key) {
	spotUSD, ok := spot.Get()
	if !ok {
		logger.Warn("Skipping %s price distances: no spot price", assetID)
		return
	}

	closes, err := c.coingecko.DailyCloses(ctx, assetID, 365)
	if err != nil {
		logger.Warn("Price history fetch failed for %s: %v", assetID, err)
		return
	}

	if ma, ok := movingAverage(closes, 120); ok {
		snap[maKey] = models.Some(distancePct(spotUSD, ma))
	} else {
		logger.Warn("Not enough history for %s 120d MA (%d closes)", assetID, len(closes))
	}

	high, low := closes[0], closes[0]
	for _, v := range closes {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if high > 0 {
		snap[highKey] = models.Some(distancePct(spotUSD, high))
	}
	if low > 0 {
		snap[lowKey] = models.Some(distancePct(spotUSD, low))
	}
}

// collectPremium computes the domestic-vs-reference price premium from three
// quotes: Upbit KRW, Binance USDT, and the USD/KRW rate.
func (c *Collector) collectPremium(ctx context.Context, snap models.Snapshot, mktCtx *models.MarketContext) {
	upbitKRW, err := c.upbit.TradePrice(ctx, "KRW-BTC")
	if err != nil {
		logger.Warn("Upbit price fetch failed: %v", err)
		return
	}
	binanceUSD, err := c.binance.SpotPrice(ctx, "BTCUSDT")
	if err != nil {
		logger.Warn("Binance spot fetch failed: %v", err)
		return
	}
	usdKRW, err := c.fx.USDRate(ctx, "KRW")
	if err != nil {
		logger.Warn("FX rate fetch failed: %v", err)
		return
	}
	mktCtx.USDKRW = models.Some(usdKRW)

	referenceKRW := binanceUSD * usdKRW
	if referenceKRW <= 0 {
		logger.Warn("Skipping premium: non-positive reference price")
		return
	}
	snap[models.KeyPremium] = models.Some((upbitKRW - referenceKRW) / referenceKRW * 100)
}

func (c *Collector) pause(ctx context.Context) {
	if c.pace <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.pace):
	}
}

func movingAverage(closes []float64, n int) (float64, bool) {
	if len(closes) < n {
		return 0, false
	}
	var sum float64
	for _, v := range closes[len(closes)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

func distancePct(spot, reference float64) float64 {
	return (spot - reference) / reference * 100
}
