package models

import "fmt"

// Key identifies one indicator instance in a snapshot.
type Key string

// Kind identifies an indicator family sharing one threshold table.
type Kind string

// Domain groups indicators into report sections.
type Domain string

const (
	DomainPrice  Domain = "price"
	DomainMarket Domain = "market"
	DomainMacro  Domain = "macro"
)

const (
	KindMA120Distance   Kind = "ma120_distance"
	KindHigh52wDistance Kind = "high52w_distance"
	KindLow52wDistance  Kind = "low52w_distance"
	KindSentiment       Kind = "sentiment"
	KindPremium         Kind = "premium"
	KindFunding         Kind = "funding"
	KindDominance       Kind = "dominance"
	KindM2Growth        Kind = "m2_growth"
	KindStablecoinFloat Kind = "stablecoin_float"
)

const (
	KeyBTCMA120Dist    Key = "btc_ma120_dist"
	KeyBTCHigh52wDist  Key = "btc_high52w_dist"
	KeyBTCLow52wDist   Key = "btc_low52w_dist"
	KeyETHMA120Dist    Key = "eth_ma120_dist"
	KeyETHHigh52wDist  Key = "eth_high52w_dist"
	KeyETHLow52wDist   Key = "eth_low52w_dist"
	KeySentiment       Key = "sentiment"
	KeyPremium         Key = "premium"
	KeyFunding         Key = "funding"
	KeyDominance       Key = "dominance"
	KeyM2YoY           Key = "m2_yoy"
	KeyStablecoinFloat Key = "stablecoin_float"
)

// KeyInfo describes one declared indicator key.
type KeyInfo struct {
	Kind   Kind
	Domain Domain
	Asset  string // empty for non-asset indicators
	Label  string
}

// keyOrder fixes the iteration order for rendering and records.
var keyOrder = []Key{
	KeyBTCMA120Dist,
	KeyBTCHigh52wDist,
	KeyBTCLow52wDist,
	KeyETHMA120Dist,
	KeyETHHigh52wDist,
	KeyETHLow52wDist,
	KeySentiment,
	KeyPremium,
	KeyFunding,
	KeyDominance,
	KeyM2YoY,
	KeyStablecoinFloat,
}

var keyInfos = map[Key]KeyInfo{
	KeyBTCMA120Dist:    {Kind: KindMA120Distance, Domain: DomainPrice, Asset: "BTC", Label: "120d MA distance"},
	KeyBTCHigh52wDist:  {Kind: KindHigh52wDistance, Domain: DomainPrice, Asset: "BTC", Label: "52w high distance"},
	KeyBTCLow52wDist:   {Kind: KindLow52wDistance, Domain: DomainPrice, Asset: "BTC", Label: "52w low distance"},
	KeyETHMA120Dist:    {Kind: KindMA120Distance, Domain: DomainPrice, Asset: "ETH", Label: "120d MA distance"},
	KeyETHHigh52wDist:  {Kind: KindHigh52wDistance, Domain: DomainPrice, Asset: "ETH", Label: "52w high distance"},
	KeyETHLow52wDist:   {Kind: KindLow52wDistance, Domain: DomainPrice, Asset: "ETH", Label: "52w low distance"},
	KeySentiment:       {Kind: KindSentiment, Domain: DomainMarket, Label: "Fear & Greed"},
	KeyPremium:         {Kind: KindPremium, Domain: DomainMarket, Label: "Kimchi premium"},
	KeyFunding:         {Kind: KindFunding, Domain: DomainMarket, Label: "Funding rate"},
	KeyDominance:       {Kind: KindDominance, Domain: DomainMarket, Label: "BTC dominance"},
	KeyM2YoY:           {Kind: KindM2Growth, Domain: DomainMacro, Label: "US M2 YoY"},
	KeyStablecoinFloat: {Kind: KindStablecoinFloat, Domain: DomainMacro, Label: "Stablecoin float"},
}

// Keys returns every declared indicator key in fixed render order.
func Keys() []Key {
	out := make([]Key, len(keyOrder))
	copy(out, keyOrder)
	return out
}

// Info returns the descriptor for a declared key.
func Info(k Key) (KeyInfo, bool) {
	info, ok := keyInfos[k]
	return info, ok
}

// Snapshot maps every declared indicator key to a metric. A fetch failure is
// represented by an absent metric, never by a missing map entry.
type Snapshot map[Key]Metric

// NewSnapshot returns a snapshot with every declared key set to absent.
func NewSnapshot() Snapshot {
	s := make(Snapshot, len(keyOrder))
	for _, k := range keyOrder {
		s[k] = None()
	}
	return s
}

// Validate checks the snapshot contract: every declared key present, no
// undeclared keys, all present values finite.
func (s Snapshot) Validate() error {
	for _, k := range keyOrder {
		m, ok := s[k]
		if !ok {
			return fmt.Errorf("snapshot is missing declared key %q", k)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("snapshot key %q: %w", k, err)
		}
	}
	for k := range s {
		if _, ok := keyInfos[k]; !ok {
			return fmt.Errorf("snapshot contains undeclared key %q", k)
		}
	}
	return nil
}

// MarketContext carries display-only values for the rendered report. None of
// these are classified; absence renders as N/A.
type MarketContext struct {
	BTCSpotUSD         Metric
	BTCChange24h       Metric
	ETHSpotUSD         Metric
	ETHChange24h       Metric
	SentimentYesterday Metric
	SentimentWeekAgo   Metric
	USDKRW             Metric
	BTCOpenInterest    Metric
}
