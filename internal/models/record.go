package models

import "time"

// IndicatorRecord is the machine-readable result for one indicator.
// Raw is nil when the snapshot value was absent.
type IndicatorRecord struct {
	Raw  *float64 `json:"raw_value"`
	Tier string   `json:"tier"`
}

// CycleRecord is the machine-readable output of one evaluation cycle,
// suitable for append-only history logging. BTCOpenInterest is a display-only
// context value carried alongside the classified indicators; nil when the
// fetch failed.
type CycleRecord struct {
	ID              string                  `json:"id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Indicators      map[Key]IndicatorRecord `json:"indicators"`
	Verdict         string                  `json:"verdict,omitempty"`
	BullishCount    int                     `json:"bullish_count"`
	BearishCount    int                     `json:"bearish_count"`
	BTCOpenInterest *float64                `json:"btc_open_interest,omitempty"`
}
