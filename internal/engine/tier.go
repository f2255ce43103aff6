// Package engine turns a metric snapshot into per-indicator tiers, an optional
// composite verdict, and a machine-readable cycle record. It is pure: no I/O,
// no state across invocations.
package engine

// Tier is the traffic-light classification of one indicator.
type Tier int

const (
	TierUnknown Tier = iota
	TierGreen
	TierYellow
	TierRed
)

// String returns the canonical tier name used in records and reports.
func (t Tier) String() string {
	switch t {
	case TierGreen:
		return "GREEN"
	case TierYellow:
		return "YELLOW"
	case TierRed:
		return "RED"
	default:
		return "UNKNOWN"
	}
}

// Emoji returns the tier marker used in rendered reports.
func (t Tier) Emoji() string {
	switch t {
	case TierGreen:
		return "🟢"
	case TierYellow:
		return "🟡"
	case TierRed:
		return "🔴"
	default:
		return "⚪"
	}
}
