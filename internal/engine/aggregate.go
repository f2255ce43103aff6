package engine

import "github.com/dwkim-dev/cryptobrief/internal/models"

// Leaning is the directional reading of one classified indicator.
type Leaning int

const (
	LeanNone Leaning = iota
	LeanBullish
	LeanBearish
)

// Call is the aggregate directional verdict.
type Call string

const (
	CallBullish Call = "BULLISH"
	CallBearish Call = "BEARISH"
	CallNeutral Call = "NEUTRAL"
)

// polarityTable declares, per indicator family, which tiers vote and in which
// direction. Families without an entry are display-only and never vote.
// MA distance and sentiment are contrarian: their extreme tier reads bullish.
var polarityTable = map[models.Kind]map[Tier]Leaning{
	models.KindMA120Distance: {
		TierRed: LeanBullish,
	},
	models.KindSentiment: {
		TierGreen: LeanBullish,
		TierRed:   LeanBearish,
	},
	models.KindPremium: {
		TierRed: LeanBearish,
	},
	models.KindFunding: {
		TierRed: LeanBearish,
	},
	models.KindDominance: {
		TierRed: LeanBearish,
	},
	models.KindM2Growth: {
		TierRed: LeanBearish,
	},
	models.KindStablecoinFloat: {
		TierRed: LeanBearish,
	},
}

// Directional reports whether an indicator family participates in the vote.
func Directional(kind models.Kind) bool {
	_, ok := polarityTable[kind]
	return ok
}

// Lean returns the declared leaning of a tier for an indicator family.
func Lean(kind models.Kind, tier Tier) Leaning {
	return polarityTable[kind][tier]
}

// Verdict holds the directional vote counts and the final call.
type Verdict struct {
	Call    Call
	Bullish int
	Bearish int
}

// Action returns the suggested stance for the call.
func (v Verdict) Action() string {
	switch v.Call {
	case CallBullish:
		return "Consider scaling in"
	case CallBearish:
		return "Hold off, manage risk"
	default:
		return "Wait and see"
	}
}

// Aggregate counts directional leanings over the classified set and applies
// the verdict rule. The +1 margin is a deadband against flip-flopping on
// near-even splits.
func Aggregate(tiers map[models.Key]Tier) Verdict {
	var bullish, bearish int
	for key, tier := range tiers {
		info, ok := models.Info(key)
		if !ok {
			continue
		}
		switch Lean(info.Kind, tier) {
		case LeanBullish:
			bullish++
		case LeanBearish:
			bearish++
		}
	}
	return Verdict{Call: decide(bullish, bearish), Bullish: bullish, Bearish: bearish}
}

func decide(bullish, bearish int) Call {
	switch {
	case bullish > bearish+1:
		return CallBullish
	case bearish > bullish+1:
		return CallBearish
	default:
		return CallNeutral
	}
}
