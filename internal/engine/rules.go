package engine

import (
	"math"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Interval is one numeric interval with independently inclusive bounds.
// Open ends are expressed with ±Inf.
type Interval struct {
	Min, Max         float64
	MinIncl, MaxIncl bool
}

func (iv Interval) contains(v float64) bool {
	if v < iv.Min || (v == iv.Min && !iv.MinIncl) {
		return false
	}
	if v > iv.Max || (v == iv.Max && !iv.MaxIncl) {
		return false
	}
	return true
}

// Band assigns a tier to a union of intervals.
type Band struct {
	Tier      Tier
	Intervals []Interval
}

func (b Band) matches(v float64) bool {
	for _, iv := range b.Intervals {
		if iv.contains(v) {
			return true
		}
	}
	return false
}

// Rule is an ordered band table with a fallback tier. Bands are evaluated in
// declared order and the first match wins, so a wide band listed after a
// narrower one acts as "wide range minus the narrower band".
type Rule struct {
	Bands    []Band
	Fallback Tier
}

func atLeast(min float64) Interval {
	return Interval{Min: min, Max: math.Inf(1), MinIncl: true, MaxIncl: true}
}

func atMost(max float64) Interval {
	return Interval{Min: math.Inf(-1), Max: max, MinIncl: true, MaxIncl: true}
}

func above(min float64) Interval {
	return Interval{Min: min, Max: math.Inf(1), MinIncl: false, MaxIncl: true}
}

func closed(min, max float64) Interval {
	return Interval{Min: min, Max: max, MinIncl: true, MaxIncl: true}
}

// halfOpen is inclusive at min, exclusive at max.
func halfOpen(min, max float64) Interval {
	return Interval{Min: min, Max: max, MinIncl: true}
}

func open(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// ruleTable is declared policy, one entry per indicator family. Nothing here
// is fitted to data.
var ruleTable = map[models.Kind]Rule{
	models.KindMA120Distance: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{atLeast(5)}},
			{Tier: TierYellow, Intervals: []Interval{halfOpen(-5, 5)}},
		},
		Fallback: TierRed,
	},
	models.KindHigh52wDistance: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{atLeast(-15)}},
			{Tier: TierYellow, Intervals: []Interval{halfOpen(-40, -15)}},
		},
		Fallback: TierRed,
	},
	models.KindLow52wDistance: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{atLeast(100)}},
			{Tier: TierYellow, Intervals: []Interval{halfOpen(30, 100)}},
		},
		Fallback: TierRed,
	},
	models.KindSentiment: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{atMost(25)}},
			{Tier: TierYellow, Intervals: []Interval{open(25, 75)}},
		},
		Fallback: TierRed,
	},
	models.KindPremium: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{closed(-1, 2)}},
			{Tier: TierYellow, Intervals: []Interval{closed(-3, 5)}},
		},
		Fallback: TierRed,
	},
	models.KindFunding: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{closed(-0.01, 0.03)}},
			{Tier: TierYellow, Intervals: []Interval{closed(-0.03, 0.08)}},
		},
		Fallback: TierRed,
	},
	models.KindDominance: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{closed(50, 60)}},
			{Tier: TierYellow, Intervals: []Interval{closed(45, 65)}},
		},
		Fallback: TierRed,
	},
	models.KindM2Growth: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{above(5)}},
			{Tier: TierYellow, Intervals: []Interval{closed(0, 5)}},
		},
		Fallback: TierRed,
	},
	models.KindStablecoinFloat: {
		Bands: []Band{
			{Tier: TierGreen, Intervals: []Interval{above(200)}},
			{Tier: TierYellow, Intervals: []Interval{closed(150, 200)}},
		},
		Fallback: TierRed,
	},
}

// Classify maps a metric to a tier using the indicator family's rule table.
// An absent metric or an unknown family classifies as UNKNOWN; this never
// errors.
func Classify(kind models.Kind, m models.Metric) Tier {
	v, ok := m.Get()
	if !ok {
		return TierUnknown
	}
	rule, ok := ruleTable[kind]
	if !ok {
		return TierUnknown
	}
	for _, band := range rule.Bands {
		if band.matches(v) {
			return band.Tier
		}
	}
	return rule.Fallback
}
