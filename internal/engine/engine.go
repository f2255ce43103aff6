package engine

import (
	"fmt"
	"time"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Options selects optional engine features.
type Options struct {
	// Aggregation enables the composite directional verdict. When false the
	// briefing is display-only tiers.
	Aggregation bool
}

// Evaluation is the result of one engine run over a snapshot.
type Evaluation struct {
	Snapshot models.Snapshot
	Tiers    map[models.Key]Tier
	Verdict  *Verdict // nil when aggregation is disabled
}

// Evaluate classifies every declared indicator and, when enabled, aggregates
// the directional subset. The only error is a snapshot contract violation;
// absent metrics classify as UNKNOWN and never fail.
func Evaluate(snap models.Snapshot, opts Options) (*Evaluation, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	tiers := make(map[models.Key]Tier, len(snap))
	for _, key := range models.Keys() {
		info, _ := models.Info(key)
		tiers[key] = Classify(info.Kind, snap[key])
	}

	ev := &Evaluation{Snapshot: snap, Tiers: tiers}
	if opts.Aggregation {
		verdict := Aggregate(tiers)
		ev.Verdict = &verdict
	}
	return ev, nil
}

// Record builds the machine-readable cycle record for history logging.
func (e *Evaluation) Record(id string, generatedAt time.Time) models.CycleRecord {
	rec := models.CycleRecord{
		ID:          id,
		GeneratedAt: generatedAt,
		Indicators:  make(map[models.Key]models.IndicatorRecord, len(e.Tiers)),
	}
	for _, key := range models.Keys() {
		ir := models.IndicatorRecord{Tier: e.Tiers[key].String()}
		if v, ok := e.Snapshot[key].Get(); ok {
			raw := v
			ir.Raw = &raw
		}
		rec.Indicators[key] = ir
	}
	if e.Verdict != nil {
		rec.Verdict = string(e.Verdict.Call)
		rec.BullishCount = e.Verdict.Bullish
		rec.BearishCount = e.Verdict.Bearish
	}
	return rec
}
