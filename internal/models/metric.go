// Package models defines the core domain entities: metrics, snapshots, and cycle records.
package models

import (
	"fmt"
	"math"
)

// Metric is a numeric observation that may be absent. Absence means the
// upstream fetch failed or the source had no data; it is never encoded as a
// sentinel value like zero.
type Metric struct {
	value float64
	valid bool
}

// Some returns a present metric holding v.
func Some(v float64) Metric {
	return Metric{value: v, valid: true}
}

// None returns an absent metric.
func None() Metric {
	return Metric{}
}

// Get returns the value and whether it is present.
func (m Metric) Get() (float64, bool) {
	return m.value, m.valid
}

// Absent reports whether the metric has no value.
func (m Metric) Absent() bool {
	return !m.valid
}

// Validate rejects non-finite values on present metrics.
func (m Metric) Validate() error {
	if m.valid && (math.IsNaN(m.value) || math.IsInf(m.value, 0)) {
		return fmt.Errorf("metric value must be finite, got %v", m.value)
	}
	return nil
}
