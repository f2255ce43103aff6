// Package report renders an evaluation into delivery-ready documents. The
// renderers only format: classification and aggregation happen upstream, so
// the same inputs always produce byte-identical output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dwkim-dev/cryptobrief/internal/engine"
	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Input is everything a renderer needs. GeneratedAt is an explicit input so
// rendering never reads the wall clock.
type Input struct {
	Snapshot    models.Snapshot
	Context     models.MarketContext
	Tiers       map[models.Key]engine.Tier
	Verdict     *engine.Verdict
	GeneratedAt time.Time
}

// absentMarker is rendered for every absent value; indicators are never
// omitted from the report.
const absentMarker = "N/A"

// footerLinks are manual-check resources appended to every briefing.
var footerLinks = []struct{ Label, URL string }{
	{"ETF flow", "sosovalue.com/assets/etf/us-btc-spot"},
	{"LTH-SOPR", "charts.bgeometrics.com/lth_sopr.html"},
	{"MVRV", "charts.bgeometrics.com/mvrv.html"},
	{"Global M2", "charts.bgeometrics.com/m2_global.html"},
}

const timestampLayout = "2006-01-02 15:04"

// signedPct formats a signed delta with one decimal and an explicit sign.
func signedPct(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return fmt.Sprintf("%+.1f%%", v)
}

// pct formats an unsigned percentage with one decimal.
func pct(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return fmt.Sprintf("%.1f%%", v)
}

// funding formats a funding rate with four decimals.
func funding(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return fmt.Sprintf("%.4f%%", v)
}

// score formats a 0-100 index value with no decimals.
func score(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return fmt.Sprintf("%.0f", v)
}

// usd formats a dollar amount with thousands separators.
func usd(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return "$" + humanize.CommafWithDigits(v, 0)
}

// usdBillions formats a value already denominated in billions of dollars.
func usdBillions(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return "$" + humanize.CommafWithDigits(v, 1) + "B"
}

// rate formats an FX rate with thousands separators and no decimals.
func rate(m models.Metric) string {
	v, ok := m.Get()
	if !ok {
		return absentMarker
	}
	return humanize.CommafWithDigits(v, 0)
}

// indicatorValue picks the fixed format for an indicator family.
func indicatorValue(kind models.Kind, m models.Metric) string {
	switch kind {
	case models.KindSentiment:
		return score(m)
	case models.KindFunding:
		return funding(m)
	case models.KindStablecoinFloat:
		return usdBillions(m)
	case models.KindDominance:
		return pct(m)
	default:
		return signedPct(m)
	}
}

// priceKeys returns the price-domain keys for one asset in declared order.
func priceKeys(asset string) []models.Key {
	var keys []models.Key
	for _, k := range models.Keys() {
		info, _ := models.Info(k)
		if info.Domain == models.DomainPrice && info.Asset == asset {
			keys = append(keys, k)
		}
	}
	return keys
}

// domainKeys returns the keys of one non-price domain in declared order.
func domainKeys(domain models.Domain) []models.Key {
	var keys []models.Key
	for _, k := range models.Keys() {
		info, _ := models.Info(k)
		if info.Domain == domain {
			keys = append(keys, k)
		}
	}
	return keys
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
