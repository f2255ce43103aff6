package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/dwkim-dev/cryptobrief/internal/engine"
	"github.com/dwkim-dev/cryptobrief/internal/models"
)

func tierColor(t engine.Tier) string {
	switch t {
	case engine.TierGreen:
		return "#2e7d32"
	case engine.TierYellow:
		return "#f9a825"
	case engine.TierRed:
		return "#c62828"
	default:
		return "#9e9e9e"
	}
}

// HTML renders the email-delivery shape. Section order and numeric content
// are identical to the markdown shape; only the markup differs.
func HTML(in Input) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<body style=\"font-family:sans-serif;color:#212121\">\n")
	b.WriteString("<h2>Daily Crypto Briefing</h2>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(in.GeneratedAt.Format(timestampLayout)))

	writeAssetBlockHTML(&b, in, "BTC", in.Context.BTCSpotUSD, in.Context.BTCChange24h)
	writeAssetBlockHTML(&b, in, "ETH", in.Context.ETHSpotUSD, in.Context.ETHChange24h)

	b.WriteString("<h3>Market</h3>\n<ul>\n")
	for _, key := range domainKeys(models.DomainMarket) {
		writeIndicatorItemHTML(&b, in, key)
		if key == models.KeySentiment {
			fmt.Fprintf(&b, "<li>Fear &amp; Greed yesterday: %s, week ago: %s</li>\n",
				html.EscapeString(score(in.Context.SentimentYesterday)),
				html.EscapeString(score(in.Context.SentimentWeekAgo)))
		}
	}
	fmt.Fprintf(&b, "<li>Open interest: %s BTC</li>\n", html.EscapeString(rate(in.Context.BTCOpenInterest)))
	b.WriteString("</ul>\n")

	b.WriteString("<h3>Macro</h3>\n<ul>\n")
	for _, key := range domainKeys(models.DomainMacro) {
		writeIndicatorItemHTML(&b, in, key)
	}
	fmt.Fprintf(&b, "<li>USD/KRW: %s</li>\n", html.EscapeString(rate(in.Context.USDKRW)))
	b.WriteString("</ul>\n")

	if in.Verdict != nil {
		b.WriteString("<h3>Verdict</h3>\n")
		fmt.Fprintf(&b, "<p>Bullish: %d, Bearish: %d</p>\n", in.Verdict.Bullish, in.Verdict.Bearish)
		fmt.Fprintf(&b, "<p><strong>%s</strong> - %s</p>\n",
			html.EscapeString(string(in.Verdict.Call)), html.EscapeString(in.Verdict.Action()))
	}

	b.WriteString("<h3>Manual checks</h3>\n<ul>\n")
	for _, link := range footerLinks {
		fmt.Fprintf(&b, "<li>%s: <a href=\"https://%s\">%s</a></li>\n",
			html.EscapeString(link.Label), link.URL, html.EscapeString(link.URL))
	}
	b.WriteString("</ul>\n</body>\n</html>\n")

	return b.String()
}

func writeAssetBlockHTML(b *strings.Builder, in Input, asset string, spot, change models.Metric) {
	fmt.Fprintf(b, "<h3>%s</h3>\n<ul>\n", asset)
	fmt.Fprintf(b, "<li>Spot: %s (%s 24h)</li>\n",
		html.EscapeString(usd(spot)), html.EscapeString(signedPct(change)))
	for _, key := range priceKeys(asset) {
		writeIndicatorItemHTML(b, in, key)
	}
	b.WriteString("</ul>\n")
}

func writeIndicatorItemHTML(b *strings.Builder, in Input, key models.Key) {
	info, _ := models.Info(key)
	tier := in.Tiers[key]
	fmt.Fprintf(b, "<li>%s: <span style=\"color:%s\">%s</span> (%s)</li>\n",
		html.EscapeString(info.Label),
		tierColor(tier),
		html.EscapeString(indicatorValue(info.Kind, in.Snapshot[key])),
		tier.String())
}
