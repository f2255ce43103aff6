package report

import (
	"fmt"
	"strings"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Markdown renders the chat-delivery shape: a Telegram MarkdownV2 document
// with fixed section order (price per asset, market, macro, verdict, footer).
func Markdown(in Input) string {
	var b strings.Builder

	b.WriteString("📊 *Daily Crypto Briefing*\n")
	fmt.Fprintf(&b, "📅 %s\n\n", escapeMarkdownV2(in.GeneratedAt.Format(timestampLayout)))

	writeAssetBlockMD(&b, in, "BTC", in.Context.BTCSpotUSD, in.Context.BTCChange24h)
	writeAssetBlockMD(&b, in, "ETH", in.Context.ETHSpotUSD, in.Context.ETHChange24h)

	b.WriteString("*📈 Market*\n")
	for _, key := range domainKeys(models.DomainMarket) {
		writeIndicatorLineMD(&b, in, key)
		if key == models.KeySentiment {
			fmt.Fprintf(&b, "  └ yday %s \\| 7d %s\n",
				escapeMarkdownV2(score(in.Context.SentimentYesterday)),
				escapeMarkdownV2(score(in.Context.SentimentWeekAgo)))
		}
	}
	fmt.Fprintf(&b, "• Open interest: %s BTC\n", escapeMarkdownV2(rate(in.Context.BTCOpenInterest)))
	b.WriteString("\n")

	b.WriteString("*💵 Macro*\n")
	for _, key := range domainKeys(models.DomainMacro) {
		writeIndicatorLineMD(&b, in, key)
	}
	fmt.Fprintf(&b, "• USD/KRW: %s\n\n", escapeMarkdownV2(rate(in.Context.USDKRW)))

	if in.Verdict != nil {
		b.WriteString("*🎯 Verdict*\n")
		fmt.Fprintf(&b, "🟢 Bullish: %d \\| 🔴 Bearish: %d\n", in.Verdict.Bullish, in.Verdict.Bearish)
		fmt.Fprintf(&b, "*%s* \\- %s\n\n", escapeMarkdownV2(string(in.Verdict.Call)), escapeMarkdownV2(in.Verdict.Action()))
	}

	b.WriteString("📌 Manual checks:\n")
	for _, link := range footerLinks {
		fmt.Fprintf(&b, "• %s: %s\n", escapeMarkdownV2(link.Label), escapeMarkdownV2(link.URL))
	}

	return b.String()
}

func writeAssetBlockMD(b *strings.Builder, in Input, asset string, spot, change models.Metric) {
	fmt.Fprintf(b, "*💰 %s*\n", asset)
	fmt.Fprintf(b, "• Spot: %s \\(%s 24h\\)\n",
		escapeMarkdownV2(usd(spot)), escapeMarkdownV2(signedPct(change)))
	for _, key := range priceKeys(asset) {
		writeIndicatorLineMD(b, in, key)
	}
	b.WriteString("\n")
}

func writeIndicatorLineMD(b *strings.Builder, in Input, key models.Key) {
	info, _ := models.Info(key)
	fmt.Fprintf(b, "• %s %s: %s\n",
		in.Tiers[key].Emoji(),
		escapeMarkdownV2(info.Label),
		escapeMarkdownV2(indicatorValue(info.Kind, in.Snapshot[key])))
}
