package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/recorder"
)

// fixed renders v with exactly places decimals, without float noise.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// signed renders v with an explicit sign.
func signed(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsNegative() {
		return d.StringFixed(places)
	}
	return "+" + d.StringFixed(places)
}

// FormatAnalysis formats one symbol's analysis into a Telegram message.
func FormatAnalysis(pc model.PriceContext, res *model.AnalysisResult, c *model.Consensus) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s 技术信号</b> | %s\n\n", html.EscapeString(res.Symbol), res.AsOf.Format("2006-01-02")))

	// Price context
	b.WriteString(fmt.Sprintf("最新价: %s (%s%%)\n", fixed(pc.LatestClose, 2), signed(pc.ChangePct, 2)))
	b.WriteString(fmt.Sprintf("成交量变化: %s%%\n", signed(pc.VolumeChangePct, 1)))
	b.WriteString(fmt.Sprintf("52周区间: %s ~ %s (位置 %s%%)\n\n",
		fixed(pc.Low52w, 2), fixed(pc.High52w, 2), fixed(pc.Position52w*100, 0)))

	// Family signals
	b.WriteString("🧭 <b>指标信号:</b>\n")
	for _, f := range model.Families {
		r := res.Get(f)
		mark := "•"
		if !r.Available() {
			mark = "✖"
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", mark, f.DisplayName(), html.EscapeString(r.Composite())))
	}

	if c != nil {
		b.WriteString("\n📈 <b>共振评分:</b>\n")
		for _, f := range c.Factors {
			b.WriteString(fmt.Sprintf("  %s: %s (×%s) = %s\n",
				f.Name, signed(f.RawScore, 1), fixed(f.Weight, 2), signed(f.Weighted, 3)))
		}
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("  综合评分: %s\n", signed(c.TotalScore, 3)))
		b.WriteString(fmt.Sprintf("\n🎯 <b>综合判断:</b> %s\n", c.Tier.Label))
		if c.WarningMsg != "" {
			b.WriteString(fmt.Sprintf("\n%s\n", c.WarningMsg))
		}
	}
	return b.String()
}

// FormatWatchlist lists the symbols analyzed by the daily job.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "📋 <b>自选列表</b>\n\n(空)"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>自选列表</b> (%d)\n\n", len(symbols)))
	for i, s := range symbols {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, html.EscapeString(s)))
	}
	return b.String()
}

// FormatRunHistory summarizes recent stored runs for one symbol.
func FormatRunHistory(symbol string, runs []recorder.RunSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s 历史信号</b>\n\n", html.EscapeString(symbol)))
	if len(runs) == 0 {
		b.WriteString("暂无记录")
		return b.String()
	}
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%s  %s  %s (%s)\n",
			r.AsOf.Format("2006-01-02"), fixed(r.LatestClose, 2), r.TierLabel, signed(r.TotalScore, 2)))
	}
	return b.String()
}
