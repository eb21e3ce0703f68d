// Package console prints an analysis as terminal tables for the analyze command.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"SignalSentinel/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	bullStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	bearStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	neutralStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func num(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func pct(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsNegative() {
		return d.StringFixed(places) + "%"
	}
	return "+" + d.StringFixed(places) + "%"
}

// tierStyle follows A-share colouring: red is bullish, green bearish.
func tierStyle(bias int) lipgloss.Style {
	switch {
	case bias > 0:
		return bullStyle
	case bias < 0:
		return bearStyle
	}
	return neutralStyle
}

// Render writes the price context, per-family signals and the consensus to w.
// c may be nil.
func Render(w io.Writer, pc model.PriceContext, res *model.AnalysisResult, c *model.Consensus) error {
	header := fmt.Sprintf("%s 技术信号 %s", res.Symbol, res.AsOf.Format("2006-01-02"))
	if _, err := fmt.Fprintln(w, titleStyle.Render(header)); err != nil {
		return err
	}

	price := table.NewWriter()
	price.SetStyle(table.StyleLight)
	price.AppendHeader(table.Row{"最新价", "涨跌幅", "量能变化", "52周低", "52周高", "52周位置"})
	price.AppendRow(table.Row{
		num(pc.LatestClose, 2), pct(pc.ChangePct, 2), pct(pc.VolumeChangePct, 1),
		num(pc.Low52w, 2), num(pc.High52w, 2), num(pc.Position52w*100, 0) + "%",
	})
	if _, err := fmt.Fprintln(w, price.Render()); err != nil {
		return err
	}

	signals := table.NewWriter()
	signals.SetStyle(table.StyleLight)
	signals.AppendHeader(table.Row{"指标", "状态", "综合信号"})
	signals.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: 80}})
	for _, f := range model.Families {
		r := res.Get(f)
		status := "✓"
		if !r.Available() {
			status = "✖"
		}
		signals.AppendRow(table.Row{f.DisplayName(), status, r.Composite()})
	}
	if _, err := fmt.Fprintln(w, signals.Render()); err != nil {
		return err
	}

	if c == nil {
		return nil
	}

	factors := table.NewWriter()
	factors.SetStyle(table.StyleLight)
	factors.AppendHeader(table.Row{"因子", "得分", "权重", "加权"})
	factors.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, f := range c.Factors {
		factors.AppendRow(table.Row{f.Name, num(f.RawScore, 1), num(f.Weight, 2), num(f.Weighted, 3)})
	}
	factors.AppendFooter(table.Row{"综合", "", "", num(c.TotalScore, 3)})
	if _, err := fmt.Fprintln(w, factors.Render()); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "综合判断: "+tierStyle(c.Tier.Bias).Render(c.Tier.Label)); err != nil {
		return err
	}
	if c.WarningMsg != "" {
		if _, err := fmt.Fprintln(w, warnStyle.Render(c.WarningMsg)); err != nil {
			return err
		}
	}
	return nil
}
