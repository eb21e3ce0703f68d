// Package chart renders an enriched series as an interactive ECharts page:
// candles with moving averages and Bollinger bands, then MACD, KDJ and RSI panels.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"SignalSentinel/internal/model"
)

// DefaultBars is how many recent bars a page shows.
const DefaultBars = 120

var ErrEmptySeries = errors.New("chart: empty series")

// Render writes a standalone HTML page for the last DefaultBars bars of s.
func Render(w io.Writer, title string, s model.Series) error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	s = s.Tail(DefaultBars)
	dates := make([]string, len(s))
	for i, b := range s {
		dates[i] = b.Time.Format("2006-01-02")
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		priceChart(title, dates, s),
		macdChart(dates, s),
		kdjChart(dates, s),
		rsiChart(dates, s),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func lineData(s model.Series, col model.Column) []opts.LineData {
	out := make([]opts.LineData, len(s))
	for i, b := range s {
		v := col(b)
		if v == 0 {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func panel(title string, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "240px"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(dates)
	return line
}

func priceChart(title string, dates []string, s model.Series) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "480px"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 50, End: 100}),
	)

	candles := make([]opts.KlineData, len(s))
	for i, b := range s {
		// ECharts order: open, close, low, high.
		candles[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	kline.SetXAxis(dates).AddSeries("K线", candles)

	overlay := charts.NewLine()
	overlay.SetXAxis(dates)
	for _, p := range []int{5, 10, 20} {
		overlay.AddSeries(fmt.Sprintf("MA%d", p), lineData(s, model.ColMA(p)))
	}
	overlay.AddSeries("BOLL上轨", lineData(s, model.ColBollUpper)).
		AddSeries("BOLL中轨", lineData(s, model.ColBollMid)).
		AddSeries("BOLL下轨", lineData(s, model.ColBollLower))
	kline.Overlap(overlay)
	return kline
}

func macdChart(dates []string, s model.Series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "MACD"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "240px"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	hist := make([]opts.BarData, len(s))
	for i, b := range s {
		hist[i] = opts.BarData{Value: b.MACD}
	}
	bar.SetXAxis(dates).AddSeries("MACD", hist)

	lines := charts.NewLine()
	lines.SetXAxis(dates).
		AddSeries("DIF", lineData(s, model.ColDIF)).
		AddSeries("DEA", lineData(s, model.ColDEA))
	bar.Overlap(lines)
	return bar
}

func kdjChart(dates []string, s model.Series) *charts.Line {
	line := panel("KDJ", dates)
	line.AddSeries("K", lineData(s, model.ColK)).
		AddSeries("D", lineData(s, model.ColD)).
		AddSeries("J", lineData(s, model.ColJ))
	return line
}

func rsiChart(dates []string, s model.Series) *charts.Line {
	line := panel("RSI", dates)
	line.AddSeries("RSI6", lineData(s, model.ColRSI6),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "超买", YAxis: 80},
			opts.MarkLineNameYAxisItem{Name: "超卖", YAxis: 20},
		),
	).
		AddSeries("RSI12", lineData(s, func(b model.Bar) float64 { return b.RSI12 })).
		AddSeries("RSI24", lineData(s, func(b model.Bar) float64 { return b.RSI24 }))
	return line
}
