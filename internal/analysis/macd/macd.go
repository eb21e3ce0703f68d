// Package macd classifies MACD trend, crossovers, divergence and strength
// over the 40/20/10 windows.
package macd

import (
	"fmt"
	"math"
	"strings"

	"SignalSentinel/internal/analysis/crossover"
	"SignalSentinel/internal/analysis/divergence"
	"SignalSentinel/internal/analysis/rule"
	"SignalSentinel/internal/analysis/stats"
	"SignalSentinel/internal/analysis/trend"
	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// Result is the MACD family output.
type Result struct {
	DIF             float64 `json:"DIF"`
	DEA             float64 `json:"DEA"`
	MACD            float64 `json:"MACD"`
	LongTermTrend   string  `json:"long_term_trend"`
	MediumTermTrend string  `json:"medium_term_trend"`
	ShortTermSignal string  `json:"short_term_signal"`
	Divergence      string  `json:"divergence"`
	Strength        string  `json:"strength"`
	Signal          string  `json:"signal"`
}

func (r Result) Composite() string { return r.Signal }
func (r Result) Available() bool   { return true }

// Analyze runs every MACD classifier over its windows.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyMACD, s, spans)
	if err != nil {
		return nil, err
	}
	if err := window.Require(model.FamilyMACD, w.Short, 2); err != nil {
		return nil, err
	}

	latest := w.Full.Latest()
	r := Result{
		DIF:             latest.MACDDif,
		DEA:             latest.MACDDea,
		MACD:            latest.MACD,
		LongTermTrend:   longTermTrend(w.Long, spans.Long),
		MediumTermTrend: mediumTermTrend(w.Medium),
		ShortTermSignal: shortTermSignal(w.Short),
		Divergence:      divergence.DetectPivots(w.Long.Values(model.ColClose), w.Long.Values(model.ColMACD)).Kind.Label(),
		Strength:        strength(w.Medium),
	}
	r.Signal = composite(r)
	return r, nil
}

type longInput struct {
	difSlope, deaSlope, histSum float64
}

var longTrendTable = rule.Table[longInput]{
	Rules: []rule.Rule[longInput]{
		{When: func(in longInput) bool { return in.difSlope > 0 && in.deaSlope > 0 && in.histSum > 0 }, Label: "强势上涨"},
		{When: func(in longInput) bool { return in.difSlope > 0 && in.deaSlope > 0 }, Label: "上涨趋势转弱"},
		{When: func(in longInput) bool { return in.difSlope < 0 && in.deaSlope < 0 && in.histSum < 0 }, Label: "强势下跌"},
		{When: func(in longInput) bool { return in.difSlope < 0 && in.deaSlope < 0 }, Label: "下跌趋势转弱"},
	},
	Fallback: "震荡整理",
}

// longTermTrend needs DIF and DEA sloping the same way; the histogram sum
// decides whether the move still has momentum.
func longTermTrend(s model.Series, span int) string {
	in := longInput{
		difSlope: trend.Slope(s.Values(model.ColDIF)),
		deaSlope: trend.Slope(s.Values(model.ColDEA)),
		histSum:  stats.Sum(s.Values(model.ColMACD)),
	}
	return fmt.Sprintf("%s（%d天）", longTrendTable.Eval(in), span)
}

func mediumTermTrend(s model.Series) string {
	_, dir := trend.Estimate(s.Values(model.ColMACD))
	return dir.Label()
}

type shortInput struct {
	cross      crossover.Kind
	hist, prev float64
}

var shortSignalTable = rule.Table[shortInput]{
	Rules: []rule.Rule[shortInput]{
		{When: func(in shortInput) bool { return in.cross == crossover.Golden }, Label: "金叉信号"},
		{When: func(in shortInput) bool { return in.cross == crossover.Death }, Label: "死叉信号"},
		{When: func(in shortInput) bool { return in.hist > 0 && in.hist > in.prev }, Label: "红柱放大"},
		{When: func(in shortInput) bool { return in.hist > 0 && in.hist < in.prev }, Label: "红柱缩小"},
		{When: func(in shortInput) bool { return in.hist < 0 && in.hist < in.prev }, Label: "绿柱放大"},
		{When: func(in shortInput) bool { return in.hist < 0 && in.hist > in.prev }, Label: "绿柱缩小"},
	},
	Fallback: "无明显信号",
}

func shortTermSignal(s model.Series) string {
	hist := s.Values(model.ColMACD)
	in := shortInput{
		cross: crossover.Detect(s.Values(model.ColDIF), s.Values(model.ColDEA)).Kind,
		hist:  stats.At(hist, 0),
		prev:  stats.At(hist, 1),
	}
	return shortSignalTable.Eval(in)
}

// strength compares the latest histogram bar against the window's sample
// standard deviation. A flat window grades as 普通.
func strength(s model.Series) string {
	hist := s.Values(model.ColMACD)
	sd := stats.StdSample(hist)
	cur := stats.Last(hist)
	if !stats.Usable(sd) {
		return "普通"
	}
	mag := math.Abs(cur)
	switch {
	case mag > 2*sd && cur > 0:
		return "极强"
	case mag > 2*sd:
		return "极弱"
	case mag > sd && cur > 0:
		return "较强"
	case mag > sd:
		return "较弱"
	default:
		return "普通"
	}
}

// composite joins divergence, the trend/short-signal combination and strength.
func composite(r Result) string {
	var parts []string
	if r.Divergence != divergence.None.Label() {
		parts = append(parts, "出现"+r.Divergence)
	}

	bullShort := strings.Contains(r.ShortTermSignal, "金叉") || strings.Contains(r.ShortTermSignal, "红柱")
	bearShort := strings.Contains(r.ShortTermSignal, "死叉") || strings.Contains(r.ShortTermSignal, "绿柱")
	switch {
	case strings.Contains(r.LongTermTrend, "上涨") || strings.Contains(r.MediumTermTrend, "上升"):
		if bullShort {
			parts = append(parts, "多头趋势增强")
		} else if bearShort {
			parts = append(parts, "多头趋势减弱")
		}
	case strings.Contains(r.LongTermTrend, "下跌") || strings.Contains(r.MediumTermTrend, "下降"):
		if bearShort {
			parts = append(parts, "空头趋势增强")
		} else if bullShort {
			parts = append(parts, "空头趋势减弱")
		}
	default:
		parts = append(parts, "震荡整理")
	}

	parts = append(parts, "（"+r.Strength+"）")
	return strings.Join(parts, "，")
}
