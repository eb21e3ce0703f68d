// Package boll places the close within the Bollinger bands and tracks band width.
package boll

import (
	"fmt"
	"math"

	"SignalSentinel/internal/analysis/rule"
	"SignalSentinel/internal/analysis/stats"
	"SignalSentinel/internal/analysis/trend"
	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// WidthBars is how many trailing bars decide the band-width direction.
const WidthBars = 5

type Result struct {
	Upper     float64 `json:"UPPER"`
	Mid       float64 `json:"MID"`
	Lower     float64 `json:"LOWER"`
	Position  string  `json:"position"`
	Bandwidth string  `json:"bandwidth"`
	Signal    string  `json:"signal"`
}

func (r Result) Composite() string { return r.Signal }
func (r Result) Available() bool   { return true }

var positionTable = rule.Table[model.Bar]{
	Rules: []rule.Rule[model.Bar]{
		{When: func(b model.Bar) bool { return b.Close > b.BollUpper }, Label: "突破上轨"},
		{When: func(b model.Bar) bool { return b.Close < b.BollLower }, Label: "突破下轨"},
		{When: func(b model.Bar) bool { return b.Close > b.BollMid }, Label: "运行于上轨区间"},
	},
	Fallback: "运行于下轨区间",
}

// Analyze classifies the medium window's latest bar.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyBOLL, s, spans)
	if err != nil {
		return nil, err
	}
	latest := w.Full.Latest()
	r := Result{
		Upper:     latest.BollUpper,
		Mid:       latest.BollMid,
		Lower:     latest.BollLower,
		Position:  positionTable.Eval(w.Medium.Latest()),
		Bandwidth: bandwidthTrend(w.Medium),
	}
	r.Signal = fmt.Sprintf("%s（带宽%s）", r.Position, r.Bandwidth)
	return r, nil
}

// Widths returns (upper-lower)/mid*100 per bar; a zero mid gives NaN.
func Widths(s model.Series) []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		if !stats.Usable(b.BollMid) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (b.BollUpper - b.BollLower) / b.BollMid * 100
	}
	return out
}

// bandwidthTrend: 扩大 when the last widths never shrink, 收窄 when they never
// grow, otherwise 平稳. Undefined widths grade as 平稳.
func bandwidthTrend(s model.Series) string {
	widths := stats.Tail(Widths(s), WidthBars)
	for _, v := range widths {
		if !stats.IsFinite(v) {
			return "平稳"
		}
	}
	switch trend.TailWord(widths, WidthBars) {
	case "上升":
		return "扩大"
	case "下降":
		return "收窄"
	default:
		return "平稳"
	}
}
