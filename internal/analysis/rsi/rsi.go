// Package rsi grades RSI6 into overbought/oversold bands with its recent direction.
package rsi

import (
	"fmt"

	"SignalSentinel/internal/analysis/rule"
	"SignalSentinel/internal/analysis/trend"
	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// TrendBars is how many trailing RSI6 values decide the direction word.
const TrendBars = 5

type Result struct {
	RSI6   float64 `json:"RSI6"`
	RSI12  float64 `json:"RSI12"`
	RSI24  float64 `json:"RSI24"`
	Zone   string  `json:"zone"`
	Trend  string  `json:"trend"`
	Signal string  `json:"signal"`
}

func (r Result) Composite() string { return r.Signal }
func (r Result) Available() bool   { return true }

var zoneTable = rule.Table[float64]{
	Rules: []rule.Rule[float64]{
		{When: func(v float64) bool { return v > 80 }, Label: "超买"},
		{When: func(v float64) bool { return v < 20 }, Label: "超卖"},
		{When: func(v float64) bool { return v > 60 }, Label: "偏强"},
		{When: func(v float64) bool { return v < 40 }, Label: "偏弱"},
	},
	Fallback: "盘整",
}

// Analyze reads the latest RSI values and classifies the medium window.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyRSI, s, spans)
	if err != nil {
		return nil, err
	}
	latest := w.Full.Latest()
	r := Result{
		RSI6:  latest.RSI6,
		RSI12: latest.RSI12,
		RSI24: latest.RSI24,
		Zone:  zoneTable.Eval(w.Medium.Latest().RSI6),
		Trend: trend.TailWord(w.Medium.Values(model.ColRSI6), TrendBars),
	}
	r.Signal = fmt.Sprintf("%s（%s趋势）", r.Zone, r.Trend)
	return r, nil
}
