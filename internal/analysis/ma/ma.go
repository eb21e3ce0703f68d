// Package ma analyzes the 5/10/20/30/60/90/250 moving-average system: long and
// medium trend, short-term events, stacking formation, spread strength and
// support/resistance levels.
package ma

import (
	"fmt"
	"strings"

	"SignalSentinel/internal/analysis/rule"
	"SignalSentinel/internal/analysis/stats"
	"SignalSentinel/internal/analysis/trend"
	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// Key names an MA column in results, e.g. "ma_20".
func Key(period int) string {
	return fmt.Sprintf("ma_%d", period)
}

// Result is the MA family output.
type Result struct {
	Values  map[string]float64 `json:"ma_values"`
	Signals Signals            `json:"signals"`
}

// Signals groups every MA classification.
type Signals struct {
	LongTermTrend     LongTrend         `json:"long_term_trend"`
	MediumTermTrend   MediumTrend       `json:"medium_term_trend"`
	ShortTermSignal   ShortSignal       `json:"short_term_signal"`
	Formation         Formation         `json:"formation"`
	Strength          SystemStrength    `json:"strength"`
	SupportResistance SupportResistance `json:"support_resistance"`
	Signal            string            `json:"signal"`
}

func (r Result) Composite() string { return r.Signals.Signal }
func (r Result) Available() bool   { return true }

type LongTrend struct {
	Trend      string  `json:"trend"`
	MA250Slope float64 `json:"ma250_slope"`
	MA60Slope  float64 `json:"ma60_slope"`
	Period     string  `json:"period"`
}

type MediumTrend struct {
	Trend     string  `json:"trend"`
	MA60Slope float64 `json:"ma60_slope"`
	MA20Slope float64 `json:"ma20_slope"`
	Slope     float64 `json:"slope"`
	Period    string  `json:"period"`
}

// Analyze runs every MA classifier over the 250/60/20 windows.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyMA, s, spans)
	if err != nil {
		return nil, err
	}
	if err := window.Require(model.FamilyMA, w.Short, 2); err != nil {
		return nil, err
	}
	if err := requireMA(w.Long, len(w.Full), 250, spans.Long); err != nil {
		return nil, err
	}
	if err := requireMA(w.Medium, len(w.Full), 60, spans.Medium); err != nil {
		return nil, err
	}

	latest := w.Full.Latest()
	values := make(map[string]float64, len(model.MAPeriods))
	for _, p := range model.MAPeriods {
		values[Key(p)] = latest.MA(p)
	}

	sig := Signals{
		LongTermTrend:     longTermTrend(w.Long, spans.Long),
		MediumTermTrend:   mediumTermTrend(w.Medium, spans.Medium),
		ShortTermSignal:   shortTermSignal(w.Short, spans.Short),
		Formation:         formation(latest),
		Strength:          systemStrength(w.Medium.Latest()),
		SupportResistance: supportResistance(latest),
	}
	sig.Signal = composite(sig)
	return Result{Values: values, Signals: sig}, nil
}

// requireMA fails unless every bar of s carries a usable MA(period). A window
// of span bars needs span+period-1 bars of price history behind it.
func requireMA(s model.Series, have, period, span int) error {
	for _, b := range s {
		if !stats.Usable(b.MA(period)) {
			return &window.InsufficientDataError{Family: model.FamilyMA, Have: have, Need: span + period - 1}
		}
	}
	return nil
}

type slopePair struct{ slow, fast float64 }

var longTrendTable = rule.Table[slopePair]{
	Rules: []rule.Rule[slopePair]{
		{When: func(p slopePair) bool { return p.slow > 0 && p.fast > 0 }, Label: "强势上涨"},
		{When: func(p slopePair) bool { return p.slow < 0 && p.fast < 0 }, Label: "强势下跌"},
		{When: func(p slopePair) bool { return p.slow > 0 && p.fast < 0 }, Label: "上涨趋势转弱"},
		{When: func(p slopePair) bool { return p.slow < 0 && p.fast > 0 }, Label: "下跌趋势企稳"},
	},
	Fallback: "长期震荡",
}

// longTermTrend compares the MA250 and MA60 slopes over the long window.
func longTermTrend(s model.Series, span int) LongTrend {
	p := slopePair{
		slow: trend.Slope(s.Values(model.ColMA(250))),
		fast: trend.Slope(s.Values(model.ColMA(60))),
	}
	return LongTrend{
		Trend:      longTrendTable.Eval(p),
		MA250Slope: p.slow,
		MA60Slope:  p.fast,
		Period:     fmt.Sprintf("%d天", span),
	}
}

// mediumTermTrend grades the MA20 slope; MA60 agreement makes the move 强势.
func mediumTermTrend(s model.Series, span int) MediumTrend {
	ma60 := trend.Slope(s.Values(model.ColMA(60)))
	ma20 := trend.Slope(s.Values(model.ColMA(20)))
	dir := trend.Classify(ma20)

	var label string
	switch {
	case dir == trend.Sideways:
		label = "横盘震荡"
	case dir.Rising() && ma60 > 0:
		label = "强势上涨"
	case dir.Rising():
		label = "弱势上涨"
	case ma60 < 0:
		label = "强势下跌"
	default:
		label = "弱势下跌"
	}
	return MediumTrend{
		Trend:     label,
		MA60Slope: ma60,
		MA20Slope: ma20,
		Slope:     ma20,
		Period:    fmt.Sprintf("%d天", span),
	}
}

// composite: formation, trend agreement across windows, short-term summary,
// then system strength.
func composite(sig Signals) string {
	parts := []string{fmt.Sprintf("均线%s（%s）", sig.Formation.Type, sig.Formation.Strength)}

	medium, long := sig.MediumTermTrend.Trend, sig.LongTermTrend.Trend
	switch {
	case strings.Contains(medium, "上涨") && strings.Contains(long, "上涨"):
		parts = append(parts, "多头趋势确立")
	case strings.Contains(medium, "上涨"):
		parts = append(parts, "多头趋势形成中")
	case strings.Contains(medium, "下跌") && strings.Contains(long, "下跌"):
		parts = append(parts, "空头趋势确立")
	case strings.Contains(medium, "下跌"):
		parts = append(parts, "空头趋势形成中")
	default:
		parts = append(parts, "趋势不明确")
	}

	if sig.ShortTermSignal.Summary != NoShortSignal {
		parts = append(parts, "出现"+sig.ShortTermSignal.Summary)
	}
	parts = append(parts, "（"+sig.Strength.Strength+"）")
	return strings.Join(parts, "，")
}
