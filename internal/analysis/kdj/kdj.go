// Package kdj classifies the K/D/J stochastic lines: per-window trend,
// three-line crosses, divergence against price, strength and line order.
package kdj

import (
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

// Result is the KDJ family output.
type Result struct {
	K               float64 `json:"K"`
	D               float64 `json:"D"`
	J               float64 `json:"J"`
	LongTermTrend   string  `json:"long_term_trend"`
	MediumTermTrend string  `json:"medium_term_trend"`
	ShortTermTrend  string  `json:"short_term_trend"`
	CrossPattern    string  `json:"cross_pattern"`
	Divergence      string  `json:"divergence"`
	Strength        string  `json:"strength"`
	Pattern         string  `json:"pattern"`
	Signal          string  `json:"signal"`
}

func (r Result) Composite() string { return r.Signal }
func (r Result) Available() bool   { return true }

// Analyze runs every KDJ classifier over its windows.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyKDJ, s, spans)
	if err != nil {
		return nil, err
	}
	if err := window.Require(model.FamilyKDJ, w.Short, 2); err != nil {
		return nil, err
	}

	latest := w.Full.Latest()
	r := Result{
		K:               latest.KDJK,
		D:               latest.KDJD,
		J:               latest.KDJJ,
		LongTermTrend:   windowTrend(w.Long),
		MediumTermTrend: windowTrend(w.Medium),
		ShortTermTrend:  windowTrend(w.Short),
		CrossPattern:    crossPattern(w.Short),
		Divergence:      divergence.Detect(w.Medium.Values(model.ColClose), w.Medium.Values(model.ColK)).Kind.Label(),
		Strength:        strength(w.Medium),
		Pattern:         linePattern(w.Short.Latest()),
	}
	r.Signal = composite(r)
	return r, nil
}

type trendInput struct {
	j, k           float64
	kMean, kStd    float64
	kSlope, dSlope float64
	jSlope         float64
}

var trendTable = rule.Table[trendInput]{
	Rules: []rule.Rule[trendInput]{
		{When: func(in trendInput) bool { return in.j > 110 }, Label: "强烈超买"},
		{When: func(in trendInput) bool { return in.j > 100 }, Label: "一般超买"},
		{When: func(in trendInput) bool { return in.j < -10 }, Label: "强烈超卖"},
		{When: func(in trendInput) bool { return in.j < 0 }, Label: "一般超卖"},
		{When: func(in trendInput) bool {
			return in.k > in.kMean+in.kStd && in.kSlope > 0 && in.dSlope > 0 && in.jSlope > 0
		}, Label: "强势上涨"},
		{When: func(in trendInput) bool { return in.k > in.kMean+in.kStd }, Label: "偏多"},
		{When: func(in trendInput) bool {
			return in.k < in.kMean-in.kStd && in.kSlope < 0 && in.dSlope < 0 && in.jSlope < 0
		}, Label: "强势下跌"},
		{When: func(in trendInput) bool { return in.k < in.kMean-in.kStd }, Label: "偏空"},
		{When: func(in trendInput) bool { return math.Abs(in.kSlope) < 0.1 && math.Abs(in.dSlope) < 0.1 }, Label: "盘整"},
	},
	Fallback: "震荡",
}

// windowTrend grades J's overbought/oversold band first, then K's position
// against mean ± one sample standard deviation, then the endpoint slopes.
func windowTrend(s model.Series) string {
	k := s.Values(model.ColK)
	latest := s.Latest()
	return trendTable.Eval(trendInput{
		j:      latest.KDJJ,
		k:      latest.KDJK,
		kMean:  stats.Mean(k),
		kStd:   stats.StdSample(k),
		kSlope: trend.EndpointSlope(k),
		dSlope: trend.EndpointSlope(s.Values(model.ColD)),
		jSlope: trend.EndpointSlope(s.Values(model.ColJ)),
	})
}

func crossPattern(s model.Series) string {
	ev := crossover.DetectConfirmed(s.Values(model.ColK), s.Values(model.ColD), s.Values(model.ColJ))
	switch ev.Kind {
	case crossover.Golden:
		if ev.Confirmed {
			return "黄金交叉（J线确认）"
		}
		return "黄金交叉"
	case crossover.Death:
		if ev.Confirmed {
			return "死亡交叉（J线确认）"
		}
		return "死亡交叉"
	}
	latest := s.Latest()
	if math.Abs(latest.KDJK-latest.KDJD) < 1 {
		return "交叉临界"
	}
	return "无交叉信号"
}

var strengthGrades = []rule.Threshold{
	{Above: 2, Label: "极强"},
	{Above: 1.5, Label: "较强"},
	{Above: 1, Label: "中等"},
}

// strength averages the z-scores of the latest K, D and J. Any flat line
// grades as 较弱.
func strength(s model.Series) string {
	latest := s.Latest()
	var sum float64
	for _, line := range []struct {
		col model.Column
		v   float64
	}{
		{model.ColK, latest.KDJK},
		{model.ColD, latest.KDJD},
		{model.ColJ, latest.KDJJ},
	} {
		vals := s.Values(line.col)
		sd := stats.StdSample(vals)
		if !stats.Usable(sd) {
			return "较弱"
		}
		sum += math.Abs(line.v-stats.Mean(vals)) / sd
	}
	return rule.Grade(sum/3, strengthGrades, "较弱")
}

func linePattern(b model.Bar) string {
	switch {
	case b.KDJJ > b.KDJK && b.KDJK > b.KDJD:
		return "多头排列"
	case b.KDJJ < b.KDJK && b.KDJK < b.KDJD:
		return "空头排列"
	case math.Abs(b.KDJK-b.KDJD) < 2:
		return "平行排列"
	default:
		return "发散排列"
	}
}

var compositeTable = rule.Table[Result]{
	Rules: []rule.Rule[Result]{
		{When: func(r Result) bool {
			return overbought(r) && (strings.Contains(r.CrossPattern, "死亡交叉") || strings.Contains(r.Divergence, "顶背离"))
		}, Label: "强烈卖出"},
		{When: overbought, Label: "谨慎持有"},
		{When: func(r Result) bool {
			return oversold(r) && (strings.Contains(r.CrossPattern, "黄金交叉") || strings.Contains(r.Divergence, "底背离"))
		}, Label: "强烈买入"},
		{When: oversold, Label: "谨慎买入"},
		{When: func(r Result) bool {
			return strings.Contains(r.ShortTermTrend, "强势上涨") && strings.Contains(r.Divergence, "顶背离")
		}, Label: "高位观望"},
		{When: func(r Result) bool { return strings.Contains(r.ShortTermTrend, "强势上涨") }, Label: "持续做多"},
		{When: func(r Result) bool {
			return strings.Contains(r.ShortTermTrend, "强势下跌") && strings.Contains(r.Divergence, "底背离")
		}, Label: "低位介入"},
		{When: func(r Result) bool { return strings.Contains(r.ShortTermTrend, "强势下跌") }, Label: "持续观望"},
	},
	Fallback: "观望等待",
}

func overbought(r Result) bool {
	return strings.Contains(r.LongTermTrend, "超买") || strings.Contains(r.MediumTermTrend, "超买")
}

func oversold(r Result) bool {
	return strings.Contains(r.LongTermTrend, "超卖") || strings.Contains(r.MediumTermTrend, "超卖")
}

func composite(r Result) string {
	return compositeTable.Eval(r)
}
