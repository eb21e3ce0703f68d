package strategy

import (
	"math"
	"strings"
	"testing"

	"SignalSentinel/internal/analysis/candlestick"
	"SignalSentinel/internal/analysis/rsi"
	"SignalSentinel/internal/model"
)

// composite is a stub family result carrying only a composite signal.
type composite string

func (c composite) Composite() string { return string(c) }
func (c composite) Available() bool   { return true }

func result(signals map[model.Family]model.IndicatorResult) *model.AnalysisResult {
	return &model.AnalysisResult{Symbol: "TEST", Results: signals}
}

func TestEvaluate_StrongBullResonance(t *testing.T) {
	res := result(map[model.Family]model.IndicatorResult{
		model.FamilyMA:          composite("均线多头排列（强），多头趋势确立，（强势）"),
		model.FamilyMACD:        composite("多头趋势增强，（极强）"),
		model.FamilyKDJ:         composite("强烈买入"),
		model.FamilyRSI:         rsi.Result{RSI6: 50, Signal: "盘整（上升趋势）"},
		model.FamilyBOLL:        composite("运行于上轨区间（带宽扩大）"),
		model.FamilyCandlestick: candlestick.Result{Suggestion: candlestick.StrongBullish},
	})
	c := Evaluate(res)
	if len(c.Factors) != 6 {
		t.Fatalf("expected 6 factors, got %d", len(c.Factors))
	}
	// 2*.25 + 1.5*.2 + 2*.15 + 0 + .5*.1 + 2*.2
	if want := 1.55; math.Abs(c.TotalScore-want) > 1e-9 {
		t.Errorf("total = %.3f, want %.3f", c.TotalScore, want)
	}
	if c.Tier.Label != "强烈看多" || c.Tier.Bias != 1 {
		t.Errorf("tier = %+v", c.Tier)
	}
	if c.WarningMsg != "" {
		t.Errorf("unexpected warning: %s", c.WarningMsg)
	}
}

func TestEvaluate_BearWithDivergenceFirst(t *testing.T) {
	res := result(map[model.Family]model.IndicatorResult{
		model.FamilyMA:          composite("均线空头排列（中），空头趋势确立，（强势）"),
		model.FamilyMACD:        composite("出现底背离，空头趋势增强，（强）"),
		model.FamilyKDJ:         composite("持续观望"),
		model.FamilyRSI:         rsi.Result{RSI6: 12, Signal: "超卖（下降趋势）"},
		model.FamilyBOLL:        composite("突破下轨（带宽扩大）"),
		model.FamilyCandlestick: candlestick.Result{Suggestion: candlestick.BearishSignal},
	})
	c := Evaluate(res)
	if got := c.Factors[1].RawScore; got != 1.5 {
		t.Errorf("MACD score = %v, want divergence to win with 1.5", got)
	}
	// -2*.25 + 1.5*.2 - .5*.15 + 1.5*.1 + 1*.1 - 1*.2
	if want := -0.225; math.Abs(c.TotalScore-want) > 1e-9 {
		t.Errorf("total = %.3f, want %.3f", c.TotalScore, want)
	}
	if c.Tier.Label != "中性" {
		t.Errorf("tier = %s", c.Tier.Label)
	}
	if !strings.Contains(c.WarningMsg, "超跌") {
		t.Errorf("warning = %q", c.WarningMsg)
	}
}

func TestEvaluate_UnavailableKeepsWeight(t *testing.T) {
	res := result(map[model.Family]model.IndicatorResult{
		model.FamilyMA: model.NewUnavailable("数据不足，MA需要至少250天的数据，当前100天"),
	})
	c := Evaluate(res)
	if c.TotalScore != 0 || c.Tier.Label != "中性" {
		t.Errorf("total = %v tier = %s", c.TotalScore, c.Tier.Label)
	}
	ma := c.Factors[0]
	if ma.Weight != 0.25 || ma.RawScore != 0 || !strings.HasPrefix(ma.Commentary, "不可用") {
		t.Errorf("MA factor = %+v", ma)
	}
}

func TestFactorWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, f := range Factors {
		sum += f.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %v", sum)
	}
}

func TestCandlestickStrongBeforePlain(t *testing.T) {
	f := Factors[len(Factors)-1]
	tests := []struct {
		suggestion string
		want       float64
	}{
		{candlestick.StrongBullish, 2},
		{candlestick.BullishSignal, 1},
		{candlestick.StrongBearish, -2},
		{candlestick.BearishSignal, -1},
		{candlestick.RangeBound, 0},
		{candlestick.NoSignal, 0},
	}
	for _, tt := range tests {
		if got := f.score(candlestick.Result{Suggestion: tt.suggestion}).RawScore; got != tt.want {
			t.Errorf("%s: score %v, want %v", tt.suggestion, got, tt.want)
		}
	}
}

func TestMapTier_AllBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{2.0, "强烈看多"},
		{1.0, "强烈看多"},
		{0.9, "偏多"},
		{0.3, "偏多"},
		{0.29, "中性"},
		{-0.3, "中性"},
		{-0.31, "偏空"},
		{-1.0, "偏空"},
		{-1.01, "强烈看空"},
		{-2.0, "强烈看空"},
	}
	for _, tt := range tests {
		tier := mapTier(tt.score)
		if tier.Label != tt.label {
			t.Errorf("score %.2f: expected %q, got %q", tt.score, tt.label, tier.Label)
		}
	}
}
