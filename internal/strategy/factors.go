package strategy

import (
	"strings"

	"SignalSentinel/internal/model"
)

// keywordScore awards Score when a composite signal contains Keyword.
type keywordScore struct {
	Keyword string
	Score   float64
}

// factor scores one family's composite signal. Scores are scanned in order
// and the first matching keyword wins; no match scores 0.
type factor struct {
	Family model.Family
	Name   string
	Weight float64
	Scores []keywordScore
}

// Factors lists every family's contribution. Weights sum to 1.
var Factors = []factor{
	{model.FamilyMA, "均线系统", 0.25, []keywordScore{
		{"多头趋势确立", 2.0},
		{"多头趋势形成中", 1.0},
		{"空头趋势确立", -2.0},
		{"空头趋势形成中", -1.0},
	}},
	{model.FamilyMACD, "MACD", 0.20, []keywordScore{
		{"底背离", 1.5},
		{"顶背离", -1.5},
		{"多头趋势增强", 1.5},
		{"空头趋势减弱", 0.5},
		{"多头趋势减弱", -0.5},
		{"空头趋势增强", -1.5},
	}},
	{model.FamilyKDJ, "KDJ", 0.15, []keywordScore{
		{"强烈买入", 2.0},
		{"谨慎买入", 1.0},
		{"低位介入", 1.0},
		{"持续做多", 0.5},
		{"强烈卖出", -2.0},
		{"谨慎持有", -1.0},
		{"高位观望", -0.5},
		{"持续观望", -0.5},
	}},
	{model.FamilyRSI, "RSI", 0.10, []keywordScore{
		{"超卖", 1.5},
		{"超买", -1.5},
		{"偏强", 0.5},
		{"偏弱", -0.5},
	}},
	{model.FamilyBOLL, "BOLL", 0.10, []keywordScore{
		{"突破下轨", 1.0},
		{"突破上轨", -1.0},
		{"运行于上轨区间", 0.5},
		{"运行于下轨区间", -0.5},
	}},
	{model.FamilyCandlestick, "K线形态", 0.20, []keywordScore{
		{"强烈看涨", 2.0},
		{"看涨", 1.0},
		{"强烈看跌", -2.0},
		{"看跌", -1.0},
	}},
}

// score evaluates the factor against one family's result. Unavailable
// families score 0 and keep their weight.
func (f factor) score(r model.IndicatorResult) model.FactorScore {
	fs := model.FactorScore{Name: f.Name, Weight: f.Weight, Commentary: r.Composite()}
	if !r.Available() {
		fs.Commentary = "不可用: " + r.Composite()
		return fs
	}
	signal := r.Composite()
	for _, ks := range f.Scores {
		if strings.Contains(signal, ks.Keyword) {
			fs.RawScore = ks.Score
			break
		}
	}
	fs.Weighted = fs.RawScore * f.Weight
	return fs
}
