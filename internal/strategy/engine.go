package strategy

import (
	"fmt"

	"SignalSentinel/internal/analysis/rsi"
	"SignalSentinel/internal/model"
)

// Tiers maps total scores to stances, checked top to bottom.
var Tiers = []struct {
	MinScore float64
	Tier     model.ConsensusTier
}{
	{1.0, model.ConsensusTier{Label: "强烈看多", Bias: 1}},
	{0.3, model.ConsensusTier{Label: "偏多", Bias: 1}},
	{-0.3, model.ConsensusTier{Label: "中性", Bias: 0}},
	{-1.0, model.ConsensusTier{Label: "偏空", Bias: -1}},
}

// DefaultTier is the lowest tier for scores < -1.0.
var DefaultTier = model.ConsensusTier{Label: "强烈看空", Bias: -1}

const (
	rsiOverheated = 85
	rsiWashedOut  = 15
)

// mapTier maps a total score to a ConsensusTier.
func mapTier(totalScore float64) model.ConsensusTier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Evaluate scores every family's composite signal and maps the weighted sum
// to a consensus tier.
func Evaluate(res *model.AnalysisResult) *model.Consensus {
	c := &model.Consensus{Factors: make([]model.FactorScore, 0, len(Factors))}
	for _, f := range Factors {
		fs := f.score(res.Get(f.Family))
		c.Factors = append(c.Factors, fs)
		c.TotalScore += fs.Weighted
	}
	c.Tier = mapTier(c.TotalScore)

	if r, ok := res.Get(model.FamilyRSI).(rsi.Result); ok {
		switch {
		case r.RSI6 > rsiOverheated:
			c.WarningMsg = fmt.Sprintf("⚠️ RSI6=%.1f > %d 短线过热预警", r.RSI6, rsiOverheated)
		case r.RSI6 < rsiWashedOut:
			c.WarningMsg = fmt.Sprintf("⚠️ RSI6=%.1f < %d 短线超跌预警", r.RSI6, rsiWashedOut)
		}
	}
	return c
}
