// Package report assembles the resonance-analysis prompt and sends it to an
// OpenAI-compatible chat endpoint.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"SignalSentinel/internal/analysis/ma"
	"SignalSentinel/internal/model"
)

const noData = "无数据"

const systemPrompt = "你是一位经验丰富的股票技术分析师，你的目标是帮助普通用户理解复杂的市场趋势。" +
	"你非常擅长使用K线形态、MA均线系统、MACD、KDJ、RSI和BOLL等六大技术指标进行共振分析。"

var principles = []string{
	"指标类型差异化原则：趋势指标（MA、BOLL）、动量指标（MACD、RSI）、超买超卖指标（KDJ、RSI）与K线形态各有所长，共振分析要考虑指标类型的差异，避免同质化解读。",
	"信号强度加权原则：强度较高的信号在共振分析中占据更重要的地位。多个中等或偏强信号的共振，有时比单个极强信号更值得信赖。",
	"多指标印证原则：多个指标同时指向相同方向时，趋势判断的可信度显著提升。",
	"冲突信号辨析原则：根据指标类型、信号强度以及当前市场环境审慎权衡冲突信号，区分趋势性指标与震荡指标的冲突以及强弱信号的冲突。",
	"短期与长期信号结合原则：整合不同时间周期的信号，判断短期波动是否会演化为长期趋势，或者仅仅是趋势中的噪音。",
	"逻辑连贯性与可解释性原则：清晰阐述各指标信号如何相互作用、如何形成共振，以及最终判断如何从共振信号中推理得出。",
}

func f2(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

// BuildPrompt renders the user prompt for one symbol. c may be nil.
func BuildPrompt(name string, pc model.PriceContext, res *model.AnalysisResult, c *model.Consensus) string {
	var b strings.Builder

	b.WriteString("## 目标\n")
	b.WriteString(fmt.Sprintf("分析%s以下六大技术指标的信号数据，进行深入细致的共振分析，判断当前的市场趋势，"+
		"并基于推理原则详细解释推理过程，确保不熟悉技术分析的用户也能理解。"+
		"请直接在共振分析报告中融入对各指标信号的解读，无需单独列出。\n\n", name))

	b.WriteString("# 市场数据\n## 基础行情\n")
	b.WriteString(fmt.Sprintf("- 最新收盘价：%s\n", f2(pc.LatestClose)))
	b.WriteString(fmt.Sprintf("- 涨跌幅：%s%%\n", f2(pc.ChangePct)))
	b.WriteString(fmt.Sprintf("- 成交量变化：%s%%\n", f2(pc.VolumeChangePct)))
	b.WriteString(fmt.Sprintf("- 52周区间：%s ~ %s\n\n", f2(pc.Low52w), f2(pc.High52w)))

	b.WriteString("# 六大指标共振分析\n")
	b.WriteString("## 1. K线形态分析\n" + res.Get(model.FamilyCandlestick).Composite() + "\n\n")
	b.WriteString("## 2. MA系统分析\n" + maSection(res.Get(model.FamilyMA)) + "\n")
	for i, f := range []model.Family{model.FamilyMACD, model.FamilyKDJ, model.FamilyRSI, model.FamilyBOLL} {
		b.WriteString(fmt.Sprintf("## %d. %s分析\n%s\n\n", i+3, f, res.Get(f).Composite()))
	}

	if c != nil {
		b.WriteString("# 量化共振参考\n")
		b.WriteString(fmt.Sprintf("- 综合评分：%s（%s）\n\n", decimal.NewFromFloat(c.TotalScore).StringFixed(3), c.Tier.Label))
	}

	b.WriteString("# 推理原则\n")
	for i, p := range principles {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, p))
	}
	return b.String()
}

func maSection(r model.IndicatorResult) string {
	res, ok := r.(ma.Result)
	if !ok {
		return "- " + r.Composite() + "\n"
	}
	sig := res.Signals
	support, resistance := noData, noData
	if sig.SupportResistance.NearestSupport != nil {
		support = f2(sig.SupportResistance.NearestSupport.Value)
	}
	if sig.SupportResistance.NearestResistance != nil {
		resistance = f2(sig.SupportResistance.NearestResistance.Value)
	}

	lines := []string{
		"长期趋势: " + sig.LongTermTrend.Trend,
		"中期趋势: " + sig.MediumTermTrend.Trend,
		"短期信号: " + sig.ShortTermSignal.Summary,
		"形态类型: " + sig.Formation.Type,
		"形态强度: " + sig.Formation.Strength,
		"均线分散度: " + decimal.NewFromFloat(sig.Formation.Dispersion).StringFixed(4),
		"最近支撑: " + support,
		"最近阻力: " + resistance,
		"均线系统强度: " + sig.Strength.Strength,
		"**综合研判信号**: " + sig.Signal,
	}
	return "- " + strings.Join(lines, "\n- ") + "\n"
}
