package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

type stub string

func (s stub) Composite() string { return string(s) }
func (s stub) Available() bool   { return true }

func TestRender(t *testing.T) {
	res := &model.AnalysisResult{
		Symbol: "600519.SH",
		AsOf:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Results: map[model.Family]model.IndicatorResult{
			model.FamilyMACD: stub("MACD金叉（强势）"),
			model.FamilyRSI:  model.NewUnavailable("数据不足，RSI需要至少24天的数据，当前10天"),
		},
	}
	pc := model.PriceContext{LatestClose: 1688.5, ChangePct: -1.234, VolumeChangePct: 12.5, High52w: 1900, Low52w: 1500, Position52w: 0.47}
	c := &model.Consensus{
		Factors:    []model.FactorScore{{Name: "MACD", RawScore: 1, Weight: 0.2, Weighted: 0.2}},
		TotalScore: 0.2,
		Tier:       model.ConsensusTier{Label: "中性", Bias: 0},
		WarningMsg: "⚠️ RSI6 超买",
	}

	var buf bytes.Buffer
	if err := Render(&buf, pc, res, c); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"600519.SH 技术信号 2024-05-10",
		"1688.50", "-1.23%", "+12.5%", "47%",
		"MACD金叉（强势）",
		"数据不足，RSI需要至少24天的数据",
		"K线形态", "无数据",
		"0.200", "中性", "RSI6 超买",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWithoutConsensus(t *testing.T) {
	var buf bytes.Buffer
	res := &model.AnalysisResult{Symbol: "X"}
	if err := Render(&buf, model.PriceContext{}, res, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "综合判断") {
		t.Error("consensus printed without one")
	}
}
