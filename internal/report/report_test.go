package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SignalSentinel/internal/analysis/ma"
	"SignalSentinel/internal/model"
)

type stub string

func (s stub) Composite() string { return string(s) }
func (s stub) Available() bool   { return true }

func TestBuildPrompt(t *testing.T) {
	maRes := ma.Result{Signals: ma.Signals{
		LongTermTrend:   ma.LongTrend{Trend: "强势上涨"},
		MediumTermTrend: ma.MediumTrend{Trend: "中期缓慢上涨"},
		ShortTermSignal: ma.ShortSignal{Summary: "5日均线上穿10日均线"},
		Formation:       ma.Formation{Type: "多头排列", Strength: "中", Dispersion: 0.02271},
		Strength:        ma.SystemStrength{Strength: "强势"},
		SupportResistance: ma.SupportResistance{
			NearestSupport: &ma.Level{MA: 20, Value: 12.345},
		},
		Signal: "均线多头排列（中）",
	}}
	res := &model.AnalysisResult{Results: map[model.Family]model.IndicatorResult{
		model.FamilyMA:   maRes,
		model.FamilyMACD: stub("MACD金叉"),
	}}
	pc := model.PriceContext{LatestClose: 12.5, ChangePct: 1.234, VolumeChangePct: -3.5}
	c := &model.Consensus{TotalScore: 0.45, Tier: model.ConsensusTier{Label: "偏多"}}

	p := BuildPrompt("平安银行", pc, res, c)
	for _, want := range []string{
		"分析平安银行",
		"- 最新收盘价：12.50",
		"- 涨跌幅：1.23%",
		"- 成交量变化：-3.50%",
		"## 1. K线形态分析\n无数据",
		"- 长期趋势: 强势上涨",
		"- 均线分散度: 0.0227",
		"- 最近支撑: 12.35",
		"- 最近阻力: 无数据",
		"## 3. MACD分析\nMACD金叉",
		"## 6. BOLL分析\n无数据",
		"综合评分：0.450（偏多）",
		"6. 逻辑连贯性与可解释性原则",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptUnavailableMA(t *testing.T) {
	res := &model.AnalysisResult{Results: map[model.Family]model.IndicatorResult{
		model.FamilyMA: model.NewUnavailable("数据不足，MA需要至少250天的数据，当前60天"),
	}}
	p := BuildPrompt("x", model.PriceContext{}, res, nil)
	if !strings.Contains(p, "## 2. MA系统分析\n- 数据不足") {
		t.Errorf("unexpected MA section:\n%s", p)
	}
	if strings.Contains(p, "量化共振参考") {
		t.Error("consensus section without consensus")
	}
}

func TestGeneratorDisabled(t *testing.T) {
	g := NewGenerator("", "", "gpt-4o-mini")
	if g.Enabled() {
		t.Fatal("generator without key should be disabled")
	}
	if _, err := g.Generate(context.Background(), "p"); !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}

func TestGeneratorGenerate(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("auth = %s", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"共振偏多"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	g := NewGenerator("sk-test", srv.URL+"/v1/", "test-model")
	out, err := g.Generate(context.Background(), "用户提示")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "共振偏多" {
		t.Errorf("out = %q", out)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 {
		t.Fatalf("request = %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[1].Content != "用户提示" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestGeneratorAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	g := NewGenerator("sk-bad", srv.URL+"/v1", "m")
	if _, err := g.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error")
	}
}
