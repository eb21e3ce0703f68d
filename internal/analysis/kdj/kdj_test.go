package kdj

import (
	"errors"
	"testing"
	"time"

	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

func build(n int, fill func(i int, b *model.Bar)) model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		s[i].Time = start.AddDate(0, 0, i)
		s[i].Close = 100 + float64(i)
		fill(i, &s[i])
	}
	return s
}

func TestWindowTrend(t *testing.T) {
	tests := []struct {
		name string
		fill func(i int, b *model.Bar)
		want string
	}{
		{"strong overbought", func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = 80, 70, 115 }, "强烈超买"},
		{"overbought", func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = 80, 70, 105 }, "一般超买"},
		{"strong oversold", func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = 10, 15, -12 }, "强烈超卖"},
		{"oversold", func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = 10, 15, -5 }, "一般超卖"},
		{"flat", func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = 50, 50, 50 }, "盘整"},
		{"strong rise", func(i int, b *model.Bar) {
			b.KDJK, b.KDJD, b.KDJJ = 50, 50+float64(i), 60+float64(i)
			if i == 9 {
				b.KDJK = 90
			}
		}, "强势上涨"},
		{"bullish lean", func(i int, b *model.Bar) {
			b.KDJK, b.KDJD, b.KDJJ = 50, 60-float64(i), 60
			if i == 9 {
				b.KDJK = 90
			}
		}, "偏多"},
		{"choppy", func(i int, b *model.Bar) {
			b.KDJK, b.KDJD, b.KDJJ = 50+float64(i%2)*10, 50, 50
			if i == 9 {
				b.KDJK = 52
			}
		}, "震荡"},
	}
	for _, tt := range tests {
		if got := windowTrend(build(10, tt.fill)); got != tt.want {
			t.Errorf("%s: windowTrend = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCrossPattern(t *testing.T) {
	tests := []struct {
		k, d, j [2]float64
		want    string
	}{
		{[2]float64{40, 55}, [2]float64{50, 50}, [2]float64{30, 65}, "黄金交叉（J线确认）"},
		{[2]float64{40, 55}, [2]float64{50, 50}, [2]float64{30, 52}, "黄金交叉"},
		{[2]float64{60, 45}, [2]float64{50, 50}, [2]float64{70, 35}, "死亡交叉（J线确认）"},
		{[2]float64{60, 45}, [2]float64{50, 50}, [2]float64{70, 48}, "死亡交叉"},
		{[2]float64{60, 50.5}, [2]float64{50, 50}, [2]float64{70, 51}, "交叉临界"},
		{[2]float64{70, 60}, [2]float64{50, 50}, [2]float64{70, 80}, "无交叉信号"},
	}
	for _, tt := range tests {
		s := build(2, func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = tt.k[i], tt.d[i], tt.j[i] })
		if got := crossPattern(s); got != tt.want {
			t.Errorf("crossPattern(K=%v D=%v J=%v) = %s, want %s", tt.k, tt.d, tt.j, got, tt.want)
		}
	}
}

func TestLinePattern(t *testing.T) {
	tests := []struct {
		k, d, j float64
		want    string
	}{
		{60, 50, 70, "多头排列"},
		{40, 50, 30, "空头排列"},
		{50, 51, 60, "平行排列"},
		{50, 60, 55, "发散排列"},
	}
	for _, tt := range tests {
		if got := linePattern(model.Bar{KDJK: tt.k, KDJD: tt.d, KDJJ: tt.j}); got != tt.want {
			t.Errorf("linePattern(%v,%v,%v) = %s, want %s", tt.k, tt.d, tt.j, got, tt.want)
		}
	}
}

func TestStrengthFlatLine(t *testing.T) {
	s := build(20, func(i int, b *model.Bar) { b.KDJK, b.KDJD, b.KDJJ = float64(i), 50, float64(i) })
	if got := strength(s); got != "较弱" {
		t.Errorf("strength = %s, want 较弱", got)
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Result{LongTermTrend: "一般超买", CrossPattern: "死亡交叉", Divergence: "无背离"}, "强烈卖出"},
		{Result{MediumTermTrend: "强烈超买", CrossPattern: "无交叉信号", Divergence: "无背离"}, "谨慎持有"},
		{Result{LongTermTrend: "一般超卖", Divergence: "底背离"}, "强烈买入"},
		{Result{MediumTermTrend: "一般超卖", Divergence: "无背离"}, "谨慎买入"},
		{Result{ShortTermTrend: "强势上涨", Divergence: "顶背离"}, "高位观望"},
		{Result{ShortTermTrend: "强势上涨", Divergence: "无背离"}, "持续做多"},
		{Result{ShortTermTrend: "强势下跌", Divergence: "底背离"}, "低位介入"},
		{Result{ShortTermTrend: "强势下跌", Divergence: "无背离"}, "持续观望"},
		{Result{ShortTermTrend: "盘整", Divergence: "无背离"}, "观望等待"},
	}
	for _, tt := range tests {
		if got := composite(tt.r); got != tt.want {
			t.Errorf("composite(%+v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestAnalyzeOversoldGoldenCross(t *testing.T) {
	s := build(40, func(i int, b *model.Bar) {
		b.KDJK, b.KDJD, b.KDJJ = 30, 30, 30
		if i == 39 {
			b.KDJK, b.KDJD, b.KDJJ = 35, 32, -15
		}
	})
	out, err := Analyze(s, window.DefaultConfig().KDJ)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	r := out.(Result)
	if r.LongTermTrend != "强烈超卖" || r.CrossPattern != "黄金交叉" {
		t.Errorf("long=%s cross=%s", r.LongTermTrend, r.CrossPattern)
	}
	if r.Signal != "强烈买入" {
		t.Errorf("signal = %s, want 强烈买入", r.Signal)
	}
	if r.K != 35 || r.D != 32 || r.J != -15 {
		t.Errorf("latest values = %v/%v/%v", r.K, r.D, r.J)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	if _, err := Analyze(build(10, func(int, *model.Bar) {}), window.DefaultConfig().KDJ); !errors.Is(err, window.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}
