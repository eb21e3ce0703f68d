package ma

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

func bar(close, volume float64, mas map[int]float64) model.Bar {
	b := model.Bar{Close: close, Volume: volume}
	for p, v := range mas {
		b.SetMA(p, v)
	}
	return b
}

// stackedBull has every MA rising by one per bar with shorter MAs on top.
func stackedBull(n int) model.Series {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		base := 100 + float64(i)
		s[i].Time = start.AddDate(0, 0, i)
		s[i].Close = base
		s[i].Volume = 1000
		for _, p := range model.MAPeriods {
			s[i].SetMA(p, base-float64(p)/10)
		}
	}
	return s
}

func TestAnalyzeStackedBull(t *testing.T) {
	out, err := Analyze(stackedBull(260), window.DefaultConfig().MA)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	r := out.(Result)
	sig := r.Signals

	if got := r.Values["ma_250"]; got != 334 {
		t.Errorf("ma_250 = %v, want 334", got)
	}
	if sig.LongTermTrend.Trend != "强势上涨" || sig.LongTermTrend.Period != "250天" {
		t.Errorf("long = %+v", sig.LongTermTrend)
	}
	if sig.MediumTermTrend.Trend != "强势上涨" || sig.MediumTermTrend.Period != "60天" {
		t.Errorf("medium = %+v", sig.MediumTermTrend)
	}
	if sig.Formation.Type != "多头排列" || sig.Formation.Strength != "中" {
		t.Errorf("formation = %+v", sig.Formation)
	}
	if sig.Strength.Strength != "中等强度" {
		t.Errorf("strength = %+v", sig.Strength)
	}
	if sig.ShortTermSignal.Breakthrough.Type != "no_breakthrough" {
		t.Errorf("breakthrough = %+v", sig.ShortTermSignal.Breakthrough)
	}
	if sig.SupportResistance.NearestResistance != nil {
		t.Errorf("resistance = %+v, want none", sig.SupportResistance.NearestResistance)
	}
	if ns := sig.SupportResistance.NearestSupport; ns == nil || ns.MA != 5 {
		t.Errorf("nearest support = %+v, want ma 5", ns)
	}

	want := "均线多头排列（中），多头趋势确立，出现5日均线无明显拐点，10日均线无明显拐点，20日均线无明显拐点，（中等强度）"
	if r.Composite() != want {
		t.Errorf("signal = %s\nwant     %s", r.Composite(), want)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	_, err := Analyze(stackedBull(100), window.DefaultConfig().MA)
	if !errors.Is(err, window.ErrInsufficientData) {
		t.Fatalf("err = %v, want insufficient data", err)
	}
	if err.Error() != "数据不足，MA需要至少250天的数据，当前100天" {
		t.Errorf("message = %s", err.Error())
	}
}

// declining is a noisy downtrend with only OHLCV, left to the calculator.
func declining(n int) model.Series {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		c := 200 - 0.1*float64(i) + 3*math.Sin(float64(i)/3)
		s[i] = model.Bar{Time: start.AddDate(0, 0, i), Open: c + 0.2, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return s
}

func TestAnalyzeNeedsDefinedMA250(t *testing.T) {
	s := calculator.TrimWarmup(calculator.Enrich(declining(300)))
	_, err := Analyze(s, window.DefaultConfig().MA)
	if !errors.Is(err, window.ErrInsufficientData) {
		t.Fatalf("err = %v, want insufficient data", err)
	}
	if err.Error() != "数据不足，MA需要至少499天的数据，当前267天" {
		t.Errorf("message = %s", err.Error())
	}
}

func TestAnalyzeEnrichedDowntrend(t *testing.T) {
	s := calculator.TrimWarmup(calculator.Enrich(declining(600)))
	out, err := Analyze(s, window.DefaultConfig().MA)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	long := out.(Result).Signals.LongTermTrend
	if long.Trend != "强势下跌" || long.MA250Slope >= 0 {
		t.Errorf("long = %+v", long)
	}
}

func TestRequireMA(t *testing.T) {
	s := stackedBull(70)
	s[5].SetMA(60, 0)
	if err := requireMA(s[10:], 70, 60, 60); err != nil {
		t.Errorf("defined window: %v", err)
	}
	if err := requireMA(s, 70, 60, 60); !errors.Is(err, window.ErrInsufficientData) {
		t.Errorf("err = %v, want insufficient data", err)
	}
	s[40].SetMA(60, math.NaN())
	if err := requireMA(s[10:], 70, 60, 60); err == nil {
		t.Error("NaN MA accepted")
	}
}

func TestCrosses(t *testing.T) {
	s := model.Series{
		bar(100, 100, map[int]float64{5: 9, 10: 10, 20: 20, 30: 30}),
		bar(100, 100, map[int]float64{5: 12, 10: 10, 20: 20, 30: 30}),
	}
	got := crosses(s)
	want := []Cross{{Type: "golden_cross", ShortMA: 5, LongMA: 10, Strength: "强势", Value: 12, Diff: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("crosses = %+v, want %+v", got, want)
	}
	if sum := summarize(ShortSignal{Crosses: got, Breakthrough: Breakthrough{Type: "no_breakthrough"}, Deviation: Deviation{Status: "正常"}}); sum != "5日线与10日线形成强势金叉" {
		t.Errorf("summary = %s", sum)
	}
}

func TestTurningType(t *testing.T) {
	tests := []struct {
		slope, change float64
		want          string
	}{
		{1, 1, "加速上涨"},
		{-1, 1, "下跌趋缓"},
		{1, -1, "上涨趋缓"},
		{-1, -1, "加速下跌"},
		{1, 0, "无明显拐点"},
		{0, 1, "无明显拐点"},
	}
	for _, tt := range tests {
		if got := turningType(tt.slope, tt.change); got != tt.want {
			t.Errorf("turningType(%v, %v) = %s, want %s", tt.slope, tt.change, got, tt.want)
		}
	}
}

func TestTurningPointsNeedFourBars(t *testing.T) {
	s := stackedBull(3)
	if got := turningPoints(s); len(got) != 0 {
		t.Errorf("turning points on 3 bars = %+v", got)
	}
}

func TestBreakthrough(t *testing.T) {
	flat := map[int]float64{5: 100, 10: 100, 20: 100}
	tests := []struct {
		name   string
		latest model.Bar
		want   string
		power  string
	}{
		{"strong up", bar(103, 250, flat), "upward_breakthrough", "strong"},
		{"normal down", bar(97, 180, flat), "downward_breakthrough", "normal"},
		{"quiet volume", bar(103, 120, flat), "no_breakthrough", ""},
		{"spread out", bar(103, 250, map[int]float64{5: 110, 10: 100, 20: 90}), "no_breakthrough", ""},
		{"zero mean", bar(103, 250, map[int]float64{}), "no_breakthrough", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.Series{bar(100, 100, flat), tt.latest}
			got := breakthrough(s)
			if got.Type != tt.want || got.Strength != tt.power {
				t.Errorf("breakthrough = %+v, want %s/%s", got, tt.want, tt.power)
			}
		})
	}
}

func TestBreakthroughZeroPrevVolume(t *testing.T) {
	flat := map[int]float64{5: 100, 10: 100, 20: 100}
	s := model.Series{bar(100, 0, flat), bar(103, 250, flat)}
	if got := breakthrough(s); got.Type != "no_breakthrough" {
		t.Errorf("breakthrough = %+v", got)
	}
}

func TestMomentum(t *testing.T) {
	s := model.Series{
		bar(100, 100, nil),
		bar(101, 100, nil),
		bar(102, 100, nil),
		bar(103, 100, nil),
		bar(105, 200, nil),
	}
	m := momentum(s)
	if !m.Strong || m.Momentum <= 3 || m.Period != "5天" {
		t.Errorf("momentum = %+v", m)
	}
	parts := summarize(ShortSignal{TrendStrength: m, Breakthrough: Breakthrough{Type: "no_breakthrough"}, Deviation: Deviation{Status: "正常"}})
	if parts != "短期上涨动能强劲" {
		t.Errorf("summary = %s", parts)
	}
}

func TestDeviation(t *testing.T) {
	d := deviation(bar(110, 0, map[int]float64{5: 100, 10: 100}))
	if d.Status != "超买" || d.Average != 10 || len(d.Values) != 2 {
		t.Errorf("deviation = %+v", d)
	}
	d = deviation(bar(90, 0, map[int]float64{5: 100, 10: 100, 20: 100}))
	if d.Status != "超卖" {
		t.Errorf("deviation = %+v", d)
	}
	sum := summarize(ShortSignal{Deviation: d, Breakthrough: Breakthrough{Type: "no_breakthrough"}})
	if sum != "均线系统超卖（10.00%）" {
		t.Errorf("summary = %s", sum)
	}
	if d := deviation(bar(90, 0, nil)); d.Status != "正常" {
		t.Errorf("no usable MA: %+v", d)
	}
}

func TestSupportResistance(t *testing.T) {
	b := bar(50, 0, map[int]float64{5: 40, 10: 60, 20: 45, 30: 55, 60: 50, 90: 30, 250: 70})
	sr := supportResistance(b)
	wantSupport := []Level{{20, 45}, {5, 40}, {90, 30}}
	wantResistance := []Level{{60, 50}, {30, 55}, {10, 60}, {250, 70}}
	if !reflect.DeepEqual(sr.Support, wantSupport) {
		t.Errorf("support = %+v", sr.Support)
	}
	if !reflect.DeepEqual(sr.Resistance, wantResistance) {
		t.Errorf("resistance = %+v", sr.Resistance)
	}
	if *sr.NearestSupport != wantSupport[0] || *sr.NearestResistance != wantResistance[0] {
		t.Errorf("nearest = %+v / %+v", sr.NearestSupport, sr.NearestResistance)
	}
}

func TestFormation(t *testing.T) {
	asc := bar(0, 0, map[int]float64{5: 1, 10: 2, 20: 3, 30: 4, 60: 5, 90: 6, 250: 7})
	if f := formation(asc); f.Type != "空头排列" || f.Strength != "强" {
		t.Errorf("ascending = %+v", f)
	}
	mixed := bar(0, 0, map[int]float64{5: 10, 10: 10, 20: 10, 30: 10, 60: 10, 90: 10, 250: 10})
	if f := formation(mixed); f.Type != "混乱排列" || f.Strength != "弱" {
		t.Errorf("equal = %+v", f)
	}
	if f := formation(model.Bar{}); f.Strength != "弱" {
		t.Errorf("zero mean = %+v", f)
	}
}

func TestComposite(t *testing.T) {
	base := Signals{
		Formation:       Formation{Type: "混乱排列", Strength: "弱"},
		Strength:        SystemStrength{Strength: "弱势"},
		ShortTermSignal: ShortSignal{Summary: NoShortSignal},
	}
	tests := []struct {
		long, medium string
		want         string
	}{
		{"强势下跌", "弱势下跌", "均线混乱排列（弱），空头趋势确立，（弱势）"},
		{"长期震荡", "强势下跌", "均线混乱排列（弱），空头趋势形成中，（弱势）"},
		{"下跌趋势企稳", "弱势上涨", "均线混乱排列（弱），多头趋势形成中，（弱势）"},
		{"强势上涨", "横盘震荡", "均线混乱排列（弱），趋势不明确，（弱势）"},
	}
	for _, tt := range tests {
		sig := base
		sig.LongTermTrend.Trend = tt.long
		sig.MediumTermTrend.Trend = tt.medium
		if got := composite(sig); got != tt.want {
			t.Errorf("composite(%s, %s) = %s, want %s", tt.long, tt.medium, got, tt.want)
		}
	}
}
