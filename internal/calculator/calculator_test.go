package calculator

import (
	"math"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

func ohlcv(n int) model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		c := 100 + float64(i) + 8*math.Sin(float64(i)/4)
		s[i] = model.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1.5,
			Close:  c,
			Volume: 1000 + float64(i%7)*100,
		}
	}
	return s
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestKDJFlat(t *testing.T) {
	h := []float64{10, 10, 10}
	k, d, j := KDJ(h, h, h)
	for i := range k {
		if k[i] != 50 || d[i] != 50 || j[i] != 50 {
			t.Fatalf("bar %d: %v %v %v, want 50s", i, k[i], d[i], j[i])
		}
	}
}

func TestKDJCloseAtHigh(t *testing.T) {
	high := []float64{11, 12}
	low := []float64{9, 10}
	close := []float64{11, 12}
	k, d, j := KDJ(high, low, close)
	// RSV = 100 on both bars.
	wantK := 2.0/3.0*50 + 100.0/3.0
	wantD := 2.0/3.0*50 + wantK/3.0
	if !almost(k[0], wantK) || !almost(d[0], wantD) || !almost(j[0], 3*wantK-2*wantD) {
		t.Errorf("bar 0 = %v %v %v", k[0], d[0], j[0])
	}
	if k[1] <= k[0] {
		t.Errorf("K should keep rising: %v -> %v", k[0], k[1])
	}
}

func TestEnrichComputesMissingColumns(t *testing.T) {
	raw := ohlcv(300)
	s := Enrich(raw)

	if raw[299].MA5 != 0 {
		t.Fatal("Enrich mutated its input")
	}
	last := s[299]
	var sum float64
	for _, b := range s[295:] {
		sum += b.Close
	}
	if !almost(last.MA5, sum/5) {
		t.Errorf("MA5 = %v, want %v", last.MA5, sum/5)
	}
	if last.MA250 == 0 || s[248].MA250 != 0 {
		t.Errorf("MA250 lookback wrong: s[248]=%v s[299]=%v", s[248].MA250, last.MA250)
	}
	if !almost(last.BollMid, last.MA20) {
		t.Errorf("BOLL mid %v != MA20 %v", last.BollMid, last.MA20)
	}
	if last.BollUpper <= last.BollMid || last.BollLower >= last.BollMid {
		t.Errorf("bands = %v/%v/%v", last.BollUpper, last.BollMid, last.BollLower)
	}
	if !almost(last.MACD, 2*(last.MACDDif-last.MACDDea)) {
		t.Errorf("histogram = %v", last.MACD)
	}
	for _, v := range []float64{last.RSI6, last.RSI12, last.RSI24} {
		if v <= 0 || v >= 100 {
			t.Errorf("RSI out of range: %v", v)
		}
	}
	if last.KDJK == 0 || !almost(last.KDJJ, 3*last.KDJK-2*last.KDJD) {
		t.Errorf("KDJ = %v/%v/%v", last.KDJK, last.KDJD, last.KDJJ)
	}
}

func TestEnrichKeepsSuppliedColumns(t *testing.T) {
	raw := ohlcv(60)
	for i := range raw {
		raw[i].MACDDif = 1
		raw[i].MACDDea = 0.5
		raw[i].MACD = 1
	}
	s := Enrich(raw)
	if s[59].MACDDif != 1 || s[59].MACDDea != 0.5 {
		t.Errorf("supplied MACD overwritten: %+v", s[59])
	}
	if s[59].RSI6 == 0 {
		t.Error("RSI not computed")
	}
}

func TestTrimWarmup(t *testing.T) {
	s := Enrich(ohlcv(120))
	trimmed := TrimWarmup(s)
	if len(trimmed) == 0 || len(trimmed) >= len(s) {
		t.Fatalf("trimmed %d of %d bars", len(s)-len(trimmed), len(s))
	}
	first := trimmed[0]
	if first.MACDDea == 0 || first.RSI24 == 0 || first.BollMid == 0 {
		t.Errorf("first kept bar still warming up: %+v", first)
	}
	if len(TrimWarmup(ohlcv(10))) != 0 {
		t.Error("unenriched series should trim to empty")
	}
}

func TestTrimWarmupFallingSeries(t *testing.T) {
	s := make(model.Series, 300)
	for i := range s {
		c := 400 - float64(i)
		s[i] = model.Bar{Open: c + 0.5, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	trimmed := TrimWarmup(Enrich(s))
	if len(trimmed) != 300-Warmup {
		t.Fatalf("len = %d, want %d", len(trimmed), 300-Warmup)
	}
	if Warmup != 33 {
		t.Errorf("Warmup = %d, want 33", Warmup)
	}
	if got := trimmed[len(trimmed)-1].RSI24; got != 0 {
		t.Errorf("RSI24 = %v, want 0 on a falling series", got)
	}
	if trimmed[0].MACDDea == 0 || trimmed[0].BollMid == 0 {
		t.Errorf("first kept bar still warming up: %+v", trimmed[0])
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		current, high, low float64
		want               float64
		wantErr            bool
	}{
		{50, 100, 0, 0.5, false},
		{120, 100, 0, 1, false},
		{-5, 100, 0, 0, false},
		{7, 7, 7, 0.5, false},
		{1, 0, 10, 0, true},
	}
	for _, tt := range tests {
		got, err := Position(tt.current, tt.high, tt.low)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Position(%v, %v, %v) = %v, %v", tt.current, tt.high, tt.low, got, err)
		}
	}
}

func TestContext(t *testing.T) {
	s := model.Series{
		{High: 12, Low: 8, Close: 10, Volume: 100},
		{High: 15, Low: 9, Close: 11, Volume: 150},
	}
	ctx, err := Context(s)
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	want := model.PriceContext{
		LatestClose:     11,
		ChangePct:       10,
		VolumeChangePct: 50,
		High52w:         15,
		Low52w:          8,
		Position52w:     3.0 / 7.0,
	}
	if !almost(ctx.ChangePct, want.ChangePct) || !almost(ctx.Position52w, want.Position52w) ||
		ctx.VolumeChangePct != want.VolumeChangePct || ctx.High52w != 15 || ctx.Low52w != 8 || ctx.LatestClose != 11 {
		t.Errorf("got %+v\nwant %+v", ctx, want)
	}
	if _, err := Context(nil); err == nil {
		t.Error("expected error for empty series")
	}
}
