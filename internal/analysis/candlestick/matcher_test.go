package candlestick

import (
	"errors"
	"testing"
	"time"

	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

func bar(o, h, l, c float64) model.Bar {
	return model.Bar{Open: o, High: h, Low: l, Close: c}
}

func series(bars ...model.Bar) model.Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, len(bars))
	for i, b := range bars {
		b.Time = start.AddDate(0, 0, i)
		s[i] = b
	}
	return s
}

func TestSingleBarPredicates(t *testing.T) {
	tests := []struct {
		name string
		b    model.Bar
		fn   func(model.Bar) bool
		want bool
	}{
		{"doji", bar(100, 102, 98, 100.3), IsDoji, true},
		{"hammer", bar(100, 101.2, 95, 101), IsHammer, true},
		{"hammer wick above a tenth of the body", bar(100, 101.2, 95, 101), func(b model.Bar) bool {
			c := newCandle(b)
			return c.upper > c.body*hammerShadowRatio && IsHammer(b)
		}, true},
		{"hammer wick above a tenth of the range", bar(100, 102, 95, 101), IsHammer, false},
		{"hammer is not hanging man", bar(100, 101.2, 95, 101), IsHangingMan, false},
		{"hanging man", bar(101, 101.2, 95, 100), IsHangingMan, true},
		{"shooting star", bar(100, 106, 99.8, 101), IsShootingStar, true},
		{"inverted hammer", bar(100, 106, 99.8, 101), IsInvertedHammer, true},
		{"gravestone doji", bar(100, 103, 99.95, 100.1), IsGravestoneDoji, true},
		{"gravestone is not doji", bar(100, 103, 99.95, 100.1), IsDoji, false},
		{"spinning top", bar(100, 101.5, 99, 100.5), IsSpinningTop, true},
		{"long legged doji", bar(100, 102, 98, 100.3), IsLongLeggedDoji, true},
		{"marubozu is no doji", bar(100, 110, 100, 110), IsDoji, false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.b); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{3.5, "★★★★☆"},
		{3.49, "★★★☆☆"},
		{0, "☆☆☆☆☆"},
		{5, "★★★★★"},
		{4.5, "★★★★★"},
		{7, "★★★★★"},
		{1, "★☆☆☆☆"},
	}
	for _, tt := range tests {
		if got := Stars(tt.score); got != tt.want {
			t.Errorf("Stars(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		bull, bear, stars int
		want              string
	}{
		{5, 0, 5, StrongBullish},
		{5, 0, 3, BullishSignal},
		{0, 3, 4, StrongBearish},
		{1, 3, 2, BearishSignal},
		{2, 2, 5, RangeBound},
		{0, 0, 1, RangeBound},
	}
	for _, tt := range tests {
		if got := suggest(tt.bull, tt.bear, tt.stars); got != tt.want {
			t.Errorf("suggest(%d,%d,%d) = %s, want %s", tt.bull, tt.bear, tt.stars, got, tt.want)
		}
	}
}

func TestMatchPriorityResolution(t *testing.T) {
	s := series(
		bar(100, 102, 99, 101),
		bar(101, 103, 100, 102),
		bar(104, 106, 103, 105),
		bar(105, 108, 99, 100),  // bearish
		bar(99.5, 108, 98, 107), // engulfs day 1, shares its high
	)
	res, err := Match(s)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	cands := map[string]bool{}
	for _, h := range res.Candidates[2] {
		cands[h.Pattern] = true
	}
	for _, name := range []string{"看涨吞没形态", "刺透形态", "平头顶形态"} {
		if !cands[name] {
			t.Errorf("candidate %s missing from %v", name, res.Candidates[2])
		}
	}

	if len(res.Patterns) != 1 || res.Patterns[0].Pattern != "看涨吞没形态" {
		t.Fatalf("patterns = %+v, want only the engulfing pattern", res.Patterns)
	}
	if res.BullishWeight != 2 || res.BearishWeight != 0 {
		t.Errorf("weights bull=%d bear=%d, want 2/0", res.BullishWeight, res.BearishWeight)
	}
	if res.Strength != "★★☆☆☆" || res.Suggestion != BullishSignal {
		t.Errorf("strength=%s suggestion=%s", res.Strength, res.Suggestion)
	}
}

func TestMatchNoPattern(t *testing.T) {
	s := series(
		bar(100, 102.2, 99.8, 102),
		bar(102.5, 102.7, 100.3, 100.5),
		bar(101, 103.2, 100.8, 103),
		bar(103.5, 103.7, 101.3, 101.5),
		bar(102, 104.2, 101.8, 104),
	)
	res, err := Match(s)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(res.Patterns) != 0 {
		t.Fatalf("unexpected patterns %+v", res.Patterns)
	}
	if res.Strength != "☆☆☆☆☆" || res.Suggestion != NoSignal {
		t.Errorf("strength=%s suggestion=%s", res.Strength, res.Suggestion)
	}
}

func TestMatchInsufficientData(t *testing.T) {
	s := series(bar(1, 2, 0.5, 1.5), bar(1, 2, 0.5, 1.5))
	if _, err := Match(s); !errors.Is(err, window.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
	if _, err := Analyze(s, window.DefaultConfig().Candlestick); !errors.Is(err, window.ErrInsufficientData) {
		t.Fatalf("Analyze err = %v, want ErrInsufficientData", err)
	}
}

func TestMatchIdempotent(t *testing.T) {
	s := series(
		bar(100, 102, 99, 101),
		bar(101, 103, 100, 102),
		bar(104, 106, 103, 105),
		bar(105, 108, 99, 100),
		bar(99.5, 108, 98, 107),
	)
	a, _ := Match(s)
	b, _ := Match(s)
	if a.String() != b.String() || a.Score != b.Score {
		t.Errorf("results differ: %s vs %s", a, b)
	}
}
