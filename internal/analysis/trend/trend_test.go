package trend

import (
	"math"
	"testing"
)

func TestSlopeExactLine(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 3 + 0.5*float64(i)
	}
	if got := Slope(values); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("Slope = %v, want 0.5", got)
	}
}

func TestMonotonicSeriesDirection(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		sign    int
		rising  bool
		falling bool
	}{
		{"increasing", []float64{1, 2, 4, 7, 11, 16}, 1, true, false},
		{"decreasing", []float64{16, 11, 7, 4, 2, 1}, -1, false, true},
		{"constant", []float64{5, 5, 5, 5, 5}, 0, false, false},
	}
	for _, tt := range tests {
		slope, dir := Estimate(tt.values)
		switch {
		case tt.sign > 0 && slope <= 0, tt.sign < 0 && slope >= 0, tt.sign == 0 && math.Abs(slope) > 1e-12:
			t.Errorf("%s: slope = %v, want sign %d", tt.name, slope, tt.sign)
		}
		if dir.Rising() != tt.rising || dir.Falling() != tt.falling {
			t.Errorf("%s: direction = %v", tt.name, dir)
		}
		if tt.sign == 0 && dir != Sideways {
			t.Errorf("%s: direction = %v, want sideways", tt.name, dir)
		}
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		slope float64
		want  Direction
	}{
		{0.05, Sideways},
		{-0.0999, Sideways},
		{0.1, SlowRise},
		{0.3, SlowRise},
		{0.31, RapidRise},
		{-0.2, SlowFall},
		{-0.31, RapidFall},
	}
	for _, tt := range tests {
		if got := Classify(tt.slope); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.slope, got, tt.want)
		}
	}
}

func TestTailWord(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
	}{
		{[]float64{9, 1, 2, 3, 4, 5}, "上升"},
		{[]float64{1, 9, 8, 7, 6, 5}, "下降"},
		{[]float64{1, 2, 1, 2, 1}, "震荡"},
	}
	for _, tt := range tests {
		if got := TailWord(tt.values, 5); got != tt.want {
			t.Errorf("TailWord(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}

func TestEndpointSlope(t *testing.T) {
	if got := EndpointSlope([]float64{10, 0, 0, 20}); got != 2.5 {
		t.Errorf("EndpointSlope = %v, want 2.5", got)
	}
}
