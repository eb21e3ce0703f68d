// Package trend fits least-squares lines over indicator windows and labels
// their direction.
package trend

import (
	"math"

	"SignalSentinel/internal/analysis/stats"
)

const (
	// FlatSlope is the magnitude below which a window counts as sideways.
	FlatSlope = 0.1
	// SteepSlope separates rapid from slow movement.
	SteepSlope = 0.3
)

// Slope returns the OLS slope of values over the zero-based index.
// Fewer than two points yield 0.
func Slope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}

// EndpointSlope is (last-first)/len, the coarse slope used by KDJ trend checks.
func EndpointSlope(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return (stats.Last(values) - stats.First(values)) / float64(len(values))
}

// Direction is a qualitative slope class.
type Direction int

const (
	Sideways Direction = iota
	SlowRise
	RapidRise
	SlowFall
	RapidFall
)

// Classify grades a slope: |slope| < 0.1 sideways, beyond ±0.3 rapid, else slow.
func Classify(slope float64) Direction {
	switch {
	case math.IsNaN(slope) || math.Abs(slope) < FlatSlope:
		return Sideways
	case slope > 0 && slope > SteepSlope:
		return RapidRise
	case slope > 0:
		return SlowRise
	case slope < -SteepSlope:
		return RapidFall
	default:
		return SlowFall
	}
}

func (d Direction) Rising() bool  { return d == SlowRise || d == RapidRise }
func (d Direction) Falling() bool { return d == SlowFall || d == RapidFall }

// Label is the generic wording; families layer their own on top.
func (d Direction) Label() string {
	switch d {
	case RapidRise:
		return "上升趋势"
	case SlowRise:
		return "弱势上涨"
	case RapidFall:
		return "下降趋势"
	case SlowFall:
		return "弱势下跌"
	default:
		return "横盘震荡"
	}
}

func (d Direction) String() string {
	switch d {
	case RapidRise:
		return "rapid-rise"
	case SlowRise:
		return "slow-rise"
	case RapidFall:
		return "rapid-fall"
	case SlowFall:
		return "slow-fall"
	default:
		return "sideways"
	}
}

// Estimate fits values and classifies the slope in one step.
func Estimate(values []float64) (float64, Direction) {
	s := Slope(values)
	return s, Classify(s)
}

// TailWord describes the last n values: 上升 when non-decreasing, 下降 when
// non-increasing, otherwise 震荡.
func TailWord(values []float64, n int) string {
	tail := stats.Tail(values, n)
	switch {
	case stats.MonotonicIncreasing(tail):
		return "上升"
	case stats.MonotonicDecreasing(tail):
		return "下降"
	default:
		return "震荡"
	}
}
