// Package stats holds the small numeric helpers shared by the analyzers.
// All positional access is relative to the end of a slice.
package stats

import "math"

// At returns values[len-1-barsAgo]; NaN when out of range.
func At(values []float64, barsAgo int) float64 {
	idx := len(values) - 1 - barsAgo
	if barsAgo < 0 || idx < 0 {
		return math.NaN()
	}
	return values[idx]
}

// Last is At(values, 0).
func Last(values []float64) float64 {
	return At(values, 0)
}

// First returns the oldest value; NaN for an empty slice.
func First(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[0]
}

// Tail returns the last n values as a view.
func Tail(values []float64, n int) []float64 {
	if n <= 0 {
		return values[len(values):]
	}
	if n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}

func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Mean returns NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// StdSample is the sample standard deviation (n-1 denominator); NaN below two values.
func StdSample(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return math.Sqrt(sqDev(values) / float64(len(values)-1))
}

// StdPop is the population standard deviation (n denominator); NaN for an empty slice.
func StdPop(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return math.Sqrt(sqDev(values) / float64(len(values)))
}

func sqDev(values []float64) float64 {
	m := Mean(values)
	var acc float64
	for _, v := range values {
		d := v - m
		acc += d * d
	}
	return acc
}

// MonotonicIncreasing reports whether every value is >= its predecessor.
func MonotonicIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] >= values[i-1]) {
			return false
		}
	}
	return true
}

// MonotonicDecreasing reports whether every value is <= its predecessor.
func MonotonicDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] <= values[i-1]) {
			return false
		}
	}
	return true
}

// Diff returns consecutive differences, one shorter than values.
func Diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// Usable reports whether x is a finite, non-zero denominator.
func Usable(x float64) bool {
	return x != 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
