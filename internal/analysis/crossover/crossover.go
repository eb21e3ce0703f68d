// Package crossover detects golden/death crosses between a fast and a slow line.
package crossover

import (
	"math"

	"SignalSentinel/internal/analysis/stats"
)

// Kind is the cross direction.
type Kind int

const (
	None Kind = iota
	Golden
	Death
)

func (k Kind) String() string {
	switch k {
	case Golden:
		return "golden_cross"
	case Death:
		return "death_cross"
	default:
		return "none"
	}
}

// Label is the Chinese wording used in composite signals.
func (k Kind) Label() string {
	switch k {
	case Golden:
		return "金叉"
	case Death:
		return "死叉"
	default:
		return "无交叉"
	}
}

// Strength grades how decisively the lines separated.
type Strength int

const (
	Normal Strength = iota
	Strong
)

func (s Strength) Label() string {
	if s == Strong {
		return "强势"
	}
	return "普通"
}

// Event is one detected crossover.
type Event struct {
	Kind      Kind
	Strength  Strength
	DiffToday float64
	DiffPrev  float64
	// Confirmed is set for three-line systems when the third line agrees.
	Confirmed bool
}

// StrongRatio is the |today| / |yesterday| multiple that marks a strong cross.
const StrongRatio = 1.5

// Detect compares the last two points of fast and slow. Fewer than two
// aligned points yield None.
func Detect(fast, slow []float64) Event {
	if len(fast) < 2 || len(slow) < 2 {
		return Event{}
	}
	today := stats.At(fast, 0) - stats.At(slow, 0)
	prev := stats.At(fast, 1) - stats.At(slow, 1)
	return FromDiffs(today, prev)
}

// FromDiffs classifies a cross from today's and yesterday's fast-slow differences.
// Golden: today > 0 and yesterday <= 0. Death: today < 0 and yesterday >= 0.
func FromDiffs(today, prev float64) Event {
	ev := Event{DiffToday: today, DiffPrev: prev}
	switch {
	case today > 0 && prev <= 0:
		ev.Kind = Golden
	case today < 0 && prev >= 0:
		ev.Kind = Death
	default:
		return ev
	}
	if math.Abs(today) > StrongRatio*math.Abs(prev) {
		ev.Strength = Strong
	}
	return ev
}

// DetectConfirmed runs Detect and sets Confirmed when the latest confirm value
// lies beyond the fast line in the cross direction (J above K for golden,
// below K for death).
func DetectConfirmed(fast, slow, confirm []float64) Event {
	ev := Detect(fast, slow)
	if len(confirm) == 0 {
		return ev
	}
	c, f := stats.Last(confirm), stats.Last(fast)
	switch ev.Kind {
	case Golden:
		ev.Confirmed = c > f
	case Death:
		ev.Confirmed = c < f
	}
	return ev
}
