// Package rule evaluates ordered (predicate, label) tables top to bottom,
// first match wins.
package rule

// Rule pairs a predicate over T with the label it yields.
type Rule[T any] struct {
	When  func(T) bool
	Label string
}

// Table is an ordered rule list with a fallback label.
type Table[T any] struct {
	Rules    []Rule[T]
	Fallback string
}

// Eval returns the label of the first matching rule, or the fallback.
func (t Table[T]) Eval(in T) string {
	for _, r := range t.Rules {
		if r.When(in) {
			return r.Label
		}
	}
	return t.Fallback
}

// Threshold maps a value to the label of the first bound it exceeds (strictly).
// Bounds are listed from highest to lowest.
type Threshold struct {
	Above float64
	Label string
}

// Grade walks thresholds in order; fallback when none is exceeded.
func Grade(v float64, thresholds []Threshold, fallback string) string {
	for _, th := range thresholds {
		if v > th.Above {
			return th.Label
		}
	}
	return fallback
}
