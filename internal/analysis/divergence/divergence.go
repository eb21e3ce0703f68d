// Package divergence flags price/indicator extrema that move in opposite directions.
package divergence

import "SignalSentinel/internal/analysis/stats"

// Kind is the divergence outcome.
type Kind int

const (
	None Kind = iota
	Top
	Bottom
)

func (k Kind) Label() string {
	switch k {
	case Top:
		return "顶背离"
	case Bottom:
		return "底背离"
	default:
		return "无背离"
	}
}

func (k Kind) String() string {
	switch k {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

const (
	// Width is the centered neighborhood used for extrema.
	Width = 5
	// Lookback is the bars-ago offset of the earlier comparison point.
	Lookback = 4
	// MinExtrema is the number of extrema each side needs before comparing.
	MinExtrema = 2
)

// Rolling returns the centered rolling max (high) or min of values. Windows
// are truncated at both edges, so every position is defined. A pandas
// rolling(width, center=True) leaves the last width/2 positions NaN instead,
// under which the latest-position comparison in Detect could never fire.
func Rolling(values []float64, width int, high bool) []float64 {
	out := make([]float64, len(values))
	half := width / 2
	for i := range values {
		lo, hi := i-half, i+half
		if lo < 0 {
			lo = 0
		}
		if hi > len(values)-1 {
			hi = len(values) - 1
		}
		best := values[lo]
		for j := lo + 1; j <= hi; j++ {
			if (high && values[j] > best) || (!high && values[j] < best) {
				best = values[j]
			}
		}
		out[i] = best
	}
	return out
}

// Extrema returns the indices whose value equals the extreme of their
// centered neighborhood.
func Extrema(values []float64, width int, high bool) []int {
	roll := Rolling(values, width, high)
	var idx []int
	for i, v := range values {
		if v == roll[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Result carries the outcome and the compared values for diagnostics.
type Result struct {
	Kind         Kind
	PriceRecent  float64
	PriceEarlier float64
	IndRecent    float64
	IndEarlier   float64
}

// Detect is the fixed-offset mode used for KDJ: it compares the rolling
// extremes of price and indicator at the latest position against Lookback
// bars earlier. Top divergence: price's rolling high rose while the
// indicator's fell. Bottom divergence mirrors it on lows.
// Either side needs MinExtrema extrema on both series, otherwise None.
func Detect(price, indicator []float64) Result {
	n := len(price)
	if n != len(indicator) || n <= Lookback {
		return Result{}
	}

	if enough(price, indicator, true) {
		ph, ih := Rolling(price, Width, true), Rolling(indicator, Width, true)
		r := compare(ph, ih)
		if r.PriceRecent > r.PriceEarlier && r.IndRecent < r.IndEarlier {
			r.Kind = Top
			return r
		}
	}
	if enough(price, indicator, false) {
		pl, il := Rolling(price, Width, false), Rolling(indicator, Width, false)
		r := compare(pl, il)
		if r.PriceRecent < r.PriceEarlier && r.IndRecent > r.IndEarlier {
			r.Kind = Bottom
			return r
		}
	}
	return Result{}
}

func enough(price, indicator []float64, high bool) bool {
	return len(Extrema(price, Width, high)) >= MinExtrema &&
		len(Extrema(indicator, Width, high)) >= MinExtrema
}

func compare(p, ind []float64) Result {
	return Result{
		PriceRecent:  stats.At(p, 0),
		PriceEarlier: stats.At(p, Lookback),
		IndRecent:    stats.At(ind, 0),
		IndEarlier:   stats.At(ind, Lookback),
	}
}

// LocalExtrema returns, oldest first, the values strictly greater (high) or
// strictly smaller than both neighbours. The first and last values never qualify.
func LocalExtrema(values []float64, high bool) []float64 {
	var out []float64
	for i := 1; i < len(values)-1; i++ {
		prev, v, next := values[i-1], values[i], values[i+1]
		if (high && v > prev && v > next) || (!high && v < prev && v < next) {
			out = append(out, v)
		}
	}
	return out
}

// DetectPivots is the extrema-list mode used for MACD: it compares the two
// most recent strict local extrema of each series. Top divergence: the later
// price high is higher while the later indicator high is lower. Bottom
// divergence mirrors it on lows. Each side needs MinExtrema extrema on both
// series.
func DetectPivots(price, indicator []float64) Result {
	if len(price) != len(indicator) {
		return Result{}
	}
	if r, ok := lastTwo(LocalExtrema(price, true), LocalExtrema(indicator, true)); ok &&
		r.PriceRecent > r.PriceEarlier && r.IndRecent < r.IndEarlier {
		r.Kind = Top
		return r
	}
	if r, ok := lastTwo(LocalExtrema(price, false), LocalExtrema(indicator, false)); ok &&
		r.PriceRecent < r.PriceEarlier && r.IndRecent > r.IndEarlier {
		r.Kind = Bottom
		return r
	}
	return Result{}
}

func lastTwo(p, ind []float64) (Result, bool) {
	if len(p) < MinExtrema || len(ind) < MinExtrema {
		return Result{}, false
	}
	return Result{
		PriceRecent:  stats.At(p, 0),
		PriceEarlier: stats.At(p, 1),
		IndRecent:    stats.At(ind, 0),
		IndEarlier:   stats.At(ind, 1),
	}, true
}
