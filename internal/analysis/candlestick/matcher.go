// Package candlestick recognizes 1–5 day candlestick formations on the most
// recent bars and grades them into a star rating and a directional suggestion.
package candlestick

import (
	"math"
	"sort"
	"strings"

	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// RecentBars is how many trailing bars the matcher inspects.
const RecentBars = 5

// Suggestion labels.
const (
	StrongBullish = "强烈看涨信号"
	BullishSignal = "看涨信号"
	StrongBearish = "强烈看跌信号"
	BearishSignal = "看跌信号"
	RangeBound    = "市场震荡"
	NoSignal      = "无明显信号"
)

// Hit is one pattern retained in the result.
type Hit struct {
	Type     string   `json:"type"`
	Pattern  string   `json:"pattern"`
	Days     int      `json:"days"`
	Priority int      `json:"priority,omitempty"`
	Polarity Polarity `json:"polarity"`
}

// Result is the candlestick family output.
type Result struct {
	Patterns      []Hit   `json:"patterns"`
	Strength      string  `json:"strength"`
	Score         float64 `json:"score"`
	Suggestion    string  `json:"suggestion"`
	BullishWeight int     `json:"bullish_weight"`
	BearishWeight int     `json:"bearish_weight"`
	// Candidates holds every match per day group before priority resolution.
	Candidates map[int][]Hit `json:"-"`
}

func (r Result) Composite() string { return r.Suggestion }
func (r Result) Available() bool   { return true }

// Names lists the retained pattern names in order.
func (r Result) Names() []string {
	out := make([]string, len(r.Patterns))
	for i, h := range r.Patterns {
		out[i] = h.Pattern
	}
	return out
}

// String renders the result the way reports quote it.
func (r Result) String() string {
	names := "无"
	if len(r.Patterns) > 0 {
		names = strings.Join(r.Names(), "、")
	}
	return "形态：" + names + "；强度：" + r.Strength + "；建议：" + r.Suggestion
}

// Analyze runs the matcher over a family window.
func Analyze(s model.Series, spans window.Spans) (model.IndicatorResult, error) {
	w, err := window.Slice(model.FamilyCandlestick, s, spans)
	if err != nil {
		return nil, err
	}
	n := spans.Short
	if n < RecentBars {
		n = RecentBars
	}
	return Match(w.Full.Tail(n))
}

// Match evaluates every registered pattern on the last RecentBars bars.
// Single-day matches are all kept; each larger day group keeps only its
// highest-priority match, earlier registration winning ties.
func Match(s model.Series) (Result, error) {
	if err := window.Require(model.FamilyCandlestick, s, RecentBars); err != nil {
		return Result{}, err
	}
	cs := candles(s.Tail(RecentBars))

	res := Result{Candidates: make(map[int][]Hit)}
	totalWeight := 0
	for days := 1; days <= RecentBars; days++ {
		group := cs[len(cs)-days:]
		var matched []Hit
		for _, p := range Registry {
			if p.Days == days && p.match(group) {
				matched = append(matched, Hit{
					Type:     GroupLabel(days),
					Pattern:  p.Name,
					Days:     days,
					Priority: p.Priority,
					Polarity: p.Polarity,
				})
			}
		}
		if len(matched) == 0 {
			continue
		}
		res.Candidates[days] = matched

		kept := resolve(days, matched)
		for _, h := range kept {
			res.Patterns = append(res.Patterns, h)
			totalWeight += days
			switch h.Polarity {
			case Bullish:
				res.BullishWeight += days
			case Bearish:
				res.BearishWeight += days
			}
		}
	}

	if len(res.Patterns) == 0 {
		res.Strength = Stars(0)
		res.Suggestion = NoSignal
		return res, nil
	}

	res.Score = math.Min(5, float64(totalWeight)/float64(len(res.Patterns)))
	res.Strength = Stars(res.Score)
	res.Suggestion = suggest(res.BullishWeight, res.BearishWeight, FilledStars(res.Score))
	return res, nil
}

func resolve(days int, matched []Hit) []Hit {
	if days == 1 {
		return matched
	}
	ranked := make([]Hit, len(matched))
	copy(ranked, matched)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	return ranked[:1]
}

func suggest(bull, bear, stars int) string {
	switch {
	case bull > bear && stars >= 4:
		return StrongBullish
	case bull > bear:
		return BullishSignal
	case bear > bull && stars >= 4:
		return StrongBearish
	case bear > bull:
		return BearishSignal
	default:
		return RangeBound
	}
}

// FilledStars is the integer part of the clamped score, plus one when the
// fractional part is at least 0.5.
func FilledStars(score float64) int {
	score = math.Max(0, math.Min(5, score))
	full := int(score)
	if score-float64(full) >= 0.5 {
		full++
	}
	return full
}

// Stars renders a score as five ★/☆ glyphs.
func Stars(score float64) string {
	full := FilledStars(score)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
