package ma

import (
	"fmt"
	"math"
	"strings"

	"SignalSentinel/internal/analysis/crossover"
	"SignalSentinel/internal/analysis/stats"
	"SignalSentinel/internal/analysis/trend"
	"SignalSentinel/internal/model"
)

// NoShortSignal is the summary when no short-term event fired.
const NoShortSignal = "无明显短期信号"

const (
	convergenceRatio  = 0.01
	breakVolumeRatio  = 1.5
	strongBreakVolume = 2.0
	momentumPct       = 3.0
	momentumVolume    = 1.2
	deviationPct      = 5.0
	shortTail         = 5
)

// crossPairs are the (fast, slow) MA pairs watched for crossovers.
var crossPairs = [][2]int{{5, 10}, {5, 20}, {10, 20}, {20, 30}}

// turningPeriods are the MAs inspected for slope changes.
var turningPeriods = []int{5, 10, 20}

type Cross struct {
	Type     string  `json:"type"`
	ShortMA  int     `json:"short_ma"`
	LongMA   int     `json:"long_ma"`
	Strength string  `json:"strength"`
	Value    float64 `json:"value"`
	Diff     float64 `json:"diff"`
}

type Turning struct {
	MA          int     `json:"ma"`
	Type        string  `json:"type"`
	Slope       float64 `json:"slope"`
	SlopeChange float64 `json:"slope_change"`
	Value       float64 `json:"value"`
}

type Breakthrough struct {
	Type        string  `json:"type"`
	Strength    string  `json:"strength,omitempty"`
	PriceChange float64 `json:"price_change"`
	VolumeRatio float64 `json:"volume_ratio"`
}

type Momentum struct {
	MA5Slope    float64 `json:"ma5_slope"`
	MA10Slope   float64 `json:"ma10_slope"`
	Momentum    float64 `json:"momentum"`
	VolumeRatio float64 `json:"volume_ratio"`
	Strong      bool    `json:"strong"`
	Period      string  `json:"period"`
}

type Deviation struct {
	Values  map[string]float64 `json:"values"`
	Average float64            `json:"average"`
	MaxAbs  float64            `json:"max_abs"`
	Status  string             `json:"status"`
}

// ShortSignal bundles the short-window events and their summary sentence.
type ShortSignal struct {
	Crosses       []Cross      `json:"crosses"`
	TurningPoints []Turning    `json:"turning_points"`
	Breakthrough  Breakthrough `json:"breakthrough"`
	TrendStrength Momentum     `json:"trend_strength"`
	Deviation     Deviation    `json:"deviation"`
	Summary       string       `json:"summary"`
	Period        string       `json:"period"`
}

func shortTermSignal(s model.Series, span int) ShortSignal {
	sig := ShortSignal{
		Crosses:       crosses(s),
		TurningPoints: turningPoints(s),
		Breakthrough:  breakthrough(s),
		TrendStrength: momentum(s),
		Deviation:     deviation(s.Latest()),
		Period:        fmt.Sprintf("%d天", span),
	}
	sig.Summary = summarize(sig)
	return sig
}

func crosses(s model.Series) []Cross {
	var out []Cross
	for _, p := range crossPairs {
		fast := s.Values(model.ColMA(p[0]))
		slow := s.Values(model.ColMA(p[1]))
		ev := crossover.Detect(fast, slow)
		if ev.Kind == crossover.None {
			continue
		}
		out = append(out, Cross{
			Type:     ev.Kind.String(),
			ShortMA:  p[0],
			LongMA:   p[1],
			Strength: ev.Strength.Label(),
			Value:    stats.Last(fast),
			Diff:     ev.DiffToday,
		})
	}
	return out
}

// turningPoints reads the first and second differences of each MA over the
// last five bars. At least two second differences are required.
func turningPoints(s model.Series) []Turning {
	tail := s.Tail(shortTail)
	var out []Turning
	for _, p := range turningPeriods {
		values := tail.Values(model.ColMA(p))
		slopes := stats.Diff(values)
		changes := stats.Diff(slopes)
		if len(changes) < 2 {
			continue
		}
		slope, change := stats.Last(slopes), stats.Last(changes)
		out = append(out, Turning{
			MA:          p,
			Type:        turningType(slope, change),
			Slope:       slope,
			SlopeChange: change,
			Value:       stats.Last(values),
		})
	}
	return out
}

func turningType(slope, change float64) string {
	switch {
	case change > 0 && slope > 0:
		return "加速上涨"
	case change > 0 && slope < 0:
		return "下跌趋缓"
	case change < 0 && slope > 0:
		return "上涨趋缓"
	case change < 0 && slope < 0:
		return "加速下跌"
	default:
		return "无明显拐点"
	}
}

// breakthrough fires when MA5/10/20 are tightly packed and the latest bar
// leaves the cluster on expanding volume.
func breakthrough(s model.Series) Breakthrough {
	none := Breakthrough{Type: "no_breakthrough"}
	latest := s.Latest()
	prev, ok := s.Ago(1)
	if !ok {
		return none
	}
	cluster := []float64{latest.MA(5), latest.MA(10), latest.MA(20)}
	mean := stats.Mean(cluster)
	if !stats.Usable(mean) || stats.StdPop(cluster)/math.Abs(mean) >= convergenceRatio {
		return none
	}
	if !stats.Usable(prev.Close) || !stats.Usable(prev.Volume) {
		return none
	}
	none.PriceChange = (latest.Close - prev.Close) / prev.Close
	none.VolumeRatio = latest.Volume / prev.Volume
	if none.VolumeRatio <= breakVolumeRatio || none.PriceChange == 0 {
		return none
	}

	b := none
	b.Type = "upward_breakthrough"
	if b.PriceChange < 0 {
		b.Type = "downward_breakthrough"
	}
	b.Strength = "normal"
	if b.VolumeRatio > strongBreakVolume {
		b.Strength = "strong"
	}
	return b
}

func momentum(s model.Series) Momentum {
	tail := s.Tail(shortTail)
	m := Momentum{
		MA5Slope:  trend.Slope(tail.Values(model.ColMA(5))),
		MA10Slope: trend.Slope(tail.Values(model.ColMA(10))),
		Period:    fmt.Sprintf("%d天", len(tail)),
	}
	closes := tail.Values(model.ColClose)
	if first := stats.First(closes); stats.Usable(first) {
		m.Momentum = (stats.Last(closes)/first - 1) * 100
	}
	volumes := tail.Values(model.ColVolume)
	if mean := stats.Mean(volumes); stats.Usable(mean) {
		m.VolumeRatio = stats.Last(volumes) / mean
	}
	m.Strong = math.Abs(m.Momentum) > momentumPct && m.VolumeRatio > momentumVolume
	return m
}

// deviation measures how far the close sits from MA5/10/20, in percent.
func deviation(b model.Bar) Deviation {
	d := Deviation{Values: make(map[string]float64, len(turningPeriods)), Status: "正常"}
	var sum float64
	for _, p := range turningPeriods {
		ma := b.MA(p)
		if !stats.Usable(ma) {
			continue
		}
		v := (b.Close - ma) / ma * 100
		d.Values[Key(p)] = v
		sum += v
		d.MaxAbs = math.Max(d.MaxAbs, math.Abs(v))
	}
	if len(d.Values) == 0 {
		return d
	}
	d.Average = sum / float64(len(d.Values))
	if d.MaxAbs > deviationPct {
		if d.Average > 0 {
			d.Status = "超买"
		} else {
			d.Status = "超卖"
		}
	}
	return d
}

func summarize(sig ShortSignal) string {
	var parts []string
	for _, c := range sig.Crosses {
		kind := "金叉"
		if c.Type == crossover.Death.String() {
			kind = "死叉"
		}
		parts = append(parts, fmt.Sprintf("%d日线与%d日线形成%s%s", c.ShortMA, c.LongMA, c.Strength, kind))
	}
	for _, t := range sig.TurningPoints {
		parts = append(parts, fmt.Sprintf("%d日均线%s", t.MA, t.Type))
	}
	if b := sig.Breakthrough; b.Type != "no_breakthrough" {
		dir, strength := "向上", "普通"
		if b.Type == "downward_breakthrough" {
			dir = "向下"
		}
		if b.Strength == "strong" {
			strength = "强势"
		}
		parts = append(parts, fmt.Sprintf("均线密集区%s突破（%s）", dir, strength))
	}
	if m := sig.TrendStrength; m.Strong {
		dir := "上涨"
		if m.Momentum < 0 {
			dir = "下跌"
		}
		parts = append(parts, fmt.Sprintf("短期%s动能强劲", dir))
	}
	if d := sig.Deviation; d.Status != "正常" {
		parts = append(parts, fmt.Sprintf("均线系统%s（%.2f%%）", d.Status, math.Abs(d.Average)))
	}
	if len(parts) == 0 {
		return NoShortSignal
	}
	return strings.Join(parts, "，")
}
