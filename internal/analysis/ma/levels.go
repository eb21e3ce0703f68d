package ma

import (
	"math"
	"sort"

	"SignalSentinel/internal/analysis/rule"
	"SignalSentinel/internal/analysis/stats"
	"SignalSentinel/internal/model"
)

type Formation struct {
	Type       string  `json:"type"`
	Strength   string  `json:"strength"`
	Dispersion float64 `json:"dispersion"`
}

type SystemStrength struct {
	Strength string  `json:"strength"`
	Spread   float64 `json:"spread"`
}

// Level is one MA acting as support or resistance.
type Level struct {
	MA    int     `json:"ma"`
	Value float64 `json:"value"`
}

type SupportResistance struct {
	Price             float64 `json:"price"`
	Support           []Level `json:"support"`
	Resistance        []Level `json:"resistance"`
	NearestSupport    *Level  `json:"nearest_support"`
	NearestResistance *Level  `json:"nearest_resistance"`
}

var dispersionGrades = []rule.Threshold{
	{Above: 0.05, Label: "强"},
	{Above: 0.02, Label: "中"},
}

var spreadGrades = []rule.Threshold{
	{Above: 0.05, Label: "极强势"},
	{Above: 0.03, Label: "强势"},
	{Above: 0.01, Label: "中等强度"},
}

func maValues(b model.Bar) []float64 {
	out := make([]float64, len(model.MAPeriods))
	for i, p := range model.MAPeriods {
		out[i] = b.MA(p)
	}
	return out
}

// formation reports the stacking order of all MAs, shortest first.
func formation(b model.Bar) Formation {
	values := maValues(b)
	f := Formation{Type: "混乱排列"}
	switch {
	case strictlyDescending(values):
		f.Type = "多头排列"
	case strictlyAscending(values):
		f.Type = "空头排列"
	}
	if mean := stats.Mean(values); stats.Usable(mean) {
		f.Dispersion = stats.StdPop(values) / math.Abs(mean)
	}
	f.Strength = rule.Grade(f.Dispersion, dispersionGrades, "弱")
	return f
}

func strictlyDescending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if !(v[i-1] > v[i]) {
			return false
		}
	}
	return true
}

func strictlyAscending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if !(v[i-1] < v[i]) {
			return false
		}
	}
	return true
}

// systemStrength averages the relative gap between adjacent MAs.
func systemStrength(b model.Bar) SystemStrength {
	values := maValues(b)
	var gaps []float64
	for i := 0; i+1 < len(values); i++ {
		if !stats.Usable(values[i+1]) {
			continue
		}
		gaps = append(gaps, math.Abs(values[i]-values[i+1])/math.Abs(values[i+1]))
	}
	var s SystemStrength
	if len(gaps) > 0 {
		s.Spread = stats.Mean(gaps)
	}
	s.Strength = rule.Grade(s.Spread, spreadGrades, "弱势")
	return s
}

// supportResistance splits MAs around the close, each side ordered nearest first.
func supportResistance(b model.Bar) SupportResistance {
	sr := SupportResistance{Price: b.Close, Support: []Level{}, Resistance: []Level{}}
	for _, p := range model.MAPeriods {
		lv := Level{MA: p, Value: b.MA(p)}
		if lv.Value < b.Close {
			sr.Support = append(sr.Support, lv)
		} else {
			sr.Resistance = append(sr.Resistance, lv)
		}
	}
	sort.SliceStable(sr.Support, func(i, j int) bool { return sr.Support[i].Value > sr.Support[j].Value })
	sort.SliceStable(sr.Resistance, func(i, j int) bool { return sr.Resistance[i].Value < sr.Resistance[j].Value })
	if len(sr.Support) > 0 {
		sr.NearestSupport = &sr.Support[0]
	}
	if len(sr.Resistance) > 0 {
		sr.NearestResistance = &sr.Resistance[0]
	}
	return sr
}
