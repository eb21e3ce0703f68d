package model

import (
	"math"
	"time"
)

// MAPeriods lists the moving-average periods carried on every bar, shortest first.
var MAPeriods = []int{5, 10, 20, 30, 60, 90, 250}

// Bar represents one trading day with its precomputed indicator columns.
type Bar struct {
	Time   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`

	MACDDif float64 `json:"macd_dif"`
	MACDDea float64 `json:"macd_dea"`
	MACD    float64 `json:"macd"`

	KDJK float64 `json:"kdj_k"`
	KDJD float64 `json:"kdj_d"`
	KDJJ float64 `json:"kdj_j"`

	RSI6  float64 `json:"rsi_6"`
	RSI12 float64 `json:"rsi_12"`
	RSI24 float64 `json:"rsi_24"`

	BollUpper float64 `json:"boll_upper"`
	BollMid   float64 `json:"boll_mid"`
	BollLower float64 `json:"boll_lower"`

	MA5   float64 `json:"ma_5"`
	MA10  float64 `json:"ma_10"`
	MA20  float64 `json:"ma_20"`
	MA30  float64 `json:"ma_30"`
	MA60  float64 `json:"ma_60"`
	MA90  float64 `json:"ma_90"`
	MA250 float64 `json:"ma_250"`
}

// MA returns the moving average for one of MAPeriods, NaN for any other period.
func (b Bar) MA(period int) float64 {
	switch period {
	case 5:
		return b.MA5
	case 10:
		return b.MA10
	case 20:
		return b.MA20
	case 30:
		return b.MA30
	case 60:
		return b.MA60
	case 90:
		return b.MA90
	case 250:
		return b.MA250
	}
	return math.NaN()
}

// SetMA stores the moving average for one of MAPeriods; other periods are ignored.
func (b *Bar) SetMA(period int, v float64) {
	switch period {
	case 5:
		b.MA5 = v
	case 10:
		b.MA10 = v
	case 20:
		b.MA20 = v
	case 30:
		b.MA30 = v
	case 60:
		b.MA60 = v
	case 90:
		b.MA90 = v
	case 250:
		b.MA250 = v
	}
}

// Column extracts one float field from a bar.
type Column func(Bar) float64

// Common columns.
var (
	ColOpen      Column = func(b Bar) float64 { return b.Open }
	ColHigh      Column = func(b Bar) float64 { return b.High }
	ColLow       Column = func(b Bar) float64 { return b.Low }
	ColClose     Column = func(b Bar) float64 { return b.Close }
	ColVolume    Column = func(b Bar) float64 { return b.Volume }
	ColDIF       Column = func(b Bar) float64 { return b.MACDDif }
	ColDEA       Column = func(b Bar) float64 { return b.MACDDea }
	ColMACD      Column = func(b Bar) float64 { return b.MACD }
	ColK         Column = func(b Bar) float64 { return b.KDJK }
	ColD         Column = func(b Bar) float64 { return b.KDJD }
	ColJ         Column = func(b Bar) float64 { return b.KDJJ }
	ColRSI6      Column = func(b Bar) float64 { return b.RSI6 }
	ColBollUpper Column = func(b Bar) float64 { return b.BollUpper }
	ColBollMid   Column = func(b Bar) float64 { return b.BollMid }
	ColBollLower Column = func(b Bar) float64 { return b.BollLower }
)

// ColMA returns the column accessor for an MA period.
func ColMA(period int) Column {
	return func(b Bar) float64 { return b.MA(period) }
}

// Series is an ordered sequence of bars, ascending by date with no duplicates.
// Sub-slices of a Series are views and must not be mutated.
type Series []Bar

// Values returns one column of the series as a fresh slice.
func (s Series) Values(col Column) []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = col(b)
	}
	return out
}

// Tail returns a view of the last n bars (all bars when n exceeds the length).
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return s[len(s):]
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Ago returns the bar barsAgo positions from the end; Ago(0) is the latest.
func (s Series) Ago(barsAgo int) (Bar, bool) {
	idx := len(s) - 1 - barsAgo
	if barsAgo < 0 || idx < 0 {
		return Bar{}, false
	}
	return s[idx], true
}

// Latest returns the most recent bar, or the zero Bar for an empty series.
func (s Series) Latest() Bar {
	b, _ := s.Ago(0)
	return b
}

// PriceSeries holds a symbol's analyzable history.
type PriceSeries struct {
	Symbol    string
	Provider  string
	Bars      Series
	FetchedAt time.Time
}
