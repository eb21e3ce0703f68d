package model

import "time"

// Family names an indicator family in an AnalysisResult.
type Family string

const (
	FamilyMACD        Family = "MACD"
	FamilyKDJ         Family = "KDJ"
	FamilyRSI         Family = "RSI"
	FamilyBOLL        Family = "BOLL"
	FamilyMA          Family = "MA"
	FamilyCandlestick Family = "Candlestick"
)

// Families lists every family in report order.
var Families = []Family{FamilyCandlestick, FamilyMA, FamilyMACD, FamilyKDJ, FamilyRSI, FamilyBOLL}

// DisplayName is the Chinese heading used in reports and messages.
func (f Family) DisplayName() string {
	switch f {
	case FamilyCandlestick:
		return "K线形态"
	case FamilyMA:
		return "均线系统"
	}
	return string(f)
}

// IndicatorResult is one family's output. Implementations are built once per
// analysis call and never mutated afterwards.
type IndicatorResult interface {
	// Composite returns the family's one-line composite signal.
	Composite() string
	// Available reports whether the family produced a real classification.
	Available() bool
}

// Unavailable marks a family that could not be analyzed.
type Unavailable struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// NewUnavailable builds the marker for a failed or skipped family.
func NewUnavailable(msg string) Unavailable {
	return Unavailable{Status: "error", Error: msg}
}

func (u Unavailable) Composite() string { return u.Error }
func (u Unavailable) Available() bool   { return false }

// AnalysisResult maps family names to their results.
type AnalysisResult struct {
	Symbol  string                     `json:"symbol"`
	AsOf    time.Time                  `json:"as_of"`
	Results map[Family]IndicatorResult `json:"results"`
}

// Get returns a family's result, or an Unavailable marker when absent.
func (r *AnalysisResult) Get(f Family) IndicatorResult {
	if r == nil || r.Results == nil {
		return NewUnavailable("无数据")
	}
	if v, ok := r.Results[f]; ok && v != nil {
		return v
	}
	return NewUnavailable("无数据")
}
