// Package calculator fills indicator columns a data provider did not supply
// and derives the price context shown next to an analysis.
package calculator

import (
	"github.com/markcheno/go-talib"

	"SignalSentinel/internal/model"
)

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
	bollPeriod = 20
	bollDev    = 2.0
)

// Enrich returns a copy of s with every all-zero indicator group recomputed
// from OHLCV. Columns supplied by the provider are kept as they are.
func Enrich(s model.Series) model.Series {
	out := make(model.Series, len(s))
	copy(out, s)
	if len(out) == 0 {
		return out
	}
	closes := extractCloses(out)

	if missing(out, model.ColDIF) {
		fillMACD(out, closes)
	}
	if missing(out, model.ColK) {
		fillKDJ(out)
	}
	if missing(out, model.ColRSI6) {
		fillRSI(out, closes)
	}
	if missing(out, model.ColBollMid) {
		fillBoll(out, closes)
	}
	for _, p := range model.MAPeriods {
		if missing(out, model.ColMA(p)) {
			fillMA(out, closes)
			break
		}
	}
	return out
}

func missing(s model.Series, col model.Column) bool {
	for _, b := range s {
		if col(b) != 0 {
			return false
		}
	}
	return true
}

// fillMACD stores DIF, DEA and the 2*(DIF-DEA) histogram.
func fillMACD(s model.Series, closes []float64) {
	lookback := macdSlow + macdSignal - 2
	if len(closes) <= lookback {
		return
	}
	dif, dea, _ := talib.Macd(closes, macdFast, macdSlow, macdSignal)
	for i := lookback; i < len(s); i++ {
		s[i].MACDDif = dif[i]
		s[i].MACDDea = dea[i]
		s[i].MACD = 2 * (dif[i] - dea[i])
	}
}

func fillBoll(s model.Series, closes []float64) {
	if len(closes) < bollPeriod {
		return
	}
	upper, mid, lower := talib.BBands(closes, bollPeriod, bollDev, bollDev, talib.SMA)
	for i := bollPeriod - 1; i < len(s); i++ {
		s[i].BollUpper, s[i].BollMid, s[i].BollLower = upper[i], mid[i], lower[i]
	}
}

// Warmup is the longest lookback among the MACD, RSI and BOLL columns: the
// number of leading bars on which at least one of them is still undefined.
var Warmup = max(macdSlow+macdSignal-2, RSIPeriods[len(RSIPeriods)-1], bollPeriod-1)

// TrimWarmup drops the first Warmup bars. The cut is positional, so a column
// that is legitimately zero (RSI on a strictly falling series) keeps its bars.
// Provider-supplied columns lose the same leading bars. MA columns are left to
// the MA analyzer's own usability check.
func TrimWarmup(s model.Series) model.Series {
	if len(s) <= Warmup {
		return s[len(s):]
	}
	return s[Warmup:]
}
