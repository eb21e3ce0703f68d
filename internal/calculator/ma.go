package calculator

import (
	"github.com/markcheno/go-talib"

	"SignalSentinel/internal/model"
)

// fillMA computes simple moving averages for every period in model.MAPeriods.
// Bars before a period's lookback keep a zero value.
func fillMA(s model.Series, closes []float64) {
	for _, p := range model.MAPeriods {
		if len(closes) < p {
			continue
		}
		sma := talib.Sma(closes, p)
		for i := p - 1; i < len(s); i++ {
			s[i].SetMA(p, sma[i])
		}
	}
}

func extractCloses(s model.Series) []float64 {
	return s.Values(model.ColClose)
}
