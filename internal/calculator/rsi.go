package calculator

import (
	"github.com/markcheno/go-talib"

	"SignalSentinel/internal/model"
)

// RSIPeriods are the Wilder RSI lengths stored as rsi_6 / rsi_12 / rsi_24.
var RSIPeriods = [3]int{6, 12, 24}

// fillRSI computes Wilder-smoothed RSI. A bar needs period+1 closes.
func fillRSI(s model.Series, closes []float64) {
	for k, p := range RSIPeriods {
		if len(closes) <= p {
			continue
		}
		rsi := talib.Rsi(closes, p)
		for i := p; i < len(s); i++ {
			switch k {
			case 0:
				s[i].RSI6 = rsi[i]
			case 1:
				s[i].RSI12 = rsi[i]
			case 2:
				s[i].RSI24 = rsi[i]
			}
		}
	}
}
