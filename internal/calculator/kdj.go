package calculator

import "SignalSentinel/internal/model"

const (
	kdjPeriod = 9
	kdjSeed   = 50.0
)

// KDJ computes the stochastic K/D/J lines with 1/3 smoothing:
// RSV = (C - LLV9) / (HHV9 - LLV9) * 100, K = 2/3 K' + 1/3 RSV,
// D = 2/3 D' + 1/3 K, J = 3K - 2D. K and D start at 50. The first bars use
// the shorter window available; a flat window keeps RSV at 50.
func KDJ(high, low, close []float64) (k, d, j []float64) {
	n := len(close)
	k, d, j = make([]float64, n), make([]float64, n), make([]float64, n)
	prevK, prevD := kdjSeed, kdjSeed
	for i := 0; i < n; i++ {
		start := i - kdjPeriod + 1
		if start < 0 {
			start = 0
		}
		hh, ll := high[start], low[start]
		for x := start + 1; x <= i; x++ {
			hh = max(hh, high[x])
			ll = min(ll, low[x])
		}
		rsv := kdjSeed
		if hh > ll {
			rsv = (close[i] - ll) / (hh - ll) * 100
		}
		k[i] = 2.0/3.0*prevK + rsv/3.0
		d[i] = 2.0/3.0*prevD + k[i]/3.0
		j[i] = 3*k[i] - 2*d[i]
		prevK, prevD = k[i], d[i]
	}
	return k, d, j
}

func fillKDJ(s model.Series) {
	k, d, j := KDJ(s.Values(model.ColHigh), s.Values(model.ColLow), s.Values(model.ColClose))
	for i := range s {
		s[i].KDJK, s[i].KDJD, s[i].KDJJ = k[i], d[i], j[i]
	}
}
