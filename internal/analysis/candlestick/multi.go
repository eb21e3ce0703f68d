package candlestick

import "math"

// Two-day predicates take (day1, day2), oldest first.

func bullishEngulfing(d1, d2 candle) bool {
	return d1.bearish() && d2.bullish() && d2.open < d1.close && d2.close > d1.open
}

func bearishEngulfing(d1, d2 candle) bool {
	return d1.bullish() && d2.bearish() && d2.open > d1.close && d2.close < d1.open
}

func bullishHarami(d1, d2 candle) bool {
	return d1.bearish() && d2.bullish() &&
		d2.open > d1.close && d2.close < d1.open &&
		d2.body < d1.body*0.5
}

func bearishHarami(d1, d2 candle) bool {
	return d1.bullish() && d2.bearish() &&
		d2.open < d1.close && d2.close > d1.open &&
		d2.body < d1.body*0.5
}

func piercingLine(d1, d2 candle) bool {
	return d1.bearish() && d2.bullish() && d2.open < d1.close && d2.close > d1.midBody()
}

func darkCloudCover(d1, d2 candle) bool {
	return d1.bullish() && d2.bearish() && d2.open > d1.close && d2.close < d1.midBody()
}

// sameLevel allows 0.1% of day1's range between two prices.
func sameLevel(d1 candle, a, b float64) bool {
	return math.Abs(a-b) <= d1.span*0.001
}

func tweezerBottom(d1, d2 candle) bool {
	return d1.bearish() && d2.bullish() && sameLevel(d1, d1.low, d2.low)
}

func tweezerTop(d1, d2 candle) bool {
	return d1.bullish() && d2.bearish() && sameLevel(d1, d1.high, d2.high)
}

func gapUp(d1, d2 candle) bool   { return d2.low > d1.high }
func gapDown(d1, d2 candle) bool { return d2.high < d1.low }

func flatTop(d1, d2 candle) bool    { return sameLevel(d1, d1.high, d2.high) }
func flatBottom(d1, d2 candle) bool { return sameLevel(d1, d1.low, d2.low) }

func insideBar(d1, d2 candle) bool  { return d2.high < d1.high && d2.low > d1.low }
func outsideBar(d1, d2 candle) bool { return d2.high > d1.high && d2.low < d1.low }

// Three-day predicates take the last three bars, oldest first.

func morningStar(d []candle) bool {
	d1, d2, d3 := d[0], d[1], d[2]
	return d1.bearish() &&
		d2.body < d2.span*0.3 &&
		d3.bullish() &&
		d2.high < d1.close &&
		d3.close > d1.midBody()
}

func eveningStar(d []candle) bool {
	d1, d2, d3 := d[0], d[1], d[2]
	return d1.bullish() &&
		d2.body < d2.span*0.3 &&
		d3.bearish() &&
		d2.low > d1.close &&
		d3.close < d1.midBody()
}

func threeWhiteSoldiers(d []candle) bool {
	for i := range d {
		if !d[i].bullish() {
			return false
		}
		if i > 0 && !(d[i].close > d[i-1].close && d[i].open > d[i-1].open) {
			return false
		}
	}
	return true
}

func threeBlackCrows(d []candle) bool {
	for i := range d {
		if !d[i].bearish() {
			return false
		}
		if i > 0 && !(d[i].close < d[i-1].close && d[i].open < d[i-1].open) {
			return false
		}
	}
	return true
}

func threeInsideUp(d []candle) bool {
	return insideBar(d[0], d[1]) && d[0].bearish() && d[2].bullish() && d[2].close > d[1].high
}

func threeInsideDown(d []candle) bool {
	return insideBar(d[0], d[1]) && d[0].bullish() && d[2].bearish() && d[2].close < d[1].low
}

func threeOutsideUp(d []candle) bool {
	return outsideBar(d[0], d[1]) && d[0].bearish() && d[1].bullish() &&
		d[2].bullish() && d[2].close > d[1].high
}

func threeOutsideDown(d []candle) bool {
	return outsideBar(d[0], d[1]) && d[0].bullish() && d[1].bearish() &&
		d[2].bearish() && d[2].close < d[1].low
}

// threeMountains: the middle high tops both neighbors, which sit within 10% of day1's range.
func threeMountains(d []candle) bool {
	return d[1].high > d[0].high && d[1].high > d[2].high &&
		math.Abs(d[0].high-d[2].high) <= d[0].span*0.1
}

func threeRivers(d []candle) bool {
	return d[1].low < d[0].low && d[1].low < d[2].low &&
		math.Abs(d[0].low-d[2].low) <= d[0].span*0.1
}

func threeStars(d []candle) bool {
	for _, c := range d {
		if !isDoji(c) {
			return false
		}
	}
	return true
}

// islandUp: gap up into day2, then gap down out of it.
func islandUp(d []candle) bool {
	return d[1].low > d[0].high && d[2].high < d[1].low
}

// islandDown: gap down into day2, then gap up out of it.
func islandDown(d []candle) bool {
	return d[1].high < d[0].low && d[2].low > d[1].high
}

// Four-day predicates.

func allBearish(d []candle) bool {
	for _, c := range d {
		if !c.bearish() {
			return false
		}
	}
	return true
}

func allBullish(d []candle) bool {
	for _, c := range d {
		if !c.bullish() {
			return false
		}
	}
	return true
}

func threeLineStrikeBull(d []candle) bool {
	return allBearish(d[:3]) && d[3].bullish() && d[3].close > d[0].open
}

func threeLineStrikeBear(d []candle) bool {
	return allBullish(d[:3]) && d[3].bearish() && d[3].close < d[0].open
}

// Five-day predicates.

func risingThreeMethods(d []candle) bool {
	first, last := d[0], d[4]
	if !(first.bullish() && last.bullish() && last.close > first.close) {
		return false
	}
	for _, m := range d[1:4] {
		if !m.bearish() || !(m.low > first.open) {
			return false
		}
	}
	return true
}

func fallingThreeMethods(d []candle) bool {
	first, last := d[0], d[4]
	if !(first.bearish() && last.bearish() && last.close < first.close) {
		return false
	}
	for _, m := range d[1:4] {
		if !m.bullish() || !(m.high < first.open) {
			return false
		}
	}
	return true
}
