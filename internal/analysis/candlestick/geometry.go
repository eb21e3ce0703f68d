package candlestick

import (
	"math"

	"SignalSentinel/internal/model"
)

// candle caches the body/shadow geometry of one bar.
type candle struct {
	open, high, low, close float64
	body, upper, lower     float64
	span                   float64
}

func newCandle(b model.Bar) candle {
	return candle{
		open:  b.Open,
		high:  b.High,
		low:   b.Low,
		close: b.Close,
		body:  math.Abs(b.Open - b.Close),
		upper: b.High - math.Max(b.Open, b.Close),
		lower: math.Min(b.Open, b.Close) - b.Low,
		span:  b.High - b.Low,
	}
}

func (c candle) bullish() bool { return c.close > c.open }
func (c candle) bearish() bool { return c.close < c.open }
func (c candle) midBody() float64 { return (c.open + c.close) / 2 }

func candles(bars []model.Bar) []candle {
	out := make([]candle, len(bars))
	for i, b := range bars {
		out[i] = newCandle(b)
	}
	return out
}
