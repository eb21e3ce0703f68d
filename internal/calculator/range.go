package calculator

import (
	"errors"
	"math"

	"SignalSentinel/internal/model"
)

// TradingDays52w is the number of daily bars treated as one year.
const TradingDays52w = 252

// Range scans the most recent n bars and returns the highest high and lowest low.
func Range(s model.Series, n int) (high, low float64, err error) {
	if len(s) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range s.Tail(n) {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// Position returns where current sits within [low, high], clamped to 0.0~1.0.
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Context summarizes the latest bar against the previous one and the 52-week range.
func Context(s model.Series) (model.PriceContext, error) {
	var ctx model.PriceContext
	high, low, err := Range(s, TradingDays52w)
	if err != nil {
		return ctx, err
	}
	latest := s.Latest()
	ctx.LatestClose = latest.Close
	ctx.High52w, ctx.Low52w = high, low
	if ctx.Position52w, err = Position(latest.Close, high, low); err != nil {
		return ctx, err
	}
	if prev, ok := s.Ago(1); ok {
		if prev.Close != 0 {
			ctx.ChangePct = (latest.Close - prev.Close) / prev.Close * 100
		}
		if prev.Volume != 0 {
			ctx.VolumeChangePct = (latest.Volume - prev.Volume) / prev.Volume * 100
		}
	}
	return ctx, nil
}
