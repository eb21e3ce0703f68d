package candlestick

import (
	"math"

	"SignalSentinel/internal/model"
)

func isDoji(c candle) bool {
	return c.body <= c.span*0.1 && c.upper > c.body && c.lower > c.body
}

func isLongLeggedDoji(c candle) bool {
	return c.body <= c.span*0.1 && c.upper >= c.span*0.3 && c.lower >= c.span*0.3
}

func isGravestoneDoji(c candle) bool {
	return c.body <= c.span*0.1 && c.upper >= c.span*0.6 && c.lower <= c.span*0.1
}

func isSpinningTop(c candle) bool {
	return c.body <= c.span*0.3 && c.upper >= c.body && c.lower >= c.body &&
		math.Abs(c.upper-c.lower) <= c.span*0.1
}

// hammerShadowRatio bounds the short shadow and the minimum body of hammer
// shapes as a share of the bar's range. It is range-relative, not
// body-relative: upper_shadow <= body*0.1 would reject a hammer with a 1.0
// body and a 0.2 upper wick, which this bound accepts.
const hammerShadowRatio = 0.1

// longLower: lower shadow at least twice the body, body at least 10% of the
// range, and an upper shadow no longer than 10% of the range.
func longLower(c candle) bool {
	return c.lower >= c.body*2 && c.upper <= c.span*hammerShadowRatio && c.body >= c.span*hammerShadowRatio
}

func longUpper(c candle) bool {
	return c.upper >= c.body*2 && c.lower <= c.span*hammerShadowRatio && c.body >= c.span*hammerShadowRatio
}

func isHangingMan(c candle) bool { return longLower(c) && c.bearish() }

// IsDoji: body at most 10% of the range and both shadows longer than the body.
func IsDoji(b model.Bar) bool { return isDoji(newCandle(b)) }

// IsLongLeggedDoji: doji-sized body with both shadows at least 30% of the range.
func IsLongLeggedDoji(b model.Bar) bool { return isLongLeggedDoji(newCandle(b)) }

// IsGravestoneDoji: doji-sized body, upper shadow at least 60% of the range,
// lower shadow at most 10%.
func IsGravestoneDoji(b model.Bar) bool { return isGravestoneDoji(newCandle(b)) }

// IsSpinningTop: body at most 30% of the range, both shadows at least the body
// and within 10% of the range of each other.
func IsSpinningTop(b model.Bar) bool { return isSpinningTop(newCandle(b)) }

// IsHammer: long lower shadow under a small body near the high.
func IsHammer(b model.Bar) bool { return longLower(newCandle(b)) }

// IsInvertedHammer: long upper shadow over a small body near the low.
func IsInvertedHammer(b model.Bar) bool { return longUpper(newCandle(b)) }

// IsHangingMan is the hammer shape on a bearish bar.
func IsHangingMan(b model.Bar) bool { return isHangingMan(newCandle(b)) }

// IsShootingStar shares the inverted-hammer geometry.
func IsShootingStar(b model.Bar) bool { return longUpper(newCandle(b)) }
