package candlestick

// Polarity is a pattern's directional bias.
type Polarity int

const (
	Neutral Polarity = iota
	Bullish
	Bearish
)

func (p Polarity) String() string {
	switch p {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Pattern is one registered candlestick formation over Days bars.
type Pattern struct {
	Name     string
	Days     int
	Priority int
	Polarity Polarity
	match    func(d []candle) bool
}

// GroupLabel names a day-count group.
func GroupLabel(days int) string {
	switch days {
	case 1:
		return "今日形态"
	case 2:
		return "两日形态"
	case 3:
		return "三日形态"
	case 4:
		return "四日形态"
	case 5:
		return "五日形态"
	}
	return ""
}

func one(f func(candle) bool) func([]candle) bool {
	return func(d []candle) bool { return f(d[0]) }
}

func two(f func(d1, d2 candle) bool) func([]candle) bool {
	return func(d []candle) bool { return f(d[0], d[1]) }
}

// Registry lists every pattern. Within a day group, listing order breaks
// priority ties.
var Registry = []Pattern{
	{Name: "十字星", Days: 1, Polarity: Neutral, match: one(isDoji)},
	{Name: "长腿十字星", Days: 1, Polarity: Neutral, match: one(isLongLeggedDoji)},
	{Name: "墓碑十字星", Days: 1, Polarity: Bearish, match: one(isGravestoneDoji)},
	{Name: "纺锤线", Days: 1, Polarity: Neutral, match: one(isSpinningTop)},
	{Name: "锤子线", Days: 1, Polarity: Bullish, match: one(longLower)},
	{Name: "倒锤子线", Days: 1, Polarity: Bullish, match: one(longUpper)},
	{Name: "吊颈线", Days: 1, Polarity: Bearish, match: one(isHangingMan)},
	{Name: "流星线", Days: 1, Polarity: Bearish, match: one(longUpper)},

	{Name: "看涨吞没形态", Days: 2, Priority: 5, Polarity: Bullish, match: two(bullishEngulfing)},
	{Name: "看跌吞没形态", Days: 2, Priority: 5, Polarity: Bearish, match: two(bearishEngulfing)},
	{Name: "看涨孕线形态", Days: 2, Priority: 4, Polarity: Bullish, match: two(bullishHarami)},
	{Name: "看跌孕线形态", Days: 2, Priority: 4, Polarity: Bearish, match: two(bearishHarami)},
	{Name: "刺透形态", Days: 2, Priority: 4, Polarity: Bullish, match: two(piercingLine)},
	{Name: "乌云盖顶形态", Days: 2, Priority: 4, Polarity: Bearish, match: two(darkCloudCover)},
	{Name: "镊子底形态", Days: 2, Priority: 3, Polarity: Bullish, match: two(tweezerBottom)},
	{Name: "镊子顶形态", Days: 2, Priority: 3, Polarity: Bearish, match: two(tweezerTop)},
	{Name: "向上跳空缺口", Days: 2, Priority: 3, Polarity: Bullish, match: two(gapUp)},
	{Name: "向下跳空缺口", Days: 2, Priority: 3, Polarity: Bearish, match: two(gapDown)},
	{Name: "平头顶形态", Days: 2, Priority: 2, Polarity: Bearish, match: two(flatTop)},
	{Name: "平头底形态", Days: 2, Priority: 2, Polarity: Bullish, match: two(flatBottom)},

	{Name: "启明星形态", Days: 3, Priority: 5, Polarity: Bullish, match: morningStar},
	{Name: "黄昏星形态", Days: 3, Priority: 5, Polarity: Bearish, match: eveningStar},
	{Name: "三白兵形态", Days: 3, Priority: 4, Polarity: Bullish, match: threeWhiteSoldiers},
	{Name: "三黑鸦形态", Days: 3, Priority: 4, Polarity: Bearish, match: threeBlackCrows},
	{Name: "看涨三内形态", Days: 3, Priority: 3, Polarity: Bullish, match: threeInsideUp},
	{Name: "看跌三内形态", Days: 3, Priority: 3, Polarity: Bearish, match: threeInsideDown},
	{Name: "看涨三外形态", Days: 3, Priority: 3, Polarity: Bullish, match: threeOutsideUp},
	{Name: "看跌三外形态", Days: 3, Priority: 3, Polarity: Bearish, match: threeOutsideDown},
	{Name: "三山形态", Days: 3, Priority: 4, Polarity: Bearish, match: threeMountains},
	{Name: "三川形态", Days: 3, Priority: 4, Polarity: Bullish, match: threeRivers},
	{Name: "三星形态", Days: 3, Priority: 3, Polarity: Bullish, match: threeStars},
	{Name: "看涨岛型反转", Days: 3, Priority: 5, Polarity: Bullish, match: islandUp},
	{Name: "看跌岛型反转", Days: 3, Priority: 5, Polarity: Bearish, match: islandDown},

	{Name: "看涨三线打击形态", Days: 4, Priority: 4, Polarity: Bullish, match: threeLineStrikeBull},
	{Name: "看跌三线打击形态", Days: 4, Priority: 4, Polarity: Bearish, match: threeLineStrikeBear},

	{Name: "上升三法形态", Days: 5, Priority: 5, Polarity: Bullish, match: risingThreeMethods},
	{Name: "下降三法形态", Days: 5, Priority: 5, Polarity: Bearish, match: fallingThreeMethods},
}
