// Package window derives the long/medium/short trailing views each indicator
// family analyzes.
package window

import (
	"errors"
	"fmt"

	"SignalSentinel/internal/model"
)

// ErrInsufficientData is matched by every InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports how many bars a family needed.
type InsufficientDataError struct {
	Family model.Family
	Have   int
	Need   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("数据不足，%s需要至少%d天的数据，当前%d天", e.Family, e.Need, e.Have)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// Spans are a family's nominal window lengths. Min is the fewest bars the
// family accepts before reporting insufficient data.
type Spans struct {
	Long   int `yaml:"long" toml:"long" json:"long"`
	Medium int `yaml:"medium" toml:"medium" json:"medium"`
	Short  int `yaml:"short" toml:"short" json:"short"`
	Min    int `yaml:"min" toml:"min" json:"min"`
}

// Config carries the window spans of every family.
type Config struct {
	MACD        Spans `yaml:"macd" toml:"macd" json:"macd"`
	KDJ         Spans `yaml:"kdj" toml:"kdj" json:"kdj"`
	RSI         Spans `yaml:"rsi" toml:"rsi" json:"rsi"`
	BOLL        Spans `yaml:"boll" toml:"boll" json:"boll"`
	MA          Spans `yaml:"ma" toml:"ma" json:"ma"`
	Candlestick Spans `yaml:"candlestick" toml:"candlestick" json:"candlestick"`
}

func oscillator() Spans {
	return Spans{Long: 40, Medium: 20, Short: 10, Min: 40}
}

// DefaultConfig returns the standard 40/20/10 oscillator spans and 250/60/20 MA spans.
func DefaultConfig() Config {
	return Config{
		MACD:        oscillator(),
		KDJ:         oscillator(),
		RSI:         oscillator(),
		BOLL:        oscillator(),
		MA:          Spans{Long: 250, Medium: 60, Short: 20, Min: 250},
		Candlestick: Spans{Long: 40, Medium: 20, Short: 10, Min: 5},
	}
}

// Of returns the spans configured for a family; unknown families get the
// oscillator defaults.
func (c Config) Of(f model.Family) Spans {
	switch f {
	case model.FamilyMACD:
		return c.MACD
	case model.FamilyKDJ:
		return c.KDJ
	case model.FamilyRSI:
		return c.RSI
	case model.FamilyBOLL:
		return c.BOLL
	case model.FamilyMA:
		return c.MA
	case model.FamilyCandlestick:
		return c.Candlestick
	}
	return oscillator()
}

// Normalize fills zero spans from the defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	c.MACD = c.MACD.orDefault(def.MACD)
	c.KDJ = c.KDJ.orDefault(def.KDJ)
	c.RSI = c.RSI.orDefault(def.RSI)
	c.BOLL = c.BOLL.orDefault(def.BOLL)
	c.MA = c.MA.orDefault(def.MA)
	c.Candlestick = c.Candlestick.orDefault(def.Candlestick)
	return c
}

func (s Spans) orDefault(def Spans) Spans {
	if s.Long <= 0 {
		s.Long = def.Long
	}
	if s.Medium <= 0 {
		s.Medium = def.Medium
	}
	if s.Short <= 0 {
		s.Short = def.Short
	}
	if s.Min <= 0 {
		s.Min = def.Min
	}
	return s
}

// Validate checks span ordering.
func (s Spans) Validate() error {
	if s.Short <= 0 || s.Medium <= 0 || s.Long <= 0 {
		return fmt.Errorf("spans must be positive")
	}
	if s.Long < s.Medium || s.Medium < s.Short {
		return fmt.Errorf("spans must satisfy long >= medium >= short, got %d/%d/%d", s.Long, s.Medium, s.Short)
	}
	if s.Min <= 0 {
		return fmt.Errorf("min must be positive")
	}
	return nil
}

// Validate checks every family's spans.
func (c Config) Validate() error {
	for _, fs := range []struct {
		name  model.Family
		spans Spans
	}{
		{model.FamilyMACD, c.MACD},
		{model.FamilyKDJ, c.KDJ},
		{model.FamilyRSI, c.RSI},
		{model.FamilyBOLL, c.BOLL},
		{model.FamilyMA, c.MA},
		{model.FamilyCandlestick, c.Candlestick},
	} {
		if err := fs.spans.Validate(); err != nil {
			return fmt.Errorf("analysis.%s: %w", fs.name, err)
		}
	}
	return nil
}

// Windows are trailing views over one series.
type Windows struct {
	Full   model.Series
	Long   model.Series
	Medium model.Series
	Short  model.Series
}

// Slice cuts the trailing windows for a family. It fails with an
// InsufficientDataError when the series is shorter than spans.Min.
func Slice(family model.Family, s model.Series, spans Spans) (Windows, error) {
	if len(s) < spans.Min {
		return Windows{}, &InsufficientDataError{Family: family, Have: len(s), Need: spans.Min}
	}
	return Windows{
		Full:   s,
		Long:   s.Tail(spans.Long),
		Medium: s.Tail(spans.Medium),
		Short:  s.Tail(spans.Short),
	}, nil
}

// Require returns an InsufficientDataError when s has fewer than n bars.
func Require(family model.Family, s model.Series, n int) error {
	if len(s) < n {
		return &InsufficientDataError{Family: family, Have: len(s), Need: n}
	}
	return nil
}
