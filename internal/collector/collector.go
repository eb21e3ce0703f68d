// Package collector fetches daily bars from a data provider and turns them
// into an analyzable series.
package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// Observer receives fetch timings. err is nil on success.
type Observer interface {
	ObserveFetch(provider string, elapsed time.Duration, err error)
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher     Fetcher
	Fallback    Fetcher // used when Fetcher fails; nil disables fallback
	HistoryDays int
	Observer    Observer
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays}
}

// Collect fetches bars for symbol, sorts them ascending, drops duplicate
// dates, fills missing indicator columns and trims the warmup period.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	provider := c.Fetcher
	bars, err := c.fetch(ctx, provider, symbol)
	if err != nil && c.Fallback != nil {
		log.Printf("[WARN] %s fetch for %s failed: %v, falling back to %s", provider.Name(), symbol, err, c.Fallback.Name())
		provider = c.Fallback
		bars, err = c.fetch(ctx, provider, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	series := calculator.TrimWarmup(calculator.Enrich(Normalize(bars)))
	if len(series) == 0 {
		return nil, fmt.Errorf("no usable bars for %s from %s", symbol, provider.Name())
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Provider:  provider.Name(),
		Bars:      series,
		FetchedAt: time.Now(),
	}, nil
}

func (c *Collector) fetch(ctx context.Context, f Fetcher, symbol string) (model.Series, error) {
	start := time.Now()
	bars, err := f.FetchDailyBars(ctx, symbol, c.HistoryDays)
	if err == nil && len(bars) == 0 {
		err = fmt.Errorf("%s returned no bars for %s", f.Name(), symbol)
	}
	if c.Observer != nil {
		c.Observer.ObserveFetch(f.Name(), time.Since(start), err)
	}
	return bars, err
}

// Normalize returns bars sorted by date with later duplicates of a date
// replacing earlier ones.
func Normalize(bars model.Series) model.Series {
	out := make(model.Series, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	uniq := out[:0]
	for _, b := range out {
		if n := len(uniq); n > 0 && uniq[n-1].Time.Equal(b.Time) {
			uniq[n-1] = b
			continue
		}
		uniq = append(uniq, b)
	}
	return uniq
}
