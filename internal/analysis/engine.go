// Package analysis runs the per-family analyzers over one series and merges
// their results.
package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"SignalSentinel/internal/analysis/boll"
	"SignalSentinel/internal/analysis/candlestick"
	"SignalSentinel/internal/analysis/kdj"
	"SignalSentinel/internal/analysis/ma"
	"SignalSentinel/internal/analysis/macd"
	"SignalSentinel/internal/analysis/rsi"
	"SignalSentinel/internal/analysis/window"
	"SignalSentinel/internal/model"
)

// Analyzer classifies one family over a series.
type Analyzer func(s model.Series, spans window.Spans) (model.IndicatorResult, error)

// Observer receives per-family timings. err is nil on success.
type Observer interface {
	ObserveAnalyzer(family model.Family, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveAnalyzer(model.Family, time.Duration, error) {}

// DefaultAnalyzers maps every family to its analyzer.
func DefaultAnalyzers() map[model.Family]Analyzer {
	return map[model.Family]Analyzer{
		model.FamilyCandlestick: candlestick.Analyze,
		model.FamilyMA:          ma.Analyze,
		model.FamilyMACD:        macd.Analyze,
		model.FamilyKDJ:         kdj.Analyze,
		model.FamilyRSI:         rsi.Analyze,
		model.FamilyBOLL:        boll.Analyze,
	}
}

type Options struct {
	Config   window.Config
	Observer Observer
	// Analyzers replaces individual family analyzers; missing entries use the defaults.
	Analyzers map[model.Family]Analyzer
}

// Engine is safe for concurrent use; it holds no per-call state.
type Engine struct {
	cfg       window.Config
	observer  Observer
	analyzers map[model.Family]Analyzer
}

// New validates the window config and builds an Engine.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	analyzers := DefaultAnalyzers()
	for f, a := range opts.Analyzers {
		if a != nil {
			analyzers[f] = a
		}
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &Engine{cfg: cfg, observer: obs, analyzers: analyzers}, nil
}

// Config returns the normalized window config.
func (e *Engine) Config() window.Config { return e.cfg }

// Analyze runs all six families in parallel. A family that fails or panics
// yields an Unavailable entry; only a cancelled ctx fails the whole call.
func (e *Engine) Analyze(ctx context.Context, symbol string, s model.Series) (*model.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slots := make([]model.IndicatorResult, len(model.Families))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range model.Families {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			slots[i] = e.run(f, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &model.AnalysisResult{
		Symbol:  symbol,
		Results: make(map[model.Family]model.IndicatorResult, len(slots)),
	}
	if len(s) > 0 {
		out.AsOf = s.Latest().Time
	}
	for i, f := range model.Families {
		out.Results[f] = slots[i]
	}
	return out, nil
}

func (e *Engine) run(f model.Family, s model.Series) (res model.IndicatorResult) {
	start := time.Now()
	var err error
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[WARN] %s analyzer panicked: %v", f, p)
			err = fmt.Errorf("%s analyzer panic: %v", f, p)
			res = model.NewUnavailable(fmt.Sprintf("%s分析失败: %v", f, p))
		}
		e.observer.ObserveAnalyzer(f, time.Since(start), err)
	}()

	a, ok := e.analyzers[f]
	if !ok {
		err = fmt.Errorf("no analyzer for %s", f)
		return model.NewUnavailable(err.Error())
	}
	res, err = a(s, e.cfg.Of(f))
	if err != nil {
		return model.NewUnavailable(err.Error())
	}
	return res
}
