// Package service runs the full per-symbol pipeline shared by the HTTP API,
// the scheduler and the command line: collect, analyze, score, record.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/cache"
	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/strategy"
)

// RunObserver counts pipeline outcomes.
type RunObserver interface {
	RunCompleted(status string)
}

// Run outcomes reported to RunObserver.
const (
	RunOK     = "ok"
	RunCached = "cached"
	RunFailed = "failed"
)

// Report is the output of one pipeline run.
type Report struct {
	Symbol    string                `json:"symbol"`
	Provider  string                `json:"provider"`
	RunID     string                `json:"run_id,omitempty"`
	Context   model.PriceContext    `json:"context"`
	Result    *model.AnalysisResult `json:"analysis"`
	Consensus *model.Consensus      `json:"consensus"`
	Bars      model.Series          `json:"-"`
}

// Service wires the pipeline stages. Recorder, Cache and Runs are optional.
type Service struct {
	Collector *collector.Collector
	Engine    *analysis.Engine
	Recorder  recorder.Recorder
	Cache     cache.Cache
	CacheTTL  time.Duration
	Runs      RunObserver

	now func() time.Time
}

func New(col *collector.Collector, eng *analysis.Engine) *Service {
	return &Service{
		Collector: col,
		Engine:    eng,
		Recorder:  recorder.NewNoopRecorder(),
		Cache:     cache.NoopCache{},
		now:       time.Now,
	}
}

func (s *Service) observe(status string) {
	if s.Runs != nil {
		s.Runs.RunCompleted(status)
	}
}

// Series fetches and enriches a symbol's bars without analyzing them.
func (s *Service) Series(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	return s.Collector.Collect(ctx, symbol)
}

// Run executes the pipeline for symbol and records the outcome. A recorder
// failure is logged and does not fail the run.
func (s *Service) Run(ctx context.Context, symbol string) (*Report, error) {
	ps, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		s.observe(RunFailed)
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}

	res, err := s.Engine.Analyze(ctx, symbol, ps.Bars)
	if err != nil {
		s.observe(RunFailed)
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	pc, err := calculator.Context(ps.Bars)
	if err != nil {
		s.observe(RunFailed)
		return nil, fmt.Errorf("price context %s: %w", symbol, err)
	}

	rep := &Report{
		Symbol:    symbol,
		Provider:  ps.Provider,
		Context:   pc,
		Result:    res,
		Consensus: strategy.Evaluate(res),
		Bars:      ps.Bars,
	}

	if s.Recorder != nil {
		id, err := s.Recorder.RecordAnalysis(&recorder.AnalysisRun{
			Result:    res,
			Context:   pc,
			Consensus: rep.Consensus,
			Provider:  ps.Provider,
		})
		if err != nil {
			log.Printf("[ERROR] record analysis for %s: %v", symbol, err)
		}
		rep.RunID = id
	}

	s.observe(RunOK)
	return rep, nil
}

// Snapshot returns the JSON encoding of today's Report for symbol, serving it
// from the cache when present. cached reports whether the cache answered.
func (s *Service) Snapshot(ctx context.Context, symbol string) (body []byte, cached bool, err error) {
	key := cache.Key(symbol, s.now())
	if s.Cache != nil {
		v, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("[WARN] cache get %s: %v", key, err)
		} else if ok {
			s.observe(RunCached)
			return v, true, nil
		}
	}

	rep, err := s.Run(ctx, symbol)
	if err != nil {
		return nil, false, err
	}
	body, err = json.Marshal(rep)
	if err != nil {
		return nil, false, fmt.Errorf("encode report: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, body, s.CacheTTL); err != nil {
			log.Printf("[WARN] cache set %s: %v", key, err)
		}
	}
	return body, false, nil
}

// History lists the most recent recorded runs for symbol.
func (s *Service) History(symbol string, limit int) ([]recorder.RunSummary, error) {
	if s.Recorder == nil {
		return nil, nil
	}
	return s.Recorder.ListRuns(symbol, limit)
}
