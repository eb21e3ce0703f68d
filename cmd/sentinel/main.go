package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"SignalSentinel/internal/analysis"
	"SignalSentinel/internal/cache"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	root := &cobra.Command{
		Use:           "sentinel",
		Short:         "Multi-indicator technical signal analysis for daily bars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", cfgPath, "config file (YAML or .toml)")

	root.AddCommand(
		newServeCmd(&cfgPath),
		newAnalyzeCmd(&cfgPath),
		newChartCmd(&cfgPath),
	)
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

// app holds the wired pipeline shared by all commands.
type app struct {
	cfg     *config.Config
	svc     *service.Service
	metrics *metrics.Metrics
	closers []func() error
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	a := &app{cfg: cfg, metrics: m}

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays)
	col.Observer = m
	if cfg.DataSource.FallbackMock && fetcher.Name() != "mock" {
		col.Fallback = &collector.MockFetcher{}
	}

	eng, err := analysis.New(analysis.Options{Config: cfg.Analysis, Observer: m})
	if err != nil {
		return nil, err
	}

	svc := service.New(col, eng)
	svc.Runs = m
	svc.CacheTTL = cfg.Redis.TTL

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			svc.Recorder = sr
			a.closers = append(a.closers, sr.Close)
		}
	}

	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[WARN] init redis cache failed, caching disabled: %v", err)
		} else {
			svc.Cache = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	a.svc = svc
	return a, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "tushare":
		return collector.NewTushareFetcher(cfg.DataSource.Token, cfg.Proxy)
	case "mock":
		return &collector.MockFetcher{}
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[WARN] close: %v", err)
		}
	}
}
