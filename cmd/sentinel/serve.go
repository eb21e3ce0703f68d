package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/scheduler"
	"SignalSentinel/internal/server"
	"SignalSentinel/internal/watchlist"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the daily watchlist job and Telegram commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(*cfgPath)
		},
	}
}

func serve(cfgPath string) error {
	log.Println("[INFO] SignalSentinel starting...")
	a, err := newApp(cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg

	seed := cfg.Watchlist.Symbols
	if len(seed) == 0 {
		seed = []string{cfg.DataSource.Symbol}
	}
	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, seed)
	if err != nil {
		return err
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.Enabled {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, a.svc, wl, sender)
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	srv, err := server.NewHTTPServer(server.HTTPConfig{
		Addr:    cfg.HTTP.Addr,
		Svc:     a.svc,
		Metrics: a.metrics.Handler(),
	})
	if err != nil {
		return err
	}

	log.Println("[INFO] SignalSentinel is running. Press Ctrl+C to stop.")
	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Println("[INFO] SignalSentinel stopped")
	return nil
}
