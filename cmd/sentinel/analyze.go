package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/console"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/report"
	"SignalSentinel/internal/watchlist"
)

func newAnalyzeCmd(cfgPath *string) *cobra.Command {
	var chartPath string
	var withReport bool
	cmd := &cobra.Command{
		Use:     "analyze <symbol>",
		Short:   "Analyze one symbol and print the signal tables",
		Example: "  sentinel analyze 600519.SH\n  sentinel analyze 000001.SZ --chart out.html --report",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
			defer cancel()

			symbol := watchlist.Normalize(args[0])
			rep, err := a.svc.Run(ctx, symbol)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := console.Render(out, rep.Context, rep.Result, rep.Consensus); err != nil {
				return err
			}

			if chartPath != "" {
				if err := writeChart(chartPath, symbol, rep.Bars); err != nil {
					return err
				}
				log.Printf("[INFO] chart written to %s", chartPath)
			}

			if withReport {
				gen := report.NewGenerator(a.cfg.Report.APIKey, a.cfg.Report.BaseURL, a.cfg.Report.Model)
				text, err := gen.Generate(ctx, report.BuildPrompt(symbol, rep.Context, rep.Result, rep.Consensus))
				if err != nil {
					return fmt.Errorf("generate report: %w", err)
				}
				fmt.Fprintf(out, "\n%s\n", text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "also write an HTML chart to this file")
	cmd.Flags().BoolVar(&withReport, "report", false, "generate a narrative report with the configured model")
	return cmd
}

func newChartCmd(cfgPath *string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "chart <symbol>",
		Short: "Render candles and indicators to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			symbol := watchlist.Normalize(args[0])
			ps, err := a.svc.Series(cmd.Context(), symbol)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = symbol + ".html"
			}
			if err := writeChart(outPath, symbol, ps.Bars); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <symbol>.html)")
	return cmd
}

func writeChart(path, symbol string, bars model.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := chart.Render(f, symbol, bars); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
