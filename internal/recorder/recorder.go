// Package recorder persists analysis runs for later review.
package recorder

import (
	"time"

	"SignalSentinel/internal/model"
)

// AnalysisRun holds everything produced by one analysis of one symbol.
type AnalysisRun struct {
	Result    *model.AnalysisResult
	Context   model.PriceContext
	Consensus *model.Consensus
	Provider  string
}

// RunSummary is one stored run with its per-family composite signals.
type RunSummary struct {
	ID          string                  `json:"id"`
	Symbol      string                  `json:"symbol"`
	AsOf        time.Time               `json:"as_of"`
	Provider    string                  `json:"provider"`
	LatestClose float64                 `json:"latest_close"`
	TotalScore  float64                 `json:"total_score"`
	TierLabel   string                  `json:"tier_label"`
	CreatedAt   time.Time               `json:"created_at"`
	Signals     map[model.Family]string `json:"signals"`
}

// Recorder persists historical data for analysis.
type Recorder interface {
	// RecordAnalysis stores a run and returns its id.
	RecordAnalysis(run *AnalysisRun) (string, error)
	// ListRuns returns the most recent runs for symbol, newest first.
	ListRuns(symbol string, limit int) ([]RunSummary, error)
	Close() error
}
