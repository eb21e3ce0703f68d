package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"SignalSentinel/internal/model"
)

const asOfLayout = "2006-01-02"

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           TEXT PRIMARY KEY,
			symbol       TEXT NOT NULL,
			as_of        TEXT NOT NULL,
			provider     TEXT,
			latest_close REAL,
			change_pct   REAL,
			position_52w REAL,
			total_score  REAL,
			tier_label   TEXT,
			warning      TEXT,
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, created_at)`,

		`CREATE TABLE IF NOT EXISTS indicator_signals (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL REFERENCES analysis_runs(id),
			family    TEXT NOT NULL,
			available INTEGER NOT NULL,
			signal    TEXT,
			payload   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON indicator_signals(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(run *AnalysisRun) (string, error) {
	if run == nil || run.Result == nil {
		return "", fmt.Errorf("record analysis: empty run")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	res := run.Result
	var score float64
	var tier, warning string
	if c := run.Consensus; c != nil {
		score, tier, warning = c.TotalScore, c.Tier.Label, c.WarningMsg
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analysis_runs
		(id, symbol, as_of, provider, latest_close, change_pct, position_52w,
		 total_score, tier_label, warning, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id, res.Symbol, res.AsOf.Format(asOfLayout), run.Provider,
		run.Context.LatestClose, run.Context.ChangePct, run.Context.Position52w,
		score, tier, warning, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, f := range model.Families {
		ir := res.Get(f)
		payload, err := json.Marshal(ir)
		if err != nil {
			return "", fmt.Errorf("marshal %s: %w", f, err)
		}
		_, err = tx.Exec(`INSERT INTO indicator_signals
			(run_id, family, available, signal, payload)
			VALUES (?,?,?,?,?)`,
			id, string(f), ir.Available(), ir.Composite(), string(payload),
		)
		if err != nil {
			return "", fmt.Errorf("insert %s signal: %w", f, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLiteRecorder) ListRuns(symbol string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT id, symbol, as_of, provider, latest_close, total_score, tier_label, created_at
		FROM analysis_runs WHERE symbol = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		var asOf string
		var created int64
		if err := rows.Scan(&s.ID, &s.Symbol, &asOf, &s.Provider, &s.LatestClose, &s.TotalScore, &s.TierLabel, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.AsOf, _ = time.Parse(asOfLayout, asOf)
		s.CreatedAt = time.Unix(0, created)
		runs = append(runs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].Signals, err = r.signals(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *SQLiteRecorder) signals(runID string) (map[model.Family]string, error) {
	rows, err := r.db.Query(`SELECT family, signal FROM indicator_signals WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	out := make(map[model.Family]string)
	for rows.Next() {
		var family, signal string
		if err := rows.Scan(&family, &signal); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		out[model.Family(family)] = signal
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
