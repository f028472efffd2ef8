// Package storage records autopilot runs and their per-tick decisions in
// SQLite. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run traces.
type Store struct {
	db *sql.DB
}

// Run is one recorded autopilot game.
type Run struct {
	ID          string
	GameID      string
	Seed        int64
	Cols        int
	Rows        int
	Ticks       int
	FinalLength int
	EndReason   string // Empty while the run is in progress
	CreatedAt   time.Time
}

// DecisionRecord is one autopilot move within a run.
type DecisionRecord struct {
	Tick      int
	HeadCol   int
	HeadRow   int
	FoodCol   int
	FoodRow   int
	Direction string
	Source    string
	PathLen   int
	Expanded  int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; concurrent runners queue on the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			grid_cols INTEGER NOT NULL,
			grid_rows INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			final_length INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS decisions (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			head_col INTEGER NOT NULL,
			head_row INTEGER NOT NULL,
			food_col INTEGER NOT NULL,
			food_row INTEGER NOT NULL,
			direction TEXT NOT NULL,
			source TEXT NOT NULL,
			path_len INTEGER NOT NULL,
			expanded INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun inserts a run and returns its ID. A random UUID is assigned
// when r.ID is empty.
func (s *Store) CreateRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, game_id, seed, grid_cols, grid_rows, ticks, final_length, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Seed, r.Cols, r.Rows, r.Ticks, r.FinalLength, r.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create run: %w", err)
	}
	return r.ID, nil
}

// FinishRun stores the outcome of a run.
func (s *Store) FinishRun(ctx context.Context, id string, ticks, finalLength int, endReason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET ticks = ?, final_length = ?, end_reason = ? WHERE id = ?`,
		ticks, finalLength, endReason, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %s not found", id)
	}
	return nil
}

// SaveDecisions appends decision records to a run in one transaction.
func (s *Store) SaveDecisions(ctx context.Context, runID string, records []DecisionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO decisions
		 (run_id, tick, head_col, head_row, food_col, food_row, direction, source, path_len, expanded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, d.Tick, d.HeadCol, d.HeadRow, d.FoodCol, d.FoodRow,
			d.Direction, d.Source, d.PathLen, d.Expanded,
		); err != nil {
			return fmt.Errorf("storage: cannot save decision at tick %d: %w", d.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit decisions: %w", err)
	}
	return nil
}

// RunByID retrieves a run by its ID. Returns nil, nil when it does not exist.
func (s *Store) RunByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, game_id, seed, grid_cols, grid_rows, ticks, final_length, end_reason, created_at
		 FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, seed, grid_cols, grid_rows, ticks, final_length, end_reason, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Decisions retrieves the decisions of a run in tick order.
func (s *Store) Decisions(ctx context.Context, runID string) ([]DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, head_col, head_row, food_col, food_row, direction, source, path_len, expanded
		 FROM decisions
		 WHERE run_id = ?
		 ORDER BY tick`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query decisions: %w", err)
	}
	defer rows.Close()

	var records []DecisionRecord
	for rows.Next() {
		var d DecisionRecord
		if err := rows.Scan(&d.Tick, &d.HeadCol, &d.HeadRow, &d.FoodCol, &d.FoodRow,
			&d.Direction, &d.Source, &d.PathLen, &d.Expanded); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RunStats contains aggregated decision statistics for a run.
type RunStats struct {
	RunID       string
	Decisions   int
	BySource    map[string]int
	AvgExpanded float64
}

// GetRunStats aggregates the decisions of a run by source.
func (s *Store) GetRunStats(ctx context.Context, runID string) (*RunStats, error) {
	stats := &RunStats{RunID: runID, BySource: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(expanded), 0) FROM decisions WHERE run_id = ?`,
		runID,
	).Scan(&stats.Decisions, &stats.AvgExpanded)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM decisions WHERE run_id = ? GROUP BY source`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get source counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.BySource[source] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs and their decisions.
func (s *Store) ClearRuns(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM decisions"); err != nil {
		return fmt.Errorf("storage: cannot clear decisions: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.Seed, &r.Cols, &r.Rows, &r.Ticks,
		&r.FinalLength, &r.EndReason, &createdAt); err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
