// Package stats keeps per-command execution statistics for one session in
// an in-memory SQLite database. Nothing outlives the process.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/ports"
)

// SQLiteStore aggregates command timings in a private in-memory database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens a fresh in-memory database.
func NewSQLiteStore(ctx context.Context) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open stats database: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)
	store := &SQLiteStore{db: db}
	if err := store.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS command_stats (
		name TEXT PRIMARY KEY,
		calls INTEGER NOT NULL DEFAULT 0,
		failures INTEGER NOT NULL DEFAULT 0,
		total_ns INTEGER NOT NULL DEFAULT 0,
		last_ns INTEGER NOT NULL DEFAULT 0,
		last_kind TEXT NOT NULL DEFAULT ''
	);`)
	if err != nil {
		return fmt.Errorf("create stats table: %w", err)
	}
	return nil
}

// Record adds one execution of name.
func (s *SQLiteStore) Record(ctx context.Context, name string, elapsed time.Duration, result domain.ErrorKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	failed := 0
	if !result.OK() {
		failed = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO command_stats (name, calls, failures, total_ns, last_ns, last_kind)
		VALUES (?, 1, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			calls = calls + 1,
			failures = failures + excluded.failures,
			total_ns = total_ns + excluded.total_ns,
			last_ns = excluded.last_ns,
			last_kind = excluded.last_kind`,
		name, failed, elapsed.Nanoseconds(), elapsed.Nanoseconds(), result.String(),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return nil
}

// Summary returns every command ordered by call count, busiest first.
func (s *SQLiteStore) Summary(ctx context.Context) (domain.StatsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, calls, failures, total_ns, last_ns FROM command_stats ORDER BY calls DESC, name ASC`)
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var summary domain.StatsSummary
	for rows.Next() {
		var c domain.CommandStats
		var total, last int64
		if err := rows.Scan(&c.Name, &c.Calls, &c.Failures, &total, &last); err != nil {
			return domain.StatsSummary{}, fmt.Errorf("scan stats: %w", err)
		}
		c.Total = time.Duration(total)
		c.Last = time.Duration(last)
		if c.Calls > 0 {
			c.Average = c.Total / time.Duration(c.Calls)
		}
		summary.TotalCommands += c.Calls
		summary.Commands = append(summary.Commands, c)
	}
	if err := rows.Err(); err != nil {
		return domain.StatsSummary{}, fmt.Errorf("iterate stats: %w", err)
	}
	return summary, nil
}

// Reset drops all recorded statistics.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM command_stats"); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.StatsRecorder = (*SQLiteStore)(nil)
