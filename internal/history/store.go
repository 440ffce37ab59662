// Package history provides SQLite-backed persistence of task runs so a
// host restart can show what was asked and how it ended.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// TaskRun is one recorded task.
type TaskRun struct {
	ID         string `json:"id"`
	Prompt     string `json:"prompt"`
	Outcome    string `json:"outcome"` // empty while running
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
}

// Store persists task runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []func(*sql.DB) error{
		migrateV1,
	}
	for i := version; i < len(migrations); i++ {
		slog.Info("applying history migration", "version", i+1)
		if err := migrations[i](s.db); err != nil {
			return fmt.Errorf("migration v%d: %w", i+1, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("record migration v%d: %w", i+1, err)
		}
	}
	return nil
}

func migrateV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS task_runs (
			id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// TaskStarted records the beginning of a run. Implements host.TaskRecorder.
func (s *Store) TaskStarted(id, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO task_runs (id, prompt, started_at) VALUES (?, ?, ?)",
		id, prompt, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert task run: %w", err)
	}
	return nil
}

// TaskFinished records the outcome of a run. Implements host.TaskRecorder.
func (s *Store) TaskFinished(id, outcome string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"UPDATE task_runs SET outcome = ?, finished_at = ? WHERE id = ?",
		outcome, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("finish task run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]TaskRun, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		"SELECT id, prompt, outcome, started_at, finished_at FROM task_runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query task runs: %w", err)
	}
	defer rows.Close()

	var runs []TaskRun
	for rows.Next() {
		var run TaskRun
		if err := rows.Scan(&run.ID, &run.Prompt, &run.Outcome, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan task run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
