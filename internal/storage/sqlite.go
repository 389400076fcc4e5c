// Package storage persists the classification history log in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"imgsieve/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements service.History using SQLite.
type SQLiteHistory struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteHistory opens (creating if necessary) the history database at
// dbPath and runs migrations.
func NewSQLiteHistory(dbPath string) (*SQLiteHistory, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteHistory{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteHistory) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			image TEXT NOT NULL,
			label TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			action TEXT NOT NULL CHECK (action IN ('classify', 'undo')),
			recorded_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
		CREATE INDEX IF NOT EXISTS idx_history_recorded ON history(recorded_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}

// Append records one classify or undo commit.
func (s *SQLiteHistory) Append(ctx context.Context, entry *model.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (session_id, image, label, source, destination, action, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.SessionID, entry.Image, entry.Label, entry.Source, entry.Destination,
		string(entry.Action), entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteHistory) Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, image, label, source, destination, action, recorded_at
		FROM history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var action string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Image, &e.Label,
			&e.Source, &e.Destination, &action, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Action = model.HistoryAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Sessions returns the distinct session IDs present in the log, newest first.
func (s *SQLiteHistory) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id FROM history GROUP BY session_id ORDER BY MAX(id) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
