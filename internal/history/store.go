// Package history records applied themes in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"chromaflow/internal/colour"
)

const schema = `
CREATE TABLE IF NOT EXISTS applied_themes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	wallpaper TEXT NOT NULL,
	hex TEXT NOT NULL,
	hue INTEGER NOT NULL,
	saturation INTEGER NOT NULL,
	name TEXT NOT NULL,
	mode TEXT NOT NULL,
	applied_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applied_themes_applied_at ON applied_themes(applied_at);
`

// Entry is one recorded theme application.
type Entry struct {
	ID         int64
	Wallpaper  string
	Hex        string
	Hue        int
	Saturation int
	Name       string
	Mode       string
	AppliedAt  time.Time
}

// Params returns the entry's theme parameters.
func (e Entry) Params() colour.ThemeParams {
	return colour.ThemeParams{Hue: e.Hue, Saturation: e.Saturation}
}

// DefaultPath returns the history database location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(configDir, "chromaflow", "history.db"), nil
}

// Store persists applied themes.
type Store struct {
	db *sql.DB
}

// Open opens the history database at dbPath, creating it if needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := database.Exec(pragma); err != nil {
			database.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", pragma, err)
		}
	}

	if _, err := database.Exec(schema); err != nil {
		database.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: database}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one applied theme. A zero AppliedAt means now.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	appliedAt := entry.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applied_themes (wallpaper, hex, hue, saturation, name, mode, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Wallpaper, entry.Hex, entry.Hue, entry.Saturation, entry.Name, entry.Mode,
		appliedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record applied theme: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, wallpaper, hex, hue, saturation, name, mode, applied_at
		 FROM applied_themes
		 ORDER BY applied_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list applied themes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applied themes: %w", err)
	}

	return entries, nil
}

// ErrEmpty is returned by Last when no theme has been recorded yet.
var ErrEmpty = errors.New("no themes recorded")

// Last returns the most recently applied theme.
func (s *Store) Last(ctx context.Context) (Entry, error) {
	entries, err := s.List(ctx, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrEmpty
	}
	return entries[0], nil
}

// Clear removes all recorded entries and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM applied_themes")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return deleted, nil
}

// scanEntry reads one row into an Entry, parsing the stored timestamp.
func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var appliedAt string

	if err := rows.Scan(
		&entry.ID, &entry.Wallpaper, &entry.Hex, &entry.Hue,
		&entry.Saturation, &entry.Name, &entry.Mode, &appliedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan applied theme: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, appliedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse applied_at %q: %w", appliedAt, err)
	}
	entry.AppliedAt = parsed

	return entry, nil
}
