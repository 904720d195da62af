package clipboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Capture is a single clipboard snapshot taken by the monitor.
type Capture struct {
	Content string
	TakenAt time.Time
}

// Entry is a persisted history row.
type Entry struct {
	ID        int64
	Content   string
	CreatedAt time.Time
}

// Store manages clipboard history persistence backed by SQLite. History
// is bounded: inserts beyond the configured limit evict the oldest rows.
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

const defaultHistoryLimit = 100

// Open initializes or connects to the history database at path.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, limit: limit}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) applySchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        content TEXT NOT NULL,
        created_at TEXT NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert records a capture and trims history back to the configured
// limit. Re-copying the most recent entry is a no-op.
func (s *Store) Insert(ctx context.Context, capture Capture) error {
	if capture.Content == "" {
		return nil
	}

	var last sql.NullString
	row := s.db.QueryRowContext(ctx, `SELECT content FROM history ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&last); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read latest entry: %w", err)
	}
	if last.Valid && last.String == capture.Content {
		return nil
	}

	takenAt := capture.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO history (content, created_at) VALUES (?, ?)`,
		capture.Content,
		takenAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`,
		s.limit,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Recent returns up to count entries, newest first.
func (s *Store) Recent(ctx context.Context, count int) ([]Entry, error) {
	if count <= 0 || count > s.limit {
		count = s.limit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, content, created_at FROM history ORDER BY id DESC LIMIT ?`,
		count,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			createdRaw string
		)
		if err := rows.Scan(&entry.ID, &entry.Content, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			entry.CreatedAt = created
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes all history rows.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}
