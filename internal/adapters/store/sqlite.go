// Package store persists consolidated analysis results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS requirements (
    id          TEXT PRIMARY KEY,
    text        TEXT NOT NULL,
    context     TEXT NOT NULL DEFAULT '',
    result_json TEXT NOT NULL
);
`

// SQLiteStore implements core.ResultStore with SQLite storage.
type SQLiteStore struct {
	dbPath string
	db     *sql.DB
	mu     sync.RWMutex
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	// WAL keeps readers from blocking the single writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("creating schema: %w", err), closeErr)
	}

	return &SQLiteStore{dbPath: dbPath, db: db}, nil
}

// Save upserts a result keyed by requirement id.
func (s *SQLiteStore) Save(ctx context.Context, res core.StoredResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requirements (id, text, context, result_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			context = excluded.context,
			result_json = excluded.result_json
	`, res.ID, res.Text, res.Context, string(res.Result))
	if err != nil {
		return core.ErrPersistence("save", fmt.Sprintf("saving requirement %s", res.ID)).WithCause(err)
	}
	return nil
}

// Get returns a single stored result.
func (s *SQLiteStore) Get(ctx context.Context, id string) (core.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res core.StoredResult
	var resultJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, text, context, result_json FROM requirements WHERE id = ?", id,
	).Scan(&res.ID, &res.Text, &res.Context, &resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return core.StoredResult{}, core.ErrNotFound("requirement", fmt.Sprintf("requirement %s not stored", id))
	}
	if err != nil {
		return core.StoredResult{}, core.ErrPersistence("get", fmt.Sprintf("loading requirement %s", id)).WithCause(err)
	}
	res.Result = []byte(resultJSON)
	return res, nil
}

// LoadAll returns every stored result, ordered by id.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]core.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, context, result_json FROM requirements ORDER BY id")
	if err != nil {
		return nil, core.ErrPersistence("load_all", "loading stored requirements").WithCause(err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.StoredResult
	for rows.Next() {
		var res core.StoredResult
		var resultJSON string
		if err := rows.Scan(&res.ID, &res.Text, &res.Context, &resultJSON); err != nil {
			return nil, core.ErrPersistence("scan", "reading stored requirement").WithCause(err)
		}
		res.Result = []byte(resultJSON)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrPersistence("iterate", "iterating stored requirements").WithCause(err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ core.ResultStore = (*SQLiteStore)(nil)
