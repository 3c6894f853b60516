// ABOUTME: SQLite settings store persisting one JSON value per setting key
// ABOUTME: Survives restarts; listeners see writes made through this store

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/infrastructure/settings"
)

const backend = "sqlite"

// Store implements the settings store on SQLite.
type Store struct {
	db        *sql.DB
	filePath  string
	listeners settings.Listeners
}

// NewStore opens (or creates) the database at filePath.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "linkoff.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Store{db: db, filePath: filePath}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// Get returns the stored values for keys; missing keys are omitted.
func (s *Store) Get(ctx context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		var raw string
		err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", k).Scan(&raw)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, &coreerrors.StoreError{Backend: backend, Op: "get", Err: err}
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, &coreerrors.StoreError{Backend: backend, Op: "decode " + k, Err: err}
		}
		out[k] = v
	}
	return out, nil
}

// Set writes values in one transaction and notifies listeners of the
// keys that changed.
func (s *Store) Set(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	current, err := s.Get(ctx, keys)
	if err != nil {
		return err
	}
	changes := settings.Diff(current, values)
	if len(changes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
	}
	for k, v := range changes {
		raw, err := json.Marshal(v)
		if err != nil {
			_ = tx.Rollback()
			return &coreerrors.StoreError{Backend: backend, Op: "encode " + k, Err: err}
		}
		if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", k, string(raw)); err != nil {
			_ = tx.Rollback()
			return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "commit", Err: err}
	}

	s.listeners.Notify(changes)
	return nil
}

// OnChanged registers fn for change notifications.
func (s *Store) OnChanged(fn func(map[string]any)) func() {
	return s.listeners.Add(fn)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
