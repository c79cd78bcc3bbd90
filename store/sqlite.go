// Package store provides a SQLite-backed RunStore so the orchestrator's
// cache can outlive a single process or be shared, without changing any
// orchestrator logic.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storycraft/pipeline"
)

// SQLiteStore persists completed runs keyed by idea. Writes are
// INSERT OR REPLACE, matching the last-write-wins cache semantics; read or
// decode problems degrade to cache misses rather than surfacing errors,
// since the store is a best-effort cache and not durable storage.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			idea TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			stored_at TIMESTAMP NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate run store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(key string) (*pipeline.PipelineRun, bool) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM runs WHERE idea = ?`, key).Scan(&payload)
	if err != nil {
		return nil, false
	}
	var run pipeline.PipelineRun
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return nil, false
	}
	return &run, true
}

func (s *SQLiteStore) Put(key string, run *pipeline.PipelineRun) {
	payload, err := json.Marshal(run)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		`INSERT OR REPLACE INTO runs (idea, payload, stored_at) VALUES (?, ?, ?)`,
		key, string(payload), time.Now().UTC(),
	)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
