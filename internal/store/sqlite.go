package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/JesperIV/TasX/internal/model"
)

// TasksKey is the fixed slot key under which the task collection is stored.
// The value is carried over from earlier releases so existing data loads.
const TasksKey = "TASKS_STORAGE_KEY"

// envelopeVersion is the current persisted payload version.
const envelopeVersion = 1

// tasksEnvelope is the versioned on-disk payload. Earlier releases stored a
// bare JSON array; LoadTasks still accepts that shape.
type tasksEnvelope struct {
	Version int          `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// Gateway is the persistence interface for the task collection: a durable
// round-trip of the full collection through a single slot.
type Gateway interface {
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadTasks(ctx context.Context) ([]model.Task, error)
}

// SQLiteStore implements Gateway on a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveTasks serializes the full collection into the versioned envelope and
// writes it to the task slot, overwriting any prior value.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	env := tasksEnvelope{Version: envelopeVersion, Tasks: tasks}
	if env.Tasks == nil {
		env.Tasks = []model.Task{}
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling task collection: %w", err)
	}

	const query = `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, TasksKey, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("writing task slot: %w", err)
	}

	return nil
}

// LoadTasks reads the task slot. A missing slot or an unreadable payload
// yields an empty collection, never an error: a parse failure means the
// stored data is unusable and the caller starts fresh. Only I/O-level
// failures are reported.
func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, "SELECT value FROM slots WHERE key = ?", TasksKey)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading task slot: %w", err)
	}

	tasks := decodeTasks(payload)
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks, nil
}

// decodeTasks parses a stored payload in any shape this app has ever
// written: the current versioned envelope, or the legacy bare array from
// before versioning. Anything else loads as empty.
func decodeTasks(payload string) []model.Task {
	trimmed := strings.TrimSpace(payload)

	// Legacy shape: a bare JSON array of tasks (envelope version 0). It is
	// rewritten in the current envelope on the next save.
	if strings.HasPrefix(trimmed, "[") {
		var tasks []model.Task
		if err := json.Unmarshal([]byte(trimmed), &tasks); err != nil {
			return []model.Task{}
		}
		return tasks
	}

	var env tasksEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return []model.Task{}
	}
	if env.Version > envelopeVersion {
		// Written by a newer build; the shape is unknown.
		return []model.Task{}
	}
	if env.Tasks == nil {
		return []model.Task{}
	}
	return env.Tasks
}
