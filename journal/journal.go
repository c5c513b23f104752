/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package journal keeps a SQLite log of generate runs and the code syntax
// changes each one made.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	_ "modernc.org/sqlite"

	"bennypowers.dev/codesyntax/pipeline"
	"bennypowers.dev/codesyntax/variable"
)

// DefaultPath is the suggested journal location.
const DefaultPath = "~/.local/state/codesyntax/journal.db"

// ErrInvalidPath indicates a journal path that cannot be expressed as a
// SQLite URI filename.
var ErrInvalidPath = errors.New("journal path must not contain '?' or '#'")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id          INTEGER PRIMARY KEY,
  started_at  TEXT NOT NULL,
  source      TEXT NOT NULL,
  selected    INTEGER NOT NULL,
  unchanged   INTEGER NOT NULL,
  warnings    INTEGER NOT NULL,
  dry_run     INTEGER NOT NULL CHECK (dry_run IN (0,1))
);
CREATE TABLE IF NOT EXISTS code_syntax_changes (
  id            INTEGER PRIMARY KEY,
  run_id        INTEGER NOT NULL REFERENCES runs(id),
  variable_id   TEXT NOT NULL,
  variable_name TEXT NOT NULL,
  platform      TEXT NOT NULL,
  action        TEXT NOT NULL CHECK (action IN ('write','overwrite','remove')),
  previous      TEXT,
  value         TEXT
);
CREATE INDEX IF NOT EXISTS idx_changes_run ON code_syntax_changes(run_id);
CREATE INDEX IF NOT EXISTS idx_changes_variable ON code_syntax_changes(variable_id);
`

// Journal is an open journal database.
type Journal struct {
	sql *sql.DB
}

// Run is one recorded generate run.
type Run struct {
	ID        int64
	StartedAt time.Time
	Source    string
	Selected  int
	Changes   int
	Unchanged int
	Warnings  int
	DryRun    bool
}

// Change is one recorded code syntax mutation.
type Change struct {
	RunID        int64
	OccurredAt   time.Time
	Source       string
	VariableID   string
	VariableName string
	Platform     variable.Platform
	Action       string
	Previous     string
	Value        string
}

// Open opens or creates the journal at path. A leading ~ is expanded and
// missing parent directories are created.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand journal path %s: %w", path, err)
	}
	if strings.ContainsAny(expanded, "?#") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	dsn := "file:" + expanded + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}
	return &Journal{sql: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j == nil || j.sql == nil {
		return nil
	}
	return j.sql.Close()
}

// Record stores a run and one row per mutation. It returns the run id.
func (j *Journal) Record(ctx context.Context, source string, result *pipeline.Result) (runID int64, err error) {
	tx, err := j.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(started_at, source, selected, unchanged, warnings, dry_run) VALUES(?,?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339Nano), source, result.Selected, result.Unchanged,
		len(result.Warnings), boolToInt(result.DryRun))
	if err != nil {
		return 0, err
	}
	if runID, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO code_syntax_changes(run_id, variable_id, variable_name, platform, action, previous, value) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, m := range result.Mutations {
		if _, err = stmt.ExecContext(ctx, runID, m.VariableID, m.VariableName, string(m.Platform),
			m.Action.String(), nullIfEmpty(m.Previous), nullIfEmpty(m.Value)); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.sql.QueryContext(ctx, `
SELECT r.id, r.started_at, r.source, r.selected, r.unchanged, r.warnings, r.dry_run,
       (SELECT COUNT(*) FROM code_syntax_changes c WHERE c.run_id = r.id)
FROM runs r ORDER BY r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r         Run
			startedAt string
			dryRun    int
		)
		if err := rows.Scan(&r.ID, &startedAt, &r.Source, &r.Selected, &r.Unchanged, &r.Warnings, &dryRun, &r.Changes); err != nil {
			return nil, err
		}
		r.StartedAt = parseTime(startedAt)
		r.DryRun = dryRun == 1
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Changes returns the most recent changes, newest first.
func (j *Journal) Changes(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.sql.QueryContext(ctx, `
SELECT c.run_id, r.started_at, r.source, c.variable_id, c.variable_name, c.platform, c.action, c.previous, c.value
FROM code_syntax_changes c JOIN runs r ON r.id = c.run_id
ORDER BY c.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []Change{}
	for rows.Next() {
		var (
			c               Change
			occurredAt      string
			platform        string
			previous, value sql.NullString
		)
		if err := rows.Scan(&c.RunID, &occurredAt, &c.Source, &c.VariableID, &c.VariableName,
			&platform, &c.Action, &previous, &value); err != nil {
			return nil, err
		}
		c.OccurredAt = parseTime(occurredAt)
		c.Platform = variable.Platform(platform)
		c.Previous = previous.String
		c.Value = value.String
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
