// Package jobdb persists a finished job graph to a SQLite database for
// handoff to an external runner. Jobs are stored in topological order with a
// PENDING status; the runner owns all later status transitions.
package jobdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/oncoseq/clinplan/internal/graph"
)

// StatusPending is the status every job is written with.
const StatusPending = "PENDING"

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	position     INTEGER NOT NULL,
	name         TEXT    NOT NULL UNIQUE,
	status       TEXT    NOT NULL,
	inputs       TEXT    NOT NULL,
	outputs      TEXT    NOT NULL,
	intermediate INTEGER NOT NULL,
	PRIMARY KEY (position)
);
CREATE TABLE IF NOT EXISTS analyses (
	analysis_id TEXT NOT NULL,
	sdid        TEXT NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (analysis_id)
);
`

// DB wraps the job database handle.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the job database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open job database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize job database schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// SaveGraph writes every job of the graph in topological order, replacing
// any previous content, in one transaction.
func (d *DB) SaveGraph(ctx context.Context, analysisID, sdid string, g *graph.Graph) error {
	order, err := g.TopoSort()
	if err != nil {
		return fmt.Errorf("ordering job graph: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin job database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("clear job table: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (analysis_id, sdid) VALUES (?, ?)`,
		analysisID, sdid); err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO jobs (position, name, status, inputs, outputs, intermediate)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare job insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range order {
		job, ok := g.Lookup(name)
		if !ok {
			return fmt.Errorf("job %s in topological order but not in graph", name)
		}
		inputs, err := json.Marshal(job.Inputs())
		if err != nil {
			return fmt.Errorf("encode inputs of job %s: %w", name, err)
		}
		outputs, err := json.Marshal(job.Outputs())
		if err != nil {
			return fmt.Errorf("encode outputs of job %s: %w", name, err)
		}
		if _, err := stmt.ExecContext(ctx, i, name, StatusPending,
			string(inputs), string(outputs), job.Intermediate()); err != nil {
			return fmt.Errorf("insert job %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// JobRecord is one persisted job row.
type JobRecord struct {
	Position     int
	Name         string
	Status       string
	Inputs       []string
	Outputs      []string
	Intermediate bool
}

// Jobs reads back every persisted job in topological order.
func (d *DB) Jobs(ctx context.Context) ([]JobRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT position, name, status, inputs, outputs, intermediate
		FROM jobs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query job table: %w", err)
	}
	defer rows.Close()

	var records []JobRecord
	for rows.Next() {
		var rec JobRecord
		var inputs, outputs string
		if err := rows.Scan(&rec.Position, &rec.Name, &rec.Status,
			&inputs, &outputs, &rec.Intermediate); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
			return nil, fmt.Errorf("decode inputs of job %s: %w", rec.Name, err)
		}
		if err := json.Unmarshal([]byte(outputs), &rec.Outputs); err != nil {
			return nil, fmt.Errorf("decode outputs of job %s: %w", rec.Name, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
