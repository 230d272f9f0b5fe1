// Package persistence provides SQLite-based storage for agent snapshots and
// the append-only interaction round log. The core packages never touch it;
// only the driver reads and writes here.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/fateloom/internal/agents"
	"github.com/talgya/fateloom/internal/sim"
)

// ErrNotFound indicates a missing agent or metadata key.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection for simulation state storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		snapshot_json TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		a_id TEXT NOT NULL,
		b_id TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_run ON rounds(run_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAgent upserts one agent snapshot as a JSON blob.
func (db *DB) SaveAgent(a *agents.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal agent %s: %w", a.ID, err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO agents (id, name, snapshot_json, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   snapshot_json = excluded.snapshot_json,
		   updated_at = CURRENT_TIMESTAMP`,
		a.ID, a.Name, string(blob),
	)
	if err != nil {
		return fmt.Errorf("save agent %s: %w", a.ID, err)
	}
	return nil
}

// LoadAgent reads one agent snapshot back, validating on decode.
func (db *DB) LoadAgent(id string) (*agents.Agent, error) {
	var blob string
	err := db.conn.Get(&blob, "SELECT snapshot_json FROM agents WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("agent %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load agent %s: %w", id, err)
	}
	return agents.FromJSON([]byte(blob))
}

// LogRounds appends a series' round summaries under a run id.
func (db *DB) LogRounds(runID string, rounds []sim.RoundSummary) error {
	if len(rounds) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range rounds {
		blob, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal round %d: %w", r.Round, err)
		}
		_, err = tx.Exec(
			"INSERT INTO rounds (run_id, round, a_id, b_id, summary_json) VALUES (?, ?, ?, ?, ?)",
			runID, r.Round, r.AID, r.BID, string(blob),
		)
		if err != nil {
			return fmt.Errorf("insert round %d: %w", r.Round, err)
		}
	}

	return tx.Commit()
}

// LoadRounds reads a run's round log back in order.
func (db *DB) LoadRounds(runID string) ([]sim.RoundSummary, error) {
	var blobs []string
	err := db.conn.Select(&blobs,
		"SELECT summary_json FROM rounds WHERE run_id = ? ORDER BY round", runID)
	if err != nil {
		return nil, fmt.Errorf("load rounds %s: %w", runID, err)
	}

	rounds := make([]sim.RoundSummary, 0, len(blobs))
	for _, blob := range blobs {
		var r sim.RoundSummary
		if err := json.Unmarshal([]byte(blob), &r); err != nil {
			return nil, fmt.Errorf("decode round: %w", err)
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}

// SetMeta stores a key-value pair in run metadata.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta reads a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
