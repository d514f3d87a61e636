package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key  TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`

// sqliteStore keeps the snapshot in a local SQLite file, the default for
// single-tenant use. One row per collection key.
type sqliteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens (and if needed creates) the snapshot database at dsn.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(dsn string) (Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT key, data FROM snapshots")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	parts := map[string][]byte{}
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		parts[key] = []byte(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	return decodeSnapshot(parts)
}

func (s *sqliteStore) Save(ctx context.Context, snap *Snapshot) error {
	parts, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, key := range snapshotKeys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (key, data) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET data = excluded.data
		`, key, string(parts[key])); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
