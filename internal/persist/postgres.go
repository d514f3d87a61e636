package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key  TEXT PRIMARY KEY,
	data JSONB NOT NULL
);`

// postgresStore keeps the snapshot in PostgreSQL for deployments that want a
// server-backed store. Same one-row-per-collection layout as the SQLite
// backend.
type postgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (Store, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.pool.Query(ctx, "SELECT key, data FROM snapshots")
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	parts := map[string][]byte{}
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		parts[key] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	return decodeSnapshot(parts)
}

func (s *postgresStore) Save(ctx context.Context, snap *Snapshot) error {
	parts, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, key := range snapshotKeys {
		if _, err := tx.Exec(ctx, `
			INSERT INTO snapshots (key, data) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data
		`, key, parts[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
