package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqlQueries struct {
	createTable string
	get         string
	upsert      string
	delete      string
}

var postgresQueries = sqlQueries{
	createTable: `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	get: `SELECT value FROM kv_store WHERE key = $1`,
	upsert: `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
}

var sqliteQueries = sqlQueries{
	createTable: `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	get: `SELECT value FROM kv_store WHERE key = ?`,
	upsert: `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	delete: `DELETE FROM kv_store WHERE key = ?`,
}

type sqlStore struct {
	db      *sql.DB
	queries sqlQueries
}

// NewPostgresStore keeps values in a kv_store table of a Postgres database opened with lib/pq.
func NewPostgresStore(ctx context.Context, db *sql.DB) (KVStore, error) {
	return newSQLStore(ctx, db, postgresQueries)
}

// NewSQLiteStore keeps values in a kv_store table of an embedded SQLite file.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (KVStore, error) {
	return newSQLStore(ctx, db, sqliteQueries)
}

func newSQLStore(ctx context.Context, db *sql.DB, queries sqlQueries) (KVStore, error) {
	if db == nil {
		return nil, errors.New("sql store requires a database handle")
	}
	if _, err := db.ExecContext(ctx, queries.createTable); err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &sqlStore{db: db, queries: queries}, nil
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.queries.upsert, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.queries.delete, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
