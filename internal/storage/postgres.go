package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 5 * time.Second

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	selectValueSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueSQL = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// PostgresKV stores values in a single kv_store table.
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresKV wraps an existing handle. The caller keeps ownership of db
// unless Close is called.
func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// OpenPostgres connects through the pgx stdlib driver, pings, and ensures the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresKV, error) {
	if dsn == "" {
		return nil, errors.New("storage: DATABASE_URL required for postgres driver")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", describePgError(err))
	}

	kv := NewPostgresKV(db)
	if err := kv.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

// EnsureSchema creates the kv_store table when missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", describePgError(err))
	}
	return nil
}

// Get reads the value stored under key.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, describePgError(err))
	}
	return value, nil
}

// Set upserts value under key.
func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.ExecContext(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, describePgError(err))
	}
	return nil
}

// Close releases the database handle.
func (p *PostgresKV) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// PgError keeps the SQLSTATE next to the message so logs are searchable by code.
type PgError struct {
	Code string
	Err  error
}

func (e *PgError) Error() string { return fmt.Sprintf("postgres %s: %v", e.Code, e.Err) }

func (e *PgError) Unwrap() error { return e.Err }

func describePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &PgError{Code: pgErr.Code, Err: err}
	}
	return err
}
