package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPostgresTable = "mellow_kv"

var tableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Postgres keeps every key as one row of a table.
type Postgres struct {
	pool  *pgxpool.Pool
	table string
}

// OpenPostgres connects a pool to opts.URL and creates the table if needed.
func OpenPostgres(ctx context.Context, opts PostgresOptions) (*Postgres, error) {
	table := opts.Table
	if table == "" {
		table = defaultPostgresTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("store: invalid postgres table name %q", table)
	}

	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("store: parse postgres url: %w", err)
	}
	config.MaxConns = 4
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table)
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: apply postgres schema: %w", err)
	}
	return &Postgres{pool: pool, table: table}, nil
}

func (p *Postgres) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table), key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: postgres load %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Save(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, p.table),
		key, value)
	if err != nil {
		return fmt.Errorf("store: postgres save %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
