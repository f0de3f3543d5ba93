package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres implements Store over a shared database, for deployments that
// embed the core behind an existing Postgres instance instead of a local
// file. Same single-writer assumptions apply; the table is a plain kv map.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

const postgresSchema = `
create table if not exists kv (
    key   text primary key,
    value bytea not null
)`

// OpenPostgres connects using the pgx stdlib driver and bootstraps the table.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(15 * time.Minute)
	p := &Postgres{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgres wraps an existing handle without schema bootstrap; used by
// tests that substitute the driver.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `select value from kv where key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		insert into kv(key, value) values($1, $2)
		on conflict (key) do update set value = excluded.value
	`, key, value)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `delete from kv where key = $1`, key)
	return err
}

func (p *Postgres) Close() error { return p.db.Close() }
