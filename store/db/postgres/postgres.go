package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/hrygo/notekeeper/internal/profile"
	"github.com/hrygo/notekeeper/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, fmt.Errorf("dsn required")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		slog.Error("failed to open database", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to open db with dsn: %w", err)
	}
	// Ping to verify the connection is alive before the server starts accepting requests.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return &DB{db: db, profile: profile}, nil
}

func (db *DB) GetDB() *sql.DB {
	return db.db
}

func (db *DB) Close() error {
	return db.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS note (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
	updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
);

CREATE TABLE IF NOT EXISTS tag (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
`

func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	return nil
}
