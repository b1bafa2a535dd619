// Package postgres implements storage.Store on PostgreSQL via database/sql
// and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// Client is a postgres-backed storage.Store.
type Client struct {
	db  *sql.DB
	url string
}

// NewClient opens a connection pool and verifies connectivity.
func NewClient(ctx context.Context, databaseURL string) (*Client, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Client{db: db, url: databaseURL}, nil
}

// Migrate applies pending migrations from the given directory.
func (c *Client) Migrate(migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, c.url)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// storeErr maps driver errors onto the storage sentinels so resolvers never
// see raw SQLSTATE codes.
func storeErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return storage.ErrDuplicate
		case "23503": // foreign_key_violation
			return storage.ErrForeignKey
		}
	}
	return err
}
