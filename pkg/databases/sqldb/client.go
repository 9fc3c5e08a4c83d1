// Package sqldb opens database/sql pools for the PostgreSQL and SQLite drivers.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/haguru/sakura/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second
)

// Client wraps a *sql.DB with its pool settings.
type Client struct {
	db              *sql.DB
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewPostgresClient returns a client for lib/pq. Zero pool values fall back to the defaults.
func NewPostgresClient(opts config.PoolOptions) *Client {
	c := &Client{
		Driver:          DriverPostgres,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return c
}

// NewSQLiteClient returns a client for modernc.org/sqlite.
// SQLite allows a single writer, so the pool holds one connection.
func NewSQLiteClient() *Client {
	return &Client{
		Driver:       DriverSQLite,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Connect opens the pool and pings the database. For SQLite the dsn is a file
// path and its directory is created when missing.
func (c *Client) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("%s: dsn is empty", c.Driver)
	}
	if c.Driver == DriverSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open(c.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.Driver, err)
	}
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)
	c.db = db

	return c.Ping(ctx)
}

// DB returns the underlying pool, nil before Connect.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Disconnect closes the pool.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping checks the health of the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("%s client is not connected", c.Driver)
	}
	return c.db.PingContext(ctx)
}
