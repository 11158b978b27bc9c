package database

import (
	"context"
	"database/sql"
	"fmt"
	"metrics_demo_server/structs"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// DB is the optional PostgreSQL pool the health probe pings.
type DB struct {
	*bun.DB
	Retry RetryConfig
}

// Open configures the pool without connecting; the first ping dials.
func Open(cfg *structs.DatabaseConfig) (*DB, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("open database: disabled")
	}

	connConfig, err := ConnConfig(cfg)
	if err != nil {
		return nil, err
	}

	sqldb := stdlib.OpenDB(*connConfig)
	sqldb.SetMaxOpenConns(cfg.MaxConns)
	sqldb.SetMaxIdleConns(cfg.MinConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.MaxIdleTime)

	return New(sqldb), nil
}

// New wraps an existing *sql.DB.
func New(sqldb *sql.DB) *DB {
	return &DB{
		DB:    bun.NewDB(sqldb, pgdialect.New()),
		Retry: DefaultRetryConfig(),
	}
}

// ConnConfig parses the pgx connection settings. Server errors from a pool
// built on it surface as *pgconn.PgError.
func ConnConfig(cfg *structs.DatabaseConfig) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.DialTimeout > 0 {
		connConfig.ConnectTimeout = cfg.DialTimeout
	}
	return connConfig, nil
}

// DSN builds a postgres:// URL from the discrete settings.
func DSN(cfg *structs.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// PingContext pings the database, retrying transient failures.
func (db *DB) PingContext(ctx context.Context) error {
	return RetryWithBackoff(ctx, db.Retry, func() error {
		return db.DB.PingContext(ctx)
	})
}

// SQLDB exposes the underlying pool, e.g. for a sql.DBStats collector.
func (db *DB) SQLDB() *sql.DB {
	return db.DB.DB
}
