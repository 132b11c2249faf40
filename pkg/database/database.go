// Package database manages a PostgreSQL connection pool through the pgx
// stdlib driver, with startup and shutdown coordinated by the lifecycle
// package.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/synapses/navigator/pkg/lifecycle"
)

// System exposes the shared connection pool and its lifecycle hooks.
type System interface {
	// Connection returns the pool. Safe for concurrent use.
	Connection() *sql.DB
	// Start registers ping-on-startup and close-on-shutdown hooks.
	Start(lc *lifecycle.Coordinator) error
}

type pool struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New opens the pool from cfg. sql.Open validates the DSN and sets pool
// limits; no connection is dialed until Start's ping hook runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &pool{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (p *pool) Connection() *sql.DB {
	return p.conn
}

func (p *pool) Start(lc *lifecycle.Coordinator) error {
	p.logger.Info("starting database connection")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), p.connTimeout)
		defer cancel()

		if err := p.conn.PingContext(ctx); err != nil {
			p.logger.Error("database ping failed", "error", err)
			return
		}
		p.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		p.logger.Info("closing database connection")

		if err := p.conn.Close(); err != nil {
			p.logger.Error("database close failed", "error", err)
			return
		}
		p.logger.Info("database connection closed")
	})

	return nil
}
