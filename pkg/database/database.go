// Package database owns the shared gorm connection pool.
//
// Repositories receive a *Database and run multi-statement work through
// WithTx so that domain writes and outbox events commit together:
//
//	err := db.WithTx(ctx, func(tx *gorm.DB) error {
//	    if err := tx.Create(rec).Error; err != nil {
//	        return err
//	    }
//	    return bus.PublishTx(ctx, database.SQLTx(tx), topic, msg)
//	})
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ghuser/worktrack/pkg/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	slowQuery       = time.Second
)

// Database wraps *gorm.DB with pool configuration and transaction helpers.
type Database struct {
	db  *gorm.DB
	log logger.Logger
}

// NewPool connects to PostgreSQL at url through the pgx driver, configures the
// pool and verifies connectivity.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	d, err := Open(postgres.Open(url), log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: underlying pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Open wraps any gorm dialector. Tests use it with SQLite.
func Open(dialector gorm.Dialector, log logger.Logger) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	return &Database{db: db, log: log}, nil
}

// DB returns the gorm handle for single-statement queries.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// WithTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}

// Ping checks database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("database: underlying pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() {
	sqlDB, err := d.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		d.log.Warn("database close failed", "error", err)
	}
}

// SQLTx returns the *sql.Tx behind a gorm transaction handle, or nil when tx
// is not inside a transaction.
func SQLTx(tx *gorm.DB) *sql.Tx {
	if tx == nil || tx.Statement == nil {
		return nil
	}
	sqlTx, _ := tx.Statement.ConnPool.(*sql.Tx)
	return sqlTx
}

// newGormLogger routes gorm's SQL warnings and slow queries through slog.
func newGormLogger(log logger.Logger) gormLogger.Interface {
	return gormLogger.New(
		slog.NewLogLogger(log.ToSlog().Handler(), slog.LevelWarn),
		gormLogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
