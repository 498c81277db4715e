// Package sqldb persists credentials and custody documents through gorm.
// SQLite and PostgreSQL are supported.
package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config selects the dialect and the data source.
type Config struct {
	Driver   string // sqlite | postgres
	DSN      string
	MaxConns int
	LogLevel logger.LogLevel
}

// Connect opens the database, applies pool settings and migrates the schema.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}

	level := cfg.LogLevel
	if level == 0 {
		level = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("sql open: %w: %w", domain.ErrTransport, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MaxConns / 2)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("sql ping: %w: %w", domain.ErrTransport, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the credentials and documents tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&credentialRecord{}, &documentRecord{}); err != nil {
		return fmt.Errorf("sql migrate: %w", err)
	}
	return nil
}
