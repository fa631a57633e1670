// Package db provides database connection and management functionality.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database wraps the GORM database connection.
type Database struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewConnection opens the database selected by cfg.Driver.
func NewConnection(cfg *config.DatabaseConfig) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.URL)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established",
		"driver", cfg.Driver,
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck performs a health check on the database connection.
func (d *Database) HealthCheck() bool {
	sqlDB, err := d.db.DB()
	if err != nil {
		slog.Error("Failed to get sql.DB for health check", "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("Database health check failed", "error", err)
		return false
	}

	return true
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Database connection closed")
	return nil
}

// Migrate creates or updates the tables of every persisted model.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.RecurringDefinitionModel{},
	); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
