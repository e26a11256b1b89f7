// Package database manages the relational store connection, schema
// migrations, and the idempotent category seed.
package database

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spendbook/internal/logger"
	"spendbook/internal/models"
)

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
}

// NewManager opens the store described by the configuration. The default is
// an embedded SQLite file next to the application; DriverPostgres connects to
// a shared store instead.
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverSQLite:
		// foreign_keys is off by default in SQLite.
		dialector = sqlite.Open(config.Path + "?_foreign_keys=on")
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One interactive session at a time: a single short-lived connection is
	// acquired per operation and released on every exit path.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db, driver: config.Driver, dsn: config.URL()}, nil
}

// RunMigrations brings the schema up to date. The postgres path applies the
// embedded SQL migrations; the sqlite path auto-migrates the models, which
// yields the same tables for the embedded single-user store.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	if m.driver == DriverSQLite {
		if err := m.db.AutoMigrate(&models.User{}, &models.Category{}, &models.Expense{}); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, m.dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
