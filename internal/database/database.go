// Package database owns the PostgreSQL connection pool and schema migrations.
package database

import (
	"errors"
	"fmt"
	"time"

	"budgetlens/internal/config"
	"budgetlens/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the read-side database connection used by the data providers.
type Manager struct {
	db             *gorm.DB
	dsn            string
	migrationsPath string
}

// NewManager opens a pooled PostgreSQL connection.
func NewManager(cfg *config.Config) (*Manager, error) {
	gormDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	logLevel := gormlogger.Warn
	if cfg.Env == "production" {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  gormDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, dsn: cfg.DSN(), migrationsPath: cfg.MigrationsPath}, nil
}

// NewMigrator opens a golang-migrate instance over the configured migrations.
// The caller must call CloseMigrator when done.
func NewMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	return openMigrator(cfg.MigrationsPath, cfg.DSN())
}

func openMigrator(source, dsn string) (*migrate.Migrate, error) {
	mig, err := migrate.New(source, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// CloseMigrator releases a migrator, logging close errors.
func CloseMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}

// RunMigrations applies pending SQL migrations.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := openMigrator(m.migrationsPath, m.dsn)
	if err != nil {
		return err
	}
	defer CloseMigrator(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
