package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	dbmysql "user-rest-service/internal/adapter/db/mysql"
	"user-rest-service/internal/config"
	"user-rest-service/pkg/logger"
)

// NewDatabase provisions the target database and returns a pooled GORM handle.
// The whole sequence is idempotent: the database and the users table are
// created only if absent. Any failure here is fatal to the caller.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	if err := ensureDatabase(cfg, l); err != nil {
		return nil, err
	}

	gormLogger := logger.NewGormLogger(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	db, err := gorm.Open(gormmysql.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second)

	if err := dbmysql.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	l.Info("database provisioned",
		zap.String("database", cfg.DB.Name),
		zap.Int("max_open_conns", cfg.DB.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.DB.MaxIdleConns),
	)

	return db, nil
}

// ensureDatabase connects without a database selected and creates the target
// database if it does not exist yet.
func ensureDatabase(cfg *config.Config, l *zap.Logger) error {
	bootstrap, err := sql.Open("mysql", cfg.DB.BootstrapDSN())
	if err != nil {
		return fmt.Errorf("failed to open bootstrap connection: %w", err)
	}
	defer bootstrap.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", cfg.DB.Name)
	if _, err := bootstrap.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.DB.Name, err)
	}

	l.Info("database ensured", zap.String("database", cfg.DB.Name))
	return nil
}

// CloseDatabase closes the database connection pool.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
