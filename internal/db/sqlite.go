package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sevigo/code-critic/internal/config"
)

// NewSQLite opens the embedded SQLite database at cfg.Path. The schema is created
// by the store itself. Use ":memory:" for a throwaway database.
func NewSQLite(cfg *config.DBConfig, logger *slog.Logger) (*gorm.DB, func(), error) {
	conn, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Path, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to access sqlite connection pool: %w", err)
	}
	// SQLite allows a single writer, and every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)

	logger.Info("opened sqlite database", "path", cfg.Path)

	return conn, func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close sqlite database", "error", err)
		}
	}, nil
}
