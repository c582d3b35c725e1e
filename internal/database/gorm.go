package database

import (
	"fmt"
	"strings"

	"nexus-engine/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDSN keeps the activity log in memory for the lifetime of the process.
const DefaultDSN = "file::memory:?cache=shared"

// IsPostgresDSN reports whether dsn addresses PostgreSQL rather than a sqlite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Open connects gorm to sqlite, or PostgreSQL for a postgres DSN, and
// migrates the activity tables.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	dialector := sqlite.Open(dsn)
	driver := "sqlite"
	if IsPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
		driver = "postgres"
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open activity database: %w", err)
	}

	if driver == "sqlite" {
		// A shared in-memory database vanishes when its last connection closes.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("activity database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		return nil, fmt.Errorf("migrate activity database: %w", err)
	}

	if log != nil {
		log.Info("Activity database ready", zap.String("driver", driver))
	}
	return db, nil
}
