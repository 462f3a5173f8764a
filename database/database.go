// Package database opens the on-device sqlite store and owns its schema.
package database

import (
	"fmt"
	"sync/atomic"

	"memory-arcade-core/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens (or creates) the local database at path and migrates the
// schema. WAL mode lets the background sync reader snapshot unsynced rows
// without blocking foreground writes; the busy timeout covers the brief
// writer handoffs.
func Open(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	return db, migrate(db)
}

var memSeq atomic.Int64

// OpenMemory opens a private in-memory database, used by tests. Each call
// gets its own named database, and the pool is pinned to one connection so
// every handle sees that same database.
func OpenMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:mem_%d?mode=memory&cache=shared", memSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, migrate(db)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.GameResult{},
		&models.LevelProgress{},
		&models.Achievement{},
		&models.ArcadeSession{},
	); err != nil {
		return fmt.Errorf("failed to migrate local database: %w", err)
	}
	return nil
}
