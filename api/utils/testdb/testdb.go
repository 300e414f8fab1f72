// Package testdb opens throwaway in-memory databases for package tests.
package testdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"Yatube/api/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory sqlite database. A single connection
// keeps every query on the same in-memory schema.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, ":memory:", 1)
}

// OpenPool returns a migrated file-backed sqlite database served by conns
// connections, so concurrent callers reach the database on separate
// connections. Write transactions queue on the database lock.
func OpenPool(t testing.TB, conns int) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sqlite")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL", path)
	return open(t, dsn, conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}
