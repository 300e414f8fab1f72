package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Yatube/api/config"
	"Yatube/api/database/migrations"
	"Yatube/api/models"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrMigrationFailed = errors.New("failed to migrate")
)

// Models lists every table owned by the application, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	}
}

func Open(cfg config.Database) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite", "sqlite3":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return db, nil
	case "postgres", "postgresql", "":
		db, err := gorm.Open(postgres.Open(PostgresDSN(cfg)), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// PostgresDSN prefers DATABASE_URL in production and forces TLS there.
func PostgresDSN(cfg config.Database) string {
	if cfg.Production && cfg.URL != "" {
		dsn := cfg.URL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn
	}
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)
}

// Migrate applies the versioned SQL migrations on postgres and falls back
// to AutoMigrate for other dialects.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			slog.Error("database: auto migration failed", "error", err)
			return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		slog.Error("database: goose migration failed", "error", err)
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	for _, r := range results {
		slog.Info("database: applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
