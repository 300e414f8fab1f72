package database

import (
	"context"
	"path/filepath"
	"testing"

	"Yatube/api/config"
	"Yatube/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dev := config.Database{Host: "db", Port: "5432", User: "yatube", Password: "secret", Name: "yatube"}
	assert.Equal(t,
		"host=db user=yatube password=secret dbname=yatube port=5432 sslmode=disable TimeZone=UTC",
		PostgresDSN(dev))

	prod := config.Database{URL: "postgres://u:p@h/db", Production: true}
	assert.Equal(t, "postgres://u:p@h/db?sslmode=require", PostgresDSN(prod))

	prod.URL = "postgres://u:p@h/db?connect_timeout=5"
	assert.Equal(t, "postgres://u:p@h/db?connect_timeout=5&sslmode=require", PostgresDSN(prod))

	prod.URL = "postgres://u:p@h/db?sslmode=disable"
	assert.Equal(t, "postgres://u:p@h/db?sslmode=disable", PostgresDSN(prod))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "mysql"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yatube.sqlite")
	db, err := Open(config.Database{Driver: "sqlite", SQLitePath: path})
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db))
	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Follow{}, "idx_follows_unique"))
}
