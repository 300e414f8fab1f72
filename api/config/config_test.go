package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8888", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 20*time.Second, cfg.PageCacheTTL)
	assert.Equal(t, "local", cfg.Media.Backend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsProduction())
}

func TestLoadReadsFlatEnvNames(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("API_PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/yatube.db")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("S3_BUCKET", "media-bucket/posts")
	t.Setenv("PAGE_CACHE_TTL", "1m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/yatube.db", cfg.Database.SQLitePath)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "media-bucket", cfg.Media.S3Bucket)
	assert.Equal(t, time.Minute, cfg.PageCacheTTL)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := t.TempDir()
	path := filepath.Join(dir, "yatube.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nmedia:\n  backend: local\n  root: /srv/media\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "/srv/media", cfg.Media.Root)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("MEDIA_BACKEND", "s3")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("API_SECRET", "")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCSV(" a ,, b "))
	assert.Empty(t, SplitCSV(""))
}
