package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Database struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
	Production bool
}

type Media struct {
	Backend   string
	Root      string
	URLPrefix string
	S3Bucket  string
	AWSRegion string
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Config struct {
	AppEnv         string
	Port           string
	APISecret      string
	Database       Database
	RedisURL       string
	RedisAddr      string
	RedisPassword  string
	PageCacheTTL   time.Duration
	Media          Media
	Kafka          Kafka
	SentryDSN      string
	AllowedOrigins []string
	AdminEmail     string
	AdminPassword  string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// envBindings maps viper keys to the environment variables the deployment
// already uses.
var envBindings = map[string][]string{
	"app_env":         {"APP_ENV"},
	"port":            {"PORT", "API_PORT"},
	"api_secret":      {"API_SECRET"},
	"db.driver":       {"DB_DRIVER"},
	"db.url":          {"DATABASE_URL"},
	"db.host":         {"DB_HOST"},
	"db.port":         {"DB_PORT"},
	"db.user":         {"DB_USER"},
	"db.password":     {"DB_PASSWORD"},
	"db.name":         {"DB_NAME"},
	"db.sqlite_path":  {"SQLITE_PATH"},
	"redis.url":       {"REDIS_URL", "VALKEY_URL"},
	"redis.addr":      {"REDIS_ADDR"},
	"redis.password":  {"REDIS_PASSWORD"},
	"cache.page_ttl":  {"PAGE_CACHE_TTL"},
	"media.backend":   {"MEDIA_BACKEND"},
	"media.root":      {"MEDIA_ROOT"},
	"media.url":       {"MEDIA_URL"},
	"media.s3_bucket": {"S3_BUCKET"},
	"media.region":    {"AWS_REGION"},
	"kafka.brokers":   {"KAFKA_BROKERS"},
	"kafka.topic":     {"KAFKA_TOPIC"},
	"sentry.dsn":      {"SENTRY_DSN"},
	"allowed_origins": {"ALLOWED_ORIGINS"},
	"admin.email":     {"ADMIN_EMAIL"},
	"admin.password":  {"ADMIN_PASSWORD"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8888")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sqlite_path", "yatube.sqlite")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("cache.page_ttl", "20s")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.root", "media")
	v.SetDefault("media.url", "/media/")
	v.SetDefault("media.region", "us-east-2")
	v.SetDefault("kafka.topic", "yatube.events")
	v.SetDefault("allowed_origins", "http://localhost:3000")
}

// Load reads configuration from .env (outside production), an optional YAML
// file and the environment. An empty cfgFile means $HOME/.yatube.yaml when it
// exists.
func Load(cfgFile string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if cfgFile == "" {
		if home, err := homedir.Dir(); err == nil {
			candidate := filepath.Join(home, ".yatube.yaml")
			if _, err := os.Stat(candidate); err == nil {
				cfgFile = candidate
			}
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{
		AppEnv:        v.GetString("app_env"),
		Port:          strings.TrimSpace(v.GetString("port")),
		APISecret:     v.GetString("api_secret"),
		RedisURL:      v.GetString("redis.url"),
		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		PageCacheTTL:  v.GetDuration("cache.page_ttl"),
		Media: Media{
			Backend:   strings.ToLower(v.GetString("media.backend")),
			Root:      v.GetString("media.root"),
			URLPrefix: v.GetString("media.url"),
			S3Bucket:  strings.SplitN(v.GetString("media.s3_bucket"), "/", 2)[0],
			AWSRegion: v.GetString("media.region"),
		},
		Kafka: Kafka{
			Brokers: SplitCSV(v.GetString("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		SentryDSN:      v.GetString("sentry.dsn"),
		AllowedOrigins: SplitCSV(v.GetString("allowed_origins")),
		AdminEmail:     strings.ToLower(strings.TrimSpace(v.GetString("admin.email"))),
		AdminPassword:  strings.TrimSpace(v.GetString("admin.password")),
	}
	cfg.Database = Database{
		Driver:     strings.ToLower(v.GetString("db.driver")),
		URL:        v.GetString("db.url"),
		Host:       v.GetString("db.host"),
		Port:       v.GetString("db.port"),
		User:       v.GetString("db.user"),
		Password:   v.GetString("db.password"),
		Name:       v.GetString("db.name"),
		SQLitePath: v.GetString("db.sqlite_path"),
		Production: cfg.IsProduction(),
	}

	if cfg.Media.Backend == "s3" && cfg.Media.S3Bucket == "" {
		return nil, fmt.Errorf("MEDIA_BACKEND=s3 requires S3_BUCKET")
	}
	if cfg.IsProduction() && cfg.APISecret == "" {
		return nil, fmt.Errorf("API_SECRET is required in production")
	}
	return cfg, nil
}

func SplitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
