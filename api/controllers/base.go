package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"Yatube/api/cache"
	"Yatube/api/config"
	"Yatube/api/database"
	"Yatube/api/events"
	"Yatube/api/feed"
	"Yatube/api/follows"
	"Yatube/api/middlewares"
	"Yatube/api/models"
	"Yatube/api/storage"
	"Yatube/api/templates"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

type Server struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Config  *config.Config
	Feeds   *feed.Composer
	Follows *follows.Manager
	Images  storage.ImageStore
	Events  events.Publisher
}

// SeedAdmin creates the ADMIN_EMAIL account on first start and keeps its
// admin flag set afterwards.
func SeedAdmin(db *gorm.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		slog.Info("server: ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin creation")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("server: creating initial admin", "email", adminEmail)

		admin := models.User{
			Username: strings.Split(adminEmail, "@")[0],
			Email:    adminEmail,
			Password: adminPassword,
			IsAdmin:  true,
		}
		admin.Prepare()

		if msgs := admin.Validate(""); len(msgs) > 0 {
			slog.Warn("server: admin validation failed", "errors", msgs)
			return nil
		}
		if _, err := admin.SaveUser(db); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	}

	if err == nil && !existing.IsAdmin {
		slog.Info("server: ensuring admin flag", "email", adminEmail)
		return db.Model(&existing).Update("is_admin", true).Error
	}

	return err
}

// NewServer wires the feed, follow and storage collaborators around db and
// builds the router.
func NewServer(db *gorm.DB, cfg *config.Config, images storage.ImageStore, publisher events.Publisher) *Server {
	if publisher == nil {
		publisher = events.Nop{}
	}
	server := &Server{
		DB:      db,
		Config:  cfg,
		Feeds:   feed.NewComposer(db),
		Follows: follows.NewManager(db, publisher),
		Images:  images,
		Events:  publisher,
	}
	server.setupRouter()
	return server
}

// Initialize connects every backing service described by cfg.
func Initialize(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		return nil, err
	}

	// Redis init (safe failure)
	if err := cache.Init(cfg); err != nil {
		slog.Warn("server: could not connect to redis, page cache disabled", "error", err)
	}

	if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("server: seeding admin failed", "error", err)
	}

	images, err := NewImageStore(ctx, cfg.Media)
	if err != nil {
		return nil, err
	}

	return NewServer(db, cfg, images, events.FromConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic)), nil
}

func NewImageStore(ctx context.Context, media config.Media) (storage.ImageStore, error) {
	if media.Backend == "s3" {
		return storage.NewS3Store(ctx, media.S3Bucket, media.AWSRegion)
	}
	return storage.NewLocalStore(media.Root, media.URLPrefix), nil
}

func (s *Server) setupRouter() {
	s.Router = gin.Default()
	s.Router.HTMLRender = templates.MustLoad()
	s.Router.RedirectTrailingSlash = true

	s.Router.Use(middlewares.Sentry())
	s.Router.Use(middlewares.Metrics())
	s.Router.Use(middlewares.CORSMiddleware(s.Config.AllowedOrigins))
	s.Router.Use(middlewares.RateLimitMiddleware())
	s.Router.Use(middlewares.Authenticate(s.DB))

	if local, ok := s.Images.(*storage.LocalStore); ok {
		s.Router.StaticFS(s.Config.Media.URLPrefix, afero.NewHttpFs(local.Fs()).Dir("."))
	}
	s.initializeRoutes()
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
