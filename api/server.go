package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"Yatube/api/auth"
	"Yatube/api/config"
	"Yatube/api/controllers"
	"Yatube/api/database"
	"Yatube/api/seed"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfgFile     string
	verbose     bool
	veryVerbose bool
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "yatube",
	Short:         "Yatube blogging server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel(verbose, veryVerbose)
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		auth.Configure(cfg.APISecret)
		return nil
	},
	RunE: serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := openDB(cmd.Context())
		if err == nil {
			slog.Info("migrate: schema is up to date")
		}
		return err
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, groups, posts and follows",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		return seed.Load(cmd.Context(), db)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yatube.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (LevelInfo)")
	rootCmd.PersistentFlags().BoolVar(&veryVerbose, "vv", false, "Enable very verbose logging (LevelDebug)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, groupsCmd, usersCmd)
}

// setLogLevel installs a JSON slog handler at the level picked by the flags.
func setLogLevel(verbose, veryVerbose bool) {
	logLevel := slog.LevelWarn
	if veryVerbose {
		logLevel = slog.LevelDebug
	} else if verbose {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func openDB(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func serve(cmd *cobra.Command, args []string) error {
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			slog.Warn("server: sentry disabled", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	server, err := controllers.Initialize(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if closer, ok := server.Events.(io.Closer); ok {
		defer closer.Close()
	}
	return server.Run(cmd.Context(), ":"+strings.TrimSpace(cfg.Port))
}

// Run executes the command line and exits non-zero on failure.
func Run() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "yatube:", err)
		os.Exit(1)
	}
}
