package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/compasshq/compass/server/internal/api"
	"github.com/compasshq/compass/server/internal/config"
	"github.com/compasshq/compass/server/internal/oracle/gemini"
	"github.com/compasshq/compass/server/internal/platform/logger"
	"github.com/compasshq/compass/server/internal/store"
	"github.com/compasshq/compass/server/internal/store/postgres"
	"github.com/compasshq/compass/server/internal/store/sqlite"
	"github.com/compasshq/compass/server/internal/timeparse"
)

func main() {
	var httpPort = flag.Int("port", 0, "HTTP port to listen on (overrides COMPASS_HTTP_PORT)")
	flag.Parse()

	log := logger.New("assistant-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *httpPort != 0 {
		cfg.HTTPPort = *httpPort
	}

	var (
		st store.Store
		db *sql.DB
	)
	switch cfg.DBDriver {
	case "postgres":
		db, err = postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to postgres")
		}
		if err := postgres.EnsureSchema(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure postgres schema")
		}
		st = postgres.NewWithDB(db)
	default:
		db, err = sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open sqlite database")
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure sqlite schema")
		}
		st = sqlite.NewWithDB(db)
	}
	defer func() { _ = db.Close() }()

	oracle := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, log)
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("COMPASS_GEMINI_API_KEY is not set; chat requests will return a connectivity apology")
	}

	router := api.NewRouter(api.Deps{
		Store:        st,
		Oracle:       oracle,
		Dates:        timeparse.New(cfg.Location()),
		HistoryLimit: cfg.HistoryLimit,
		DB:           db,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Str("db_driver", cfg.DBDriver).Msg("Starting assistant service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down assistant service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
