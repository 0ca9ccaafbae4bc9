package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"telemetry_monitor/internal/config"
	"telemetry_monitor/internal/handlers"
	"telemetry_monitor/internal/logger"
	"telemetry_monitor/internal/repository"
	"telemetry_monitor/internal/repository/db"
	"telemetry_monitor/internal/server"
	"telemetry_monitor/internal/service"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		// logger level comes from config, so fall back to defaults here
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB only when the error buffer is durable
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	if conn != nil {
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}()
	}

	// wire dependencies
	repos, err := repository.NewRepository(cfg.Errors.Storage, conn)
	if err != nil {
		log.Fatalw("failed to init error buffer", "err", err)
	}
	services := service.NewService(repos, service.TelemetryOptions{
		RequireContentType: cfg.Telemetry.RequireContentType,
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg, withCORS(cfg.CORS), apiHandler, log)

	log.Infow("server started",
		"port", cfg.Port,
		"storage", cfg.Errors.Storage,
		"require_content_type", cfg.Telemetry.RequireContentType,
	)

	waitForShutdown(srv, cfg, log)
}

// openDB initializes the SQLite database when errors.storage is sqlite.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	if cfg.Errors.Storage != repository.StorageSQLite {
		return nil, nil
	}
	log.Infow("using sqlite error buffer", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

func withCORS(cfg config.CORSConfig) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Config, c *cors.Cors, h *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(cfg.Port, c.Handler(h.InitRoutes())); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
