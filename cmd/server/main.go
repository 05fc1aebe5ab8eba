package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"sppages/application"
	"sppages/database"
	"sppages/domain/contracts"
	"sppages/infrastructure/config"
	"sppages/infrastructure/repositories"
	"sppages/infrastructure/spclient"
	"sppages/interfaces/web/handlers"
	"sppages/logging"
	"sppages/spauth"
)

func main() {
	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Connect to SharePoint
	client := initializeSharePoint(cfg, logger)

	deps := buildDependencies(db, client, cfg, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg, logger)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	PageService application.PageService
	SiteService application.SiteService
}

// PresentationLayer groups all handlers
type PresentationLayer struct {
	PageHandlers *handlers.PageHandlers
	SiteHandlers *handlers.SiteHandlers
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB     *database.Database
	Client *spclient.Client
	Logger *logging.Logger

	// Repositories
	JournalRepo contracts.PageJournalRepository

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
		"pages_library", cfg.PagesLibrary,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

func initializeSharePoint(cfg *config.AppConfig, logger *logging.Logger) *spclient.Client {
	authCfg, err := spauth.FromEnv()
	if err != nil {
		logger.Error("Invalid SharePoint configuration", "error", err)
		os.Exit(1)
	}
	authClient, err := spauth.NewClient(authCfg)
	if err != nil {
		logger.Error("Failed to create SharePoint auth client", "strategy", authCfg.Strategy, "error", err)
		os.Exit(1)
	}

	client := spclient.NewClient(authClient, spclient.WithTimeout(cfg.RequestTimeout))
	logger.SharePoint("SharePoint client ready",
		"site_url", client.SiteURL(),
		"strategy", authCfg.Strategy,
		"request_timeout", cfg.RequestTimeout.String())
	return client
}

// buildDependencies creates all application dependencies
func buildDependencies(db *database.Database, client *spclient.Client, cfg *config.AppConfig, logger *logging.Logger) *Dependencies {
	journalRepo := repositories.NewSqlitePageJournalRepository(db)

	web := client.Web()
	services := &ApplicationServices{
		PageService: application.NewPageService(web, journalRepo, cfg.PagesLibrary),
		SiteService: application.NewSiteService(web.RegionalReader(), client.Social(), web),
	}

	presentation := &PresentationLayer{
		PageHandlers: handlers.NewPageHandlers(services.PageService),
		SiteHandlers: handlers.NewSiteHandlers(services.SiteService),
	}

	return &Dependencies{
		DB:           db,
		Client:       client,
		Logger:       logger,
		JournalRepo:  journalRepo,
		Services:     services,
		Presentation: presentation,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware. httplog chains its own RequestID.
	if !setupHTTPLogging(r, deps, cfg) {
		r.Use(middleware.RequestID)
	}
	r.Use(middleware.Recoverer)

	// System endpoints
	setupSystemRoutes(r, deps)

	// API routes
	handlers.RegisterAPIRoutes(r, deps.Presentation.PageHandlers, deps.Presentation.SiteHandlers)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) bool {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return false
	}

	httpLogger := httplog.NewLogger("sppages", httplog.Options{
		Writer: &lumberjack.Logger{
			Filename:   cfg.HTTPLogPath,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
		JSON: true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
	return true
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"site_url": deps.Client.SiteURL(),
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func startServer(router *chi.Mux, cfg *config.AppConfig, logger *logging.Logger) {
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, cfg.ShutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", cfg.HTTPAddr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
