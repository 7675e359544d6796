package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/gigvora/gigvora-backend/internal/api/middleware"
	"github.com/gigvora/gigvora-backend/internal/api/rest"
	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/config"
	"github.com/gigvora/gigvora-backend/internal/pkg/logger"
	"github.com/gigvora/gigvora-backend/internal/pkg/tracing"
	"github.com/gigvora/gigvora-backend/internal/repository"
	"github.com/gigvora/gigvora-backend/migrations"
)

func main() {
	log := logger.StdLogger()
	log.Info("gigvora backend starting")

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Error("jwt_secret is required (set GIGVORA_JWT_SECRET)")
		os.Exit(1)
	}

	shutdownTracing, err := tracing.Init("gigvora-backend", cfg.TracingEndpoint, cfg.TracingSampleRate)
	if err != nil {
		log.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing()

	repo, err := repository.NewSQLiteRepository(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := runMigrations(repo); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.BootstrapAdminEmail != "" && cfg.BootstrapAdminPassword != "" {
		if _, err := repo.EnsureAdminUser(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			log.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
		log.Info("admin account ensured", "email", cfg.BootstrapAdminEmail)
	}

	verifier := auth.NewVerifier(cfg.JWTSecret, repo)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.StructuredLog)
	router.Use(middleware.SecureHeaders)
	router.Use(middleware.MaxBodySize(int64(cfg.MaxBodyBytes)))
	if cfg.RateLimitEnabled {
		router.Use(middleware.RateLimit())
	}

	router.HandleFunc("/health", rest.Healthz).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	handler := rest.NewHandler(repo)
	rest.SetupRoutes(apiRouter, handler, verifier)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("stopped")
}

// runMigrations applies embedded *.sql files in lexical order.
func runMigrations(repo *repository.SQLiteRepository) error {
	entries, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)
	for _, name := range entries {
		data, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if err := repo.RunMigrations(string(data)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}
