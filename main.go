package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/blogem/audit-trail/audit"
	"github.com/blogem/audit-trail/authenticator"
	"github.com/blogem/audit-trail/config"
	"github.com/blogem/audit-trail/controllers"
	"github.com/blogem/audit-trail/database"
	"github.com/blogem/audit-trail/metrics"
	authmiddleware "github.com/blogem/audit-trail/middleware"
	"github.com/blogem/audit-trail/repositories"
	"github.com/blogem/audit-trail/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := cfg.NewLogger()

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := database.InitializeDatabase(cfg.Database.Path, logger); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db, audit.WithObserver(recorder))
	if err := repos.WorkingHours.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed working hours: %w", err)
	}

	// Initialize services
	srvs := services.NewServices(repos)

	var provider authenticator.Provider
	if cfg.Auth.Enabled() {
		provider, err = authenticator.New(ctx, cfg.Auth.Provider, authenticator.Config{
			Domain:       cfg.Auth.Domain,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			CallbackURL:  cfg.Auth.CallbackURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize %s provider: %w", cfg.Auth.Provider, err)
		}
	} else {
		logger.Warn("no auth provider configured, revisions will be recorded as anonymous")
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, provider, db, logger)

	r, err := setupRouter(cfg, ctrl, repos.Audit, registry, recorder, logger)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":     cfg.Server.Port,
			"database": cfg.Database.Path,
			"auth":     cfg.Auth.Enabled(),
		}).Info("audit trail service starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupRouter configures all routes
func setupRouter(
	cfg *config.Config,
	ctrl *controllers.Controllers,
	auditRepo repositories.AuditRepository,
	gatherer prometheus.Gatherer,
	recorder *metrics.Recorder,
	logger logrus.FieldLogger,
) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(recorder.Instrument)

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "audit_session",
		Secure:         cfg.Server.UseHTTPS,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// Every request gets an ID and an acting user for revision stamping
	r.Use(authmiddleware.Auditor(logger, authmiddleware.SessionUser))
	r.Use(authmiddleware.AuditLogger(auditRepo, logger))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", ctrl.Health.Index)
	r.Handle("/metrics", metrics.Handler(gatherer))

	if ctrl.Auth != nil {
		r.Get("/login", ctrl.Auth.Login)
		r.Get("/callback", ctrl.Auth.Callback)
		r.Get("/logout", ctrl.Auth.Logout)
	}

	// PROTECTED ROUTES (authentication required when a provider is configured)
	r.Group(func(r chi.Router) {
		if ctrl.Auth != nil {
			r.Use(authmiddleware.RequireAuth)
		}
		ctrl.Register(r)
	})

	return r, nil
}
