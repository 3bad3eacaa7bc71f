package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sentimeter/internal/config"
	"sentimeter/internal/errors"
	"sentimeter/internal/infrastructure"
	customMiddleware "sentimeter/internal/middleware"
	"sentimeter/internal/pipeline"
	"sentimeter/internal/sentiment"
	"sentimeter/internal/translate"
	handlers "sentimeter/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Analyzer      *pipeline.Analyzer
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("service", infrastructure.ServiceName),
		slog.String("version", infrastructure.ServiceVersion),
		slog.Int("port", cfg.Server.Port))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	var metrics *infrastructure.AnalysisMetrics
	if otelProviders.Meter != nil {
		metrics, err = infrastructure.CreateAnalysisMetrics(otelProviders.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis metrics: %w", err)
		}
	}

	analyzer, err := buildAnalyzer(cfg, logger, otelProviders, metrics)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:        cfg,
		Analyzer:      analyzer,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	app.setupRouter()

	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// buildAnalyzer assembles the pipeline from the configured capabilities.
func buildAnalyzer(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders, metrics *infrastructure.AnalysisMetrics) (*pipeline.Analyzer, error) {
	model := sentiment.NewRemoteModel(cfg.Model.Endpoint, cfg.Model.APIToken, cfg.Model.Timeout)
	classifier := sentiment.NewClassifier(model, logger)

	var translateCapability translate.Capability
	if cfg.Translate.APIKey != "" {
		translator, err := translate.NewGoogleTranslator(context.Background(), cfg.Translate.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize translator: %w", err)
		}
		translateCapability = translator
	} else {
		logger.Warn("no translation API key configured, translation requests will pass texts through unchanged")
	}
	adapter := translate.NewAdapter(translateCapability, logger)

	return pipeline.NewAnalyzer(classifier, adapter, logger,
		pipeline.WithTracer(providers.Tracer),
		pipeline.WithMetrics(metrics)), nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.CORS(a.Config.Security.AllowedOrigins))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)
	analysisHandler := handlers.NewAnalysisHandler(a.Analyzer, a.Logger, errorHandler, a.Config.Server.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Mount("/analysis", analysisHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return a.Shutdown()
}

// Shutdown stops the server and flushes telemetry.
func (a *Application) Shutdown() error {
	a.Logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := a.OTelProviders.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("telemetry shutdown failed: %w", err)
	}
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = err
	}

	a.Logger.Info("shutdown complete", slog.Duration("grace", a.Config.Server.ShutdownTimeout), slog.String("at", time.Now().UTC().Format(time.RFC3339)))
	return firstErr
}
