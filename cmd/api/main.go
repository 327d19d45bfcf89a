package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stac-index/internal/config"
	pgRepo "stac-index/internal/infra/adapter/persistence/postgres"
	"stac-index/internal/infra/db"
	"stac-index/internal/infra/fetcher"
	"stac-index/internal/infra/refdata"
	"stac-index/internal/observability/logging"
	"stac-index/internal/observability/tracing"
	"stac-index/internal/resilience/circuitbreaker"

	dirUC "stac-index/internal/usecase/directory"
	"stac-index/internal/usecase/stac"
	subUC "stac-index/internal/usecase/submission"

	hhttp "stac-index/internal/handler/http"
	hdir "stac-index/internal/handler/http/directory"
	"stac-index/internal/handler/http/middleware"
	"stac-index/internal/handler/http/requestid"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	tracing.InstallPropagator()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database := initDatabase(ctx, logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, database)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(ctx, cancel, logger, cfg, components)
}

// initLogger builds the structured logger from configuration and installs it as the default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	if err != nil {
		slog.Error("invalid logging configuration", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBConnection())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	m, err := db.NewMigrator(cfg.DatabaseURL)
	if err == nil {
		err = db.MigrateUp(m)
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrator",
				slog.Any("source_error", srcErr),
				slog.Any("database_error", dbErr))
		}
	}
	if err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from the build, VERSION, or "dev".
func getVersion() string {
	if version != "" {
		return version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler  http.Handler
	Limiters []*middleware.IPRateLimiter
}

// setupServer wires storage, services and routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, database *sql.DB) (*ServerComponents, error) {
	ref, err := refdata.Load()
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	catalogs := pgRepo.NewCatalogRepo(breaker)
	ecosystem := pgRepo.NewEcosystemRepo(breaker)
	tutorials := pgRepo.NewTutorialRepo(breaker)

	verifyFetcher := fetcher.New(cfg.VerifyFetcher())
	proxyFetcher := fetcher.New(cfg.ProxyFetcher())

	submissions := &subUC.Service{
		Catalogs:  catalogs,
		Ecosystem: ecosystem,
		Tutorials: tutorials,
		Verifier:  stac.NewVerifier(verifyFetcher),
		Reference: ref,
	}
	reader := &dirUC.Service{
		Catalogs:  catalogs,
		Ecosystem: ecosystem,
		Tutorials: tutorials,
		Reference: ref,
	}

	deps := hdir.Deps{
		Reader:    reader,
		Submitter: submissions,
		Proxy:     stac.NewProxy(proxyFetcher, cfg.PublicURL),
		Hostname:  cfg.Hostname,
		Logger:    logger,
	}

	components := &ServerComponents{}
	if cfg.RateLimit.Enabled {
		extractor, err := newIPExtractor(logger, cfg.RateLimit.TrustedProxies)
		if err != nil {
			return nil, err
		}
		submitLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
			Name:      "submit",
			PerMinute: cfg.RateLimit.SubmitPerMinute,
		}, extractor)
		proxyLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
			Name:      "proxy",
			PerMinute: cfg.RateLimit.ProxyPerMinute,
		}, extractor)
		deps.SubmitLimit = submitLimiter.Middleware
		deps.ProxyLimit = proxyLimiter.Middleware
		components.Limiters = append(components.Limiters, submitLimiter, proxyLimiter)

		logger.Info("rate limiting initialized",
			slog.Int("submit_per_minute", cfg.RateLimit.SubmitPerMinute),
			slog.Int("proxy_per_minute", cfg.RateLimit.ProxyPerMinute))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	hdir.Register(mux, deps)

	// ヘルスチェックエンドポイント
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: getVersion()})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: breaker})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	components.Handler = applyMiddleware(logger, cfg, mux)
	return components, nil
}

// newIPExtractor honours forwarding headers only from the configured proxies.
func newIPExtractor(logger *slog.Logger, trusted []string) (middleware.IPExtractor, error) {
	proxyConfig, err := middleware.ParseTrustedProxies(trusted)
	if err != nil {
		return nil, err
	}
	if !proxyConfig.Enabled {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
		return &middleware.RemoteAddrExtractor{}, nil
	}
	logger.Info("rate limiting: trusted proxy mode enabled",
		slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	return middleware.NewTrustedProxyExtractor(proxyConfig), nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Recovery → Logging → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	logger.Info("CORS enabled", slog.String("expose_headers", cfg.CORS.ExposeHeaders))

	return hhttp.Chain(handler,
		middleware.CORS(middleware.CORSConfig{ExposeHeaders: cfg.CORS.ExposeHeaders}),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(hhttp.DefaultMaxBodyBytes),
		hhttp.MetricsMiddleware,
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	for _, l := range components.Limiters {
		go middleware.StartCleanup(ctx, l, 5*time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.ListenAddr),
			slog.String("public_url", cfg.PublicURL),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Cancel background goroutines (rate limit cleanup)
	cancel()
	logger.Info("server stopped")
}
