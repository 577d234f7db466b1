// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/placementhub/placementhub/internal/analytics"
	analyticspostgres "github.com/placementhub/placementhub/internal/analytics/postgres"
	"github.com/placementhub/placementhub/internal/config"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/identity"
	"github.com/placementhub/placementhub/internal/jobs"
	jobspostgres "github.com/placementhub/placementhub/internal/jobs/postgres"
	"github.com/placementhub/placementhub/internal/notifications"
	notificationspostgres "github.com/placementhub/placementhub/internal/notifications/postgres"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
	"github.com/placementhub/placementhub/internal/pkg/metrics"
	"github.com/placementhub/placementhub/internal/pkg/postgres"
	"github.com/placementhub/placementhub/internal/session"
	sessionpostgres "github.com/placementhub/placementhub/internal/session/postgres"
	"github.com/placementhub/placementhub/internal/version"
)

// App represents the application instance.
type App struct {
	config             *config.Config
	logger             *slog.Logger
	db                 *pgxpool.Pool
	server             *http.Server
	metricsServer      *http.Server
	metricsCancel      context.CancelFunc
	notificationWorker *notifications.Worker
	loginLimiter       *httputil.LoginRateLimiter
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	logger := initLogger(cfg.Log)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer connectCancel()

	db, err := postgres.Connect(connectCtx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	metricsCtx, metricsCancel := context.WithCancel(context.Background())

	app := &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		metricsCancel: metricsCancel,
	}

	go app.collectDBMetrics(metricsCtx)

	router, notificationWorker, err := app.setupRouter(metricsCtx)
	if err != nil {
		db.Close()
		metricsCancel()
		return nil, fmt.Errorf("setup router: %w", err)
	}

	app.notificationWorker = notificationWorker

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Metrics server on separate port
	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP servers.
func (a *App) Run() error {
	// Start metrics server in background
	go func() {
		a.logger.Info("starting metrics server",
			"host", a.config.Server.Host,
			"port", a.config.Server.MetricsPort,
		)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	// Start main server
	a.logger.Info("starting server",
		"host", a.config.Server.Host,
		"port", a.config.Server.Port,
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	a.metricsCancel()

	// Stop notification worker first
	if a.notificationWorker != nil {
		a.notificationWorker.Stop()
	}

	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}

	// Shutdown both servers in parallel
	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := a.server.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
			mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	a.db.Close()

	return errors.Join(errs...)
}

func (a *App) collectDBMetrics(ctx context.Context) {
	// Collect immediately on start
	metrics.RecordDBPoolMetrics(a.db)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics.RecordDBPoolMetrics(a.db)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) collectQueueMetrics(ctx context.Context, repo notifications.Repository) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := repo.QueueStats(ctx)
			if err != nil {
				slog.Error("failed to get queue stats", "error", err)
				continue
			}
			notifications.RecordQueueStats(stats)
		case <-ctx.Done():
			return
		}
	}
}

// Router returns the HTTP handler for testing.
func (a *App) Router() http.Handler {
	return a.server.Handler
}

// NotificationWorker returns the notification worker instance.
// Used in tests to access worker state. Returns nil if notifications disabled.
func (a *App) NotificationWorker() *notifications.Worker {
	return a.notificationWorker
}

func (a *App) setupRouter(ctx context.Context) (*chi.Mux, *notifications.Worker, error) {
	r := chi.NewRouter()

	codec := session.NewTokenCodec(a.config.Session.Secret)

	// Metrics middleware must be first to measure full request time
	r.Use(httputil.MetricsMiddleware)

	// CORS must be early to handle preflight requests before other middleware
	r.Use(httputil.CORSMiddleware(a.config.CORS.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(httputil.RequestLoggerMiddleware(a.logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(httputil.SessionMiddleware(codec, a.config.Session.CookieName))

	r.Get("/healthz", a.healthzHandler)
	r.Get("/readyz", a.readyzHandler)
	r.Get("/version", a.versionHandler)

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		http.ServeFile(w, r, "api/openapi/openapi.yaml")
	})

	r.Get("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>PlacementHub API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        SwaggerUIBundle({
            url: "/api/openapi.yaml",
            dom_id: '#swagger-ui',
            presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
            layout: "BaseLayout"
        });
    </script>
</body>
</html>`))
	})

	// Credential directory: fixture records for local development, the
	// users table otherwise.
	var directory session.CredentialSource
	if a.config.Session.MockDirectory {
		slog.Info("using fixture credential directory")
		directory = session.DefaultFixtureDirectory()
	} else {
		directory = sessionpostgres.NewDirectory(a.db)
	}

	identityHandler := identity.NewHandler(directory, codec, identity.CookieSettings{
		Name:   a.config.Session.CookieName,
		Domain: a.config.Session.CookieDomain,
		Secure: a.config.Session.CookieSecure,
		MaxAge: a.config.Session.CookieMaxAge,
	}, a.config.Session.LoginDelay)

	a.loginLimiter = httputil.NewLoginRateLimiter(a.config.Login.RatePerMinute, a.config.Login.RateBurst)

	// Notifications: the queue is always written, the worker only drains
	// it when enabled.
	notificationsRepo := notificationspostgres.NewRepository(a.db)
	notificationsService := notifications.NewService(notificationsRepo)
	notificationsHandler := notifications.NewHandler(notificationsService)

	var notificationWorker *notifications.Worker
	if a.config.Notifications.Enabled {
		workerConfig := notifications.WorkerConfig{
			BatchSize:         a.config.Notifications.Worker.BatchSize,
			PollInterval:      a.config.Notifications.Worker.PollInterval,
			MaxAttempts:       a.config.Notifications.Retry.MaxAttempts,
			InitialBackoff:    a.config.Notifications.Retry.InitialBackoff,
			MaxBackoff:        a.config.Notifications.Retry.MaxBackoff,
			BackoffMultiplier: a.config.Notifications.Retry.BackoffMultiplier,
			NumWorkers:        a.config.Notifications.Worker.NumWorkers,
		}

		notificationWorker = notifications.NewWorker(workerConfig, notificationsRepo)
		notificationWorker.Start(ctx)

		go a.collectQueueMetrics(ctx, notificationsRepo)
	} else {
		slog.Warn("notification worker is disabled: queued notifications will not be delivered")
	}

	jobsRepo := jobspostgres.NewRepository(a.db)
	jobsService := jobs.NewService(jobsRepo, notificationsService)
	jobsHandler := jobs.NewHandler(jobsService)

	analyticsRepo := analyticspostgres.NewRepository(a.db)
	analyticsService := analytics.NewService(analyticsRepo)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// Browser navigation: the root resolver, the login page and the three
	// role-scoped regions.
	a.registerRegions(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(a.loginLimiter.Middleware).Post("/login", identityHandler.Login)
			r.Post("/logout", identityHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(httputil.RequireIdentity)

			identityHandler.RegisterProtectedRoutes(r)
			notificationsHandler.RegisterRoutes(r)
			jobsHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RoleStudent))
				jobsHandler.RegisterStudentRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RoleCompany, domain.RolePlacement))
				jobsHandler.RegisterRecruiterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RolePlacement))
				analyticsHandler.RegisterRoutes(r)
			})
		})
	})

	return r, notificationWorker, nil
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) versionHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"version":    version.Version,
		"commit":     version.GitCommit,
		"build_date": version.BuildDate,
	})
}

func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
