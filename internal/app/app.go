package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/auth"
	"github.com/haguru/sakura/internal/interfaces"
	storeMetrics "github.com/haguru/sakura/internal/metrics"
	"github.com/haguru/sakura/internal/middleware"
	"github.com/haguru/sakura/internal/routes"
	"github.com/haguru/sakura/internal/server"
	"github.com/haguru/sakura/internal/userrepo"
	fileUserRepo "github.com/haguru/sakura/internal/userrepo/file"
	mongoUserRepo "github.com/haguru/sakura/internal/userrepo/mongo"
	"github.com/haguru/sakura/internal/userrepo/redisstore"
	"github.com/haguru/sakura/internal/userrepo/s3store"
	"github.com/haguru/sakura/internal/userrepo/sqlstore"
	"github.com/haguru/sakura/internal/userservice"
	"github.com/haguru/sakura/pkg/clock"
	"github.com/haguru/sakura/pkg/databases/awss3"
	"github.com/haguru/sakura/pkg/databases/mongo"
	"github.com/haguru/sakura/pkg/databases/redisdb"
	"github.com/haguru/sakura/pkg/databases/sqldb"
	"github.com/haguru/sakura/pkg/metrics"
	"github.com/haguru/sakura/pkg/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	startupTimeout         = 30 * time.Second
)

// App wires the configuration, the user store and the HTTP server together.
type App struct {
	Server  interfaces.Server
	Config  *config.ServiceConfig
	Logger  interfaces.Logger
	Metrics interfaces.Metrics

	store   interfaces.UserRepository
	limiter *middleware.RateLimiter
	// closers release backend clients, run in reverse order on Close.
	closers []func(context.Context) error
}

// NewApp reads the config at configPath, opens the configured user store and
// registers every route.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName, cfg.LogFile)
	logger.SetLevel(cfg.LogLevel)

	return newApp(cfg, logger)
}

func newApp(cfg *config.ServiceConfig, logger interfaces.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewMetrics(cfg.ServiceName),
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.initializeUserRepo(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize user repository: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(cfg.Hasher.Cost)
	if err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	accountService := userservice.NewUserService(app.store, hasher, clock.NewRealClock(), logger)
	protect := middleware.APIKey(auth.NewAPIKeyGate(cfg.APIKey), logger)
	route := routes.NewRoute(app.Metrics, accountService, app.store, protect, structValidator.New(), logger)

	var limitLogin interfaces.Middleware
	if cfg.RateLimit.RequestsPerSecond > 0 {
		trusted, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			_ = app.Close(ctx)
			return nil, err
		}
		app.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, trusted...)
		limitLogin = app.limiter.Middleware
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	if err := app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to add metrics route: %w", err)
	}

	if err := route.AddRoutes(app.Server, cfg.APIPrefix, limitLogin); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	app.Server.Use(
		tracing(cfg.ServiceName),
		middleware.RequestID,
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.CORS,
		middleware.BodyLimit(middleware.DefaultMaxBodyBytes),
	)

	logger.Info("Routes registered",
		"prefix", cfg.APIPrefix,
		"database", cfg.Database.Type,
		"rate_limited", limitLogin != nil)

	return app, nil
}

func tracing(operation string) interfaces.Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation)
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests and
// releases the store.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		closeErr := app.Close(context.Background())
		if err != nil {
			return errors.Join(fmt.Errorf("failed to start server: %w", err), closeErr)
		}
		return closeErr
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received")
	}

	timeout := app.Config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := app.Server.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		shutdownErr = fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}
	return errors.Join(shutdownErr, <-serveErr, app.Close(shutdownCtx))
}

// Close stops the rate limiter and releases the store and its clients.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.limiter != nil {
		app.limiter.Stop()
		app.limiter = nil
	}
	if app.store != nil {
		if err := app.store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		app.store = nil
	}
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

func (app *App) initializeUserRepo(ctx context.Context) error {
	db := app.Config.Database

	var (
		userRepo interfaces.UserRepository
		err      error
	)

	switch db.Type {
	case config.DB_TYPE_FILE:
		userRepo, err = fileUserRepo.NewFileUserRepository(db.File.Path, app.Logger)

	case config.DB_TYPE_MONGO:
		client := mongo.NewMongoDB(db.MongoDB, app.Logger)
		if err = client.Connect(ctx, db.MongoDB.DSN); err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.closers = append(app.closers, client.Disconnect)

		collection, collErr := client.Collection(db.MongoDB.Collection)
		if collErr != nil {
			return collErr
		}
		userRepo, err = mongoUserRepo.NewMongoUserRepository(collection, db.MongoDB.DocumentID, app.Logger)

	case config.DB_TYPE_POSTGRES, config.DB_TYPE_SQLITE:
		client, dsn := sqldb.NewPostgresClient(db.Postgres.Options), db.Postgres.DSN
		if db.Type == config.DB_TYPE_SQLITE {
			client, dsn = sqldb.NewSQLiteClient(), db.SQLite.Path
		}
		if err = client.Connect(ctx, dsn); err != nil {
			return err
		}
		app.closers = append(app.closers, client.Disconnect)
		userRepo, err = sqlstore.NewSQLUserRepository(client.DB(), app.Logger)

	case config.DB_TYPE_S3:
		client, clientErr := awss3.NewClient(ctx, db.S3)
		if clientErr != nil {
			return clientErr
		}
		userRepo, err = s3store.NewS3UserRepository(client, db.S3.Bucket, db.S3.Key, app.Logger)

	case config.DB_TYPE_REDIS:
		client, clientErr := redisdb.NewClient(ctx, db.Redis)
		if clientErr != nil {
			return clientErr
		}
		app.closers = append(app.closers, func(context.Context) error { return client.Close() })
		userRepo, err = redisstore.NewRedisUserRepository(client, db.Redis.Key, app.Logger)

	default:
		return fmt.Errorf("unsupported database type: %s", db.Type)
	}
	if err != nil {
		return err
	}

	sm := storeMetrics.NewStoreMetrics(app.Config.ServiceName)
	if err := app.Metrics.Register(sm.Collectors()...); err != nil {
		return fmt.Errorf("failed to register store metrics: %w", err)
	}

	app.store = userrepo.NewInstrumentedRepository(userRepo, db.Type, sm, app.Logger)
	if err := app.store.Init(ctx); err != nil {
		return err
	}
	return nil
}
