// Package server assembles the veildiary server: database and migrations,
// the optional Redis mapping cache, S3 presigning, metrics and the gRPC
// endpoint, and runs them until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/cache"
	"github.com/dmitrijs2005/veildiary/internal/server/config"
	"github.com/dmitrijs2005/veildiary/internal/server/metrics"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/veildiary/internal/server/services"
	"github.com/dmitrijs2005/veildiary/internal/server/storage"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/veildiary/internal/server/grpc"
)

const startupTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	metrics *metrics.Metrics
	grpc    *gs.GRPCServer
}

// NewApp connects to PostgreSQL, applies migrations and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) (*App, error) {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(startCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := repos.RunMigrations(startCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{config: c, logger: logger, db: db, metrics: metrics.New()}

	presigner, err := storage.NewS3Presigner(startCtx, storage.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	mappingCache := app.mappingCache(startCtx)

	ms := services.NewMappingService(db, repos, mappingCache, logger)
	svc := gs.Services{
		Users:    services.NewUserService(db, repos, c, logger),
		Profiles: services.NewProfileService(db, repos, presigner, logger),
		Mappings: ms,
		Entries:  services.NewEntryService(db, repos, ms, app.metrics, c.FeedLimit, logger),
	}
	app.grpc = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, app.metrics, c.SecretKey)

	return app, nil
}

// mappingCache connects to Redis when configured. An unreachable Redis is
// logged and kept: every failed call degrades to a cache miss.
func (app *App) mappingCache(ctx context.Context) cache.MappingCache {
	if app.config.RedisAddr == "" {
		return cache.Nop{}
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	if err := app.redis.Ping(ctx).Err(); err != nil {
		app.logger.Warn(ctx, "Failed to connect to Redis", "addr", app.config.RedisAddr, "error", err)
	} else {
		app.logger.Info(ctx, "Connected to Redis", "addr", app.config.RedisAddr)
	}

	return cache.NewRedisMappingCache(app.redis, app.config.MappingCacheTTL, app.logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := app.metrics.Serve(ctx, app.config.MetricsAddr); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
