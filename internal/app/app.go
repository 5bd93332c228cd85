package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/herathmmr/stash/internal/config"
	"github.com/herathmmr/stash/internal/content"
	"github.com/herathmmr/stash/internal/httpserver"
	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/redis"
	"github.com/herathmmr/stash/internal/saved"
	"github.com/herathmmr/stash/internal/scheduler"
	"github.com/herathmmr/stash/internal/sources/categories"
	"github.com/herathmmr/stash/internal/store/memory"
	redisstore "github.com/herathmmr/stash/internal/store/redis"
	"github.com/herathmmr/stash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	fallback    *memory.Store
	reloader    *scheduler.CategoriesReloader
	flusher     *scheduler.FlushScheduler
	sweeper     *scheduler.PendingSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is the durable backend but not a hard dependency: when it cannot
	// be reached on startup the service runs from memory and the flush
	// scheduler reconciles once it comes back.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Redis unavailable, starting in degraded mode: %v", err)
		redisClient = nil
	} else {
		loggerClient.Info("Redis initialized successfully")
	}

	// In-memory fallback mirror, always present.
	fallback := memory.NewStore()

	var durable saved.Store
	if redisClient != nil {
		durable = redisstore.NewStore(redisClient, loggerClient)
	}

	// Content API client for save-time snapshots.
	contentClient := content.NewClient(cfg.ContentAPIURL, cfg.ContentTimeout)

	// Category catalog (optional, driven by categories.yaml).
	var catalog *categories.Catalog
	var reloader *scheduler.CategoriesReloader
	var reloadTrigger chan struct{}
	if cfg.CategoriesFile != "" {
		loggerClient.Info("categories file configured, initializing reloader",
			logger.String("file", cfg.CategoriesFile))
		catalog = categories.NewCatalog()
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewCategoriesReloader(
			cfg.CategoriesFile,
			catalog,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("categories file not configured, category checks disabled")
	}

	savedService := saved.NewService(durable, fallback, contentClient, loggerClient, saved.Options{
		DeleteConfirmTTL: cfg.DeleteConfirmTTL,
		Categories:       catalogOrNil(catalog),
	})

	var flusher *scheduler.FlushScheduler
	if durable != nil {
		flusher = scheduler.NewFlushScheduler(durable, fallback, loggerClient, cfg.FlushInterval)
	}

	sweeper := scheduler.NewPendingSweeper(savedService, loggerClient, cfg.SweepInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Saved:           savedService,
		RedisClient:     redisClient,
		Fallback:        fallback,
		Catalog:         catalog,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AdminCIDRS,
		AllowedOrigins:  cfg.AllowedOrigins,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		fallback:    fallback,
		reloader:    reloader,
		flusher:     flusher,
		sweeper:     sweeper,
	}
}

// catalogOrNil keeps the CategorySet interface nil when categories are
// disabled, instead of a typed nil pointer.
func catalogOrNil(c *categories.Catalog) saved.CategorySet {
	if c == nil {
		return nil
	}
	return c
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Stash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Stash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start categories reloader (loads categories and starts periodic refresh)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start categories reloader: %w", err)
		}
		a.logger.Info("categories reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start flush scheduler (reconciles degraded-mode writes)
	if a.flusher != nil {
		a.flusher.Start(ctx)
		a.logger.Info("flush scheduler started",
			logger.Duration("interval", a.cfg.FlushInterval))
	}

	// Start delete-confirmation sweeper
	a.sweeper.Start(ctx)
	a.logger.Info("delete sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.flusher != nil {
		a.flusher.Stop()
	}
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Stash stopped cleanly")
	return nil
}
