package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-media-transfer/internal/receiver/adapter/inbound/http"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/adapter/outbound/disk"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/adapter/outbound/memory"
	redisSession "github.com/anthanhphan/go-media-transfer/internal/receiver/adapter/outbound/redis"
	s3Store "github.com/anthanhphan/go-media-transfer/internal/receiver/adapter/outbound/s3"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/config"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/service"
	"github.com/anthanhphan/go-media-transfer/pkg/idgen"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg            *config.Config
	server         *httpHandler.Server
	service        *service.ReceiverServiceImpl
	cleanup        *resilience.WorkerPool
	redis          *redis.Client
	backgroundStop context.CancelFunc
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Part staging
	parts, err := disk.NewPartStore(filepath.Join(cfg.Storage.DataDir, "parts"))
	if err != nil {
		return nil, fmt.Errorf("failed to init part store: %w", err)
	}

	// 4. Session tracking and key clock
	var (
		sessions    port.SessionTracker
		clock       idgen.Clock = idgen.SystemClock{}
		redisClient *redis.Client
	)
	switch cfg.Storage.Tracker {
	case config.TrackerRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redisSession.NewSessionTracker(redisClient, cfg.SessionTTL(), newBackendBreaker(config.TrackerRedis, cfg.Breaker, cfg.BreakerOpenTimeout()))
		clock = idgen.NewRedisClock(redisClient)
	default:
		sessions = memory.NewSessionTracker(cfg.SessionTTL())
	}

	keys, err := idgen.New(cfg.App.NodeID, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to init key generator: %w", err)
	}

	// 5. Object store
	var (
		objects   port.ObjectStore
		mediaRoot string
	)
	switch cfg.Storage.Backend {
	case config.BackendS3:
		initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		breaker := newBackendBreaker(config.BackendS3, cfg.Breaker, cfg.BreakerOpenTimeout())
		store, err := s3Store.New(initCtx, cfg.S3, filepath.Join(cfg.Storage.DataDir, "spool"), breaker)
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 store: %w", err)
		}
		objects = store
	default:
		store, err := disk.NewObjectStore(filepath.Join(cfg.Storage.DataDir, "objects"), filepath.Join(cfg.Storage.DataDir, "meta"))
		if err != nil {
			return nil, fmt.Errorf("failed to init object store: %w", err)
		}
		objects = store
		mediaRoot = store.Root()
	}

	// 6. Service
	cleanup := resilience.NewWorkerPool(cfg.App.CleanupWorkers, cfg.App.CleanupQueueSize)
	svc := service.NewReceiverService(cfg, parts, sessions, objects, keys, cleanup)

	// 7. HTTP Server
	server := httpHandler.NewServer(httpHandler.Options{
		Addr:        cfg.Server.Addr,
		MaxPartSize: cfg.App.MaxPartSize,
		MediaRoot:   mediaRoot,
		RequestLog:  cfg.Server.RequestLog,
	}, svc)

	return &App{
		cfg:     cfg,
		server:  server,
		service: svc,
		cleanup: cleanup,
		redis:   redisClient,
	}, nil
}

func (a *App) Run() error {
	logger.Infow("Receiver starting",
		"addr", a.cfg.Server.Addr,
		"backend", a.cfg.Storage.Backend,
		"tracker", a.cfg.Storage.Tracker,
		"max_part_size", a.cfg.App.MaxPartSize)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Start session sweeper
	bgCtx, cancel := context.WithCancel(context.Background())
	a.backgroundStop = cancel
	go a.service.RunSweeper(bgCtx, a.cfg.SweepInterval())

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Receiver HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down receiver")
	a.backgroundStop()

	ctx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	if err := a.server.Stop(ctx); err != nil {
		logger.Warnw("HTTP server shutdown error", "error", err.Error())
	}

	a.cleanup.Close()
	a.cleanup.Wait()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnw("Redis close failed", "error", err.Error())
		}
	}

	return runErr
}

// newBackendBreaker guards one remote storage backend and exports its state.
func newBackendBreaker(backend string, cfg config.BreakerConfig, openTimeout time.Duration) *resilience.CircuitBreaker {
	metrics.BackendCircuitState.WithLabelValues(backend).Set(0)
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:              backend,
		FailureThreshold:  cfg.FailureThreshold,
		SuccessThreshold:  1,
		OpenTimeout:       openTimeout,
		HalfOpenMaxFlight: 1,
		OnStateChange: func(name string, from, to resilience.CircuitBreakerState) {
			metrics.BackendCircuitState.WithLabelValues(name).Set(float64(to.Level()))
			logger.Warnw("Backend circuit state changed", "backend", name, "from", string(from), "to", string(to))
		},
	})
}
