package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-media-transfer/internal/uploader/adapter/inbound/http"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/adapter/outbound/ffmpeg"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/adapter/outbound/receiver"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/service"
	"github.com/anthanhphan/gosdk/logger"
)

type App struct {
	cfg     *config.Config
	service port.UploadService
	server  *httpHandler.Server
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Adapters
	loader := ffmpeg.NewLoader(cfg.Transcode)
	receiverAdapter, err := receiver.NewHTTPAdapter(cfg.Receiver, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init receiver client: %w", err)
	}

	// 4. Services
	engine := service.NewTranscodeEngine(cfg, loader)
	svc := service.NewUploadService(cfg, engine, receiverAdapter, receiverAdapter)

	// 5. Optional status server
	var server *httpHandler.Server
	if cfg.Metrics.Addr != "" {
		server = httpHandler.NewServer(cfg.Metrics.Addr, svc)
	}

	return &App{
		cfg:     cfg,
		service: svc,
		server:  server,
	}, nil
}

// Run uploads paths into groupID and prints the public URL of every file
// that succeeded. It fails only when no file succeeded.
func (a *App) Run(groupID string, paths []string, transcode bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.server != nil {
		go func() {
			logger.Infow("Status server starting", "addr", a.cfg.Metrics.Addr)
			if err := a.server.Start(); err != nil {
				logger.Errorw("Status server exited", "error", err.Error())
			}
		}()
		defer a.stopServer()
	}

	items, closeFiles, err := openBatch(paths, transcode)
	if err != nil {
		return err
	}
	defer closeFiles()

	unsubscribe := a.service.Subscribe(newStateLogger())
	defer unsubscribe()

	urls, err := a.service.UploadBatch(ctx, groupID, items)
	for _, u := range urls {
		fmt.Fprintln(os.Stdout, u)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAllFilesFailed) {
			logger.Errorw("No file was uploaded", "group_id", groupID, "error", err.Error())
		}
		return err
	}

	for _, f := range a.service.Snapshot().Files {
		if f.Status == domain.PhaseError {
			logger.Warnw("File failed", "file_name", f.FileName, "error", f.Error)
		}
	}
	return nil
}

func (a *App) stopServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("Status server shutdown error", "error", err.Error())
	}
}

// newStateLogger logs the aggregate state whenever its status or overall
// percentage changes.
func newStateLogger() func(domain.AggregateState) {
	lastStatus := domain.BatchStatus("")
	lastPercent := -1
	return func(s domain.AggregateState) {
		if s.Status == lastStatus && s.OverallPercent == lastPercent {
			return
		}
		lastStatus, lastPercent = s.Status, s.OverallPercent
		logger.Infow("Upload progress", "status", string(s.Status), "overall_percent", s.OverallPercent, "files", len(s.Files))
	}
}
