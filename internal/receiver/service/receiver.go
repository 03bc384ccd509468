package service

import (
	"context"
	"io"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/config"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/pkg/idgen"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// ReceiverServiceImpl is a facade that composes receiver use-case services.
type ReceiverServiceImpl struct {
	cfg      *config.Config
	parts    port.PartStore
	sessions port.SessionTracker
	objects  port.ObjectStore
	keys     *idgen.Snowflake
	cleanup  *resilience.WorkerPool
	now      func() time.Time

	chunkUseCase    *chunkService
	assembleUseCase *assembleService
	sweeperUseCase  *sweeperService
}

// Ensure ReceiverServiceImpl implements port.ReceiverService.
var _ port.ReceiverService = (*ReceiverServiceImpl)(nil)

// NewReceiverService builds the receiver facade and all use-case services.
// cleanup runs part deletion after a successful assemble.
func NewReceiverService(
	cfg *config.Config,
	parts port.PartStore,
	sessions port.SessionTracker,
	objects port.ObjectStore,
	keys *idgen.Snowflake,
	cleanup *resilience.WorkerPool,
) *ReceiverServiceImpl {
	svc := &ReceiverServiceImpl{
		cfg:      cfg,
		parts:    parts,
		sessions: sessions,
		objects:  objects,
		keys:     keys,
		cleanup:  cleanup,
		now:      time.Now,
	}

	svc.chunkUseCase = newChunkService(svc)
	svc.assembleUseCase = newAssembleService(svc)
	svc.sweeperUseCase = newSweeperService(svc)

	return svc
}

// ReceivePart validates and stages one chunk.
func (s *ReceiverServiceImpl) ReceivePart(ctx context.Context, part domain.Part, payload io.Reader) (int64, error) {
	return s.chunkUseCase.receivePart(ctx, part, payload)
}

// Assemble builds the final object from staged parts.
func (s *ReceiverServiceImpl) Assemble(ctx context.Context, req domain.AssembleRequest) (string, error) {
	return s.assembleUseCase.assemble(ctx, req)
}

// SweepStale removes sessions idle for longer than the session TTL.
func (s *ReceiverServiceImpl) SweepStale(ctx context.Context) (port.SweepResult, error) {
	return s.sweeperUseCase.sweep(ctx)
}

// RunSweeper sweeps every interval until ctx ends.
func (s *ReceiverServiceImpl) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepStale(ctx); err != nil && ctx.Err() == nil {
				logger.Warnw("Session sweep failed", "error", err.Error())
			}
		}
	}
}
