package service

import (
	"context"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/google/uuid"
)

// UploadServiceImpl is the facade that wires the transcode, transfer and
// orchestration use-case services around one batch state.
type UploadServiceImpl struct {
	cfg         *config.Config
	state       *BatchState
	newUploadID func() string

	transferUseCase     *transferService
	orchestratorUseCase *orchestratorService
}

// Ensure UploadServiceImpl implements port.UploadService.
var _ port.UploadService = (*UploadServiceImpl)(nil)

// NewUploadService builds the upload service facade and all use-case services.
func NewUploadService(cfg *config.Config, transcoder port.Transcoder, receiver port.ChunkReceiver, finalizer port.Finalizer) *UploadServiceImpl {
	svc := &UploadServiceImpl{
		cfg:         cfg,
		state:       NewBatchState(),
		newUploadID: uuid.NewString,
	}

	svc.transferUseCase = newTransferService(svc, receiver, finalizer)
	svc.orchestratorUseCase = newOrchestratorService(svc, transcoder, svc.transferUseCase)

	return svc
}

// UploadBatch delegates batch sequencing to the orchestrator use-case service.
func (s *UploadServiceImpl) UploadBatch(ctx context.Context, groupID string, items []port.BatchItem) ([]string, error) {
	return s.orchestratorUseCase.uploadBatch(ctx, groupID, items)
}

// Snapshot returns the current aggregate state.
func (s *UploadServiceImpl) Snapshot() domain.AggregateState {
	return s.state.Snapshot()
}

// Subscribe registers fn for every aggregate state change.
func (s *UploadServiceImpl) Subscribe(fn func(domain.AggregateState)) func() {
	return s.state.Subscribe(fn)
}

// MarkProcessing flags caller-side record persistence after a completed batch.
func (s *UploadServiceImpl) MarkProcessing() {
	s.state.MarkProcessing()
}

// MarkComplete ends the processing phase.
func (s *UploadServiceImpl) MarkComplete() {
	s.state.MarkComplete()
}

// Reset discards the finished batch.
func (s *UploadServiceImpl) Reset() {
	s.state.Reset()
}
