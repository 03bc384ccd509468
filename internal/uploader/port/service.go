package port

import (
	"context"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

// BatchItem is one caller-selected file of a batch.
type BatchItem struct {
	File             domain.MediaFile
	TranscodeEnabled bool
}

// Transcoder decides on and performs lossy re-encoding.
type Transcoder interface {
	// ShouldTranscode reports whether file is worth re-encoding.
	ShouldTranscode(file domain.MediaFile) bool

	// Transcode returns a new payload in the target codec.
	Transcode(ctx context.Context, req domain.TranscodeRequest) (domain.MediaFile, error)
}

// UploadService is the pipeline's caller-facing surface.
type UploadService interface {
	// UploadBatch runs every item in order against one group and returns the
	// public addresses of the files that succeeded.
	UploadBatch(ctx context.Context, groupID string, items []BatchItem) ([]string, error)

	// Snapshot returns the current aggregate state.
	Snapshot() domain.AggregateState

	// Subscribe registers fn for every state change.
	Subscribe(fn func(domain.AggregateState)) (unsubscribe func())

	// MarkProcessing flags post-upload record persistence by the caller.
	MarkProcessing()

	// MarkComplete ends the processing phase.
	MarkComplete()

	// Reset discards all jobs and returns the state to idle.
	Reset()
}
