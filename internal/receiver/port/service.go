package port

import (
	"context"
	"io"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

// SweepResult summarizes one pass over abandoned sessions.
type SweepResult struct {
	Scanned      int
	Removed      int
	BytesFreed   int64
	SkippedFresh int
}

// ReceiverService is the receiving side of the chunked transfer protocol.
type ReceiverService interface {
	// ReceivePart stores one chunk and returns its size.
	ReceivePart(ctx context.Context, part domain.Part, payload io.Reader) (int64, error)
	// Assemble concatenates all parts into one object and returns its public URL.
	Assemble(ctx context.Context, req domain.AssembleRequest) (string, error)
	SweepStale(ctx context.Context) (SweepResult, error)
}
