package service

import (
	"context"
	"fmt"
	"io"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/gosdk/logger"
)

// chunkService stages incoming parts.
type chunkService struct {
	core *ReceiverServiceImpl
}

func newChunkService(core *ReceiverServiceImpl) *chunkService {
	return &chunkService{core: core}
}

// receivePart stores the payload, replacing an earlier copy of the same part,
// then records it on the session.
func (s *chunkService) receivePart(ctx context.Context, part domain.Part, payload io.Reader) (int64, error) {
	n, err := s.store(ctx, part, payload)
	metrics.PartsReceivedTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	if err != nil {
		return 0, err
	}

	metrics.PartBytesTotal.Add(float64(n))
	logger.Debugw("Part received", "upload_id", part.UploadID, "part_number", part.PartNumber, "total_parts", part.TotalParts, "bytes", n)
	return n, nil
}

func (s *chunkService) store(ctx context.Context, part domain.Part, payload io.Reader) (int64, error) {
	if err := part.Validate(); err != nil {
		return 0, err
	}

	verifier := domain.NewVerifyingReader(payload, part, s.core.cfg.App.MaxPartSize)
	n, err := s.core.parts.WritePart(ctx, part.UploadID, part.PartNumber, verifier)
	if err != nil {
		if !domain.IsClientError(err) {
			logger.Errorw("Failed to write part", "upload_id", part.UploadID, "part_number", part.PartNumber, "error", err.Error())
		}
		return 0, fmt.Errorf("write part %d of %s: %w", part.PartNumber, part.UploadID, err)
	}

	if err := s.core.sessions.RecordPart(ctx, part.UploadID, part.PartNumber, n); err != nil {
		logger.Errorw("Failed to record part", "upload_id", part.UploadID, "part_number", part.PartNumber, "error", err.Error())
		return 0, fmt.Errorf("record part %d of %s: %w", part.PartNumber, part.UploadID, err)
	}
	return n, nil
}
