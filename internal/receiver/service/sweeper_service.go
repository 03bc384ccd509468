package service

import (
	"context"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/gosdk/logger"
)

// sweeperService removes upload sessions that were never finalized.
type sweeperService struct {
	core *ReceiverServiceImpl
}

func newSweeperService(core *ReceiverServiceImpl) *sweeperService {
	return &sweeperService{core: core}
}

// sweep scans staged uploads and evicts those idle past the session TTL.
func (s *sweeperService) sweep(ctx context.Context) (port.SweepResult, error) {
	var result port.SweepResult

	uploads, err := s.core.parts.ListUploads(ctx)
	if err != nil {
		return result, err
	}

	ttl := s.core.cfg.SessionTTL()
	cutoff := s.core.now().Add(-ttl)
	logger.Infow("Session sweep started", "staged_uploads", len(uploads), "ttl", ttl.String())

	for _, upload := range uploads {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Scanned++
		if upload.ModTime.After(cutoff) {
			result.SkippedFresh++
			continue
		}
		if s.evict(ctx, upload) {
			result.Removed++
			result.BytesFreed += upload.Bytes
		}
	}

	metrics.SweptSessionsTotal.Add(float64(result.Removed))
	logger.Infow("Session sweep finished", "removed", result.Removed, "bytes_freed", result.BytesFreed, "fresh", result.SkippedFresh)
	return result, nil
}

// evict deletes one abandoned upload and its session record.
func (s *sweeperService) evict(ctx context.Context, upload port.UploadInfo) bool {
	logger.Infow("Sweeping abandoned upload", "upload_id", upload.UploadID, "parts", upload.Parts, "last_write", upload.ModTime)
	if err := s.core.parts.DeleteUpload(ctx, upload.UploadID); err != nil {
		logger.Warnw("Sweep delete failed", "upload_id", upload.UploadID, "error", err.Error())
		return false
	}
	if err := s.core.sessions.Clear(ctx, upload.UploadID); err != nil {
		logger.Warnw("Sweep session clear failed", "upload_id", upload.UploadID, "error", err.Error())
	}
	return true
}
