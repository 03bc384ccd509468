package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/gosdk/logger"
)

// transferService slices a payload into fixed-size parts, sends them one at
// a time and asks the backend to assemble them.
type transferService struct {
	core      *UploadServiceImpl
	receiver  port.ChunkReceiver
	finalizer port.Finalizer
}

func newTransferService(core *UploadServiceImpl, receiver port.ChunkReceiver, finalizer port.Finalizer) *transferService {
	return &transferService{core: core, receiver: receiver, finalizer: finalizer}
}

// transfer delivers file for job and returns the assembled object's address.
func (s *transferService) transfer(ctx context.Context, job *domain.UploadJob, file domain.MediaFile, tracker *progressTracker) (string, error) {
	if file.Size <= 0 {
		return "", domain.ErrEmptyFile
	}

	uploadID := s.core.newUploadID()
	parts := domain.Plan(uploadID, file.Size, s.core.cfg.App.ChunkSize)
	tracker.beginUpload(uploadID)

	logger.Infow("Transfer started",
		"upload_id", uploadID,
		"file_name", file.Name,
		"size_bytes", file.Size,
		"parts", len(parts),
	)

	for _, part := range parts {
		if err := s.sendPart(ctx, file, part, tracker); err != nil {
			return "", err
		}
	}

	publicURL, err := s.finalize(ctx, port.FinalizeRequest{
		UploadID:    uploadID,
		TotalParts:  len(parts),
		GroupID:     job.GroupID,
		FileName:    file.Name,
		ContentType: file.ContentType,
		FileSize:    file.Size,
		SortOrder:   job.SortOrder,
	})
	if err != nil {
		return "", err
	}

	logger.Infow("Transfer completed", "upload_id", uploadID, "file_name", file.Name, "public_url", publicURL)
	return publicURL, nil
}

// sendPart blocks until the receiver acknowledged or rejected one part.
func (s *transferService) sendPart(ctx context.Context, file domain.MediaFile, part domain.ChunkDescriptor, tracker *progressTracker) error {
	chunkCtx, cancel := context.WithTimeout(ctx, s.core.cfg.ChunkTimeout())
	defer cancel()

	start := time.Now()
	chunk := port.ChunkUpload{
		Descriptor: part,
		Payload:    io.NewSectionReader(file.Content, part.Start, part.Len()),
	}
	err := s.receiver.SendChunk(chunkCtx, chunk, func(sent, total int64) {
		if total <= 0 {
			total = part.Len()
		}
		tracker.chunkProgress(part.PartNumber, float64(sent)/float64(total), part.TotalParts)
	})

	metrics.ChunkDuration.Observe(time.Since(start).Seconds())
	metrics.ChunksTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	if err != nil {
		if errors.Is(chunkCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(err, context.DeadlineExceeded)
		}
		logger.Errorw("Chunk transfer failed",
			"upload_id", part.UploadID,
			"part", part.PartNumber,
			"total_parts", part.TotalParts,
			"error", err.Error(),
		)
		return &domain.ChunkTransferError{UploadID: part.UploadID, PartNumber: part.PartNumber, Err: err}
	}

	metrics.ChunkBytesTotal.Add(float64(part.Len()))
	tracker.chunkProgress(part.PartNumber, 1, part.TotalParts)
	return nil
}

func (s *transferService) finalize(ctx context.Context, req port.FinalizeRequest) (string, error) {
	publicURL, err := s.finalizer.Finalize(ctx, req)
	if err == nil && publicURL == "" {
		err = errors.New("finalizer returned no public url")
	}
	metrics.FinalizeTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	if err != nil {
		logger.Errorw("Finalize failed", "upload_id", req.UploadID, "file_name", req.FileName, "error", err.Error())
		return "", &domain.FinalizeError{UploadID: req.UploadID, Err: err}
	}
	return publicURL, nil
}
