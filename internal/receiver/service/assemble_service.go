package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"golang.org/x/sync/errgroup"
)

const partDeleteTimeout = 30 * time.Second

// assembleService turns a complete set of parts into one stored object.
type assembleService struct {
	core *ReceiverServiceImpl
}

func newAssembleService(core *ReceiverServiceImpl) *assembleService {
	return &assembleService{core: core}
}

func (s *assembleService) assemble(ctx context.Context, req domain.AssembleRequest) (string, error) {
	publicURL, size, err := s.build(ctx, req)
	metrics.AssembleTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	if err != nil {
		if !domain.IsClientError(err) {
			logger.Errorw("Assemble failed", "upload_id", req.UploadID, "file_name", req.FileName, "error", err.Error())
		}
		return "", err
	}

	metrics.AssembledBytesTotal.Add(float64(size))
	logger.Infow("Upload assembled",
		"upload_id", req.UploadID,
		"group_id", req.GroupID,
		"file_name", req.FileName,
		"sort_order", req.SortOrder,
		"bytes", size,
		"url", publicURL,
	)
	return publicURL, nil
}

func (s *assembleService) build(ctx context.Context, req domain.AssembleRequest) (string, int64, error) {
	if err := req.Validate(); err != nil {
		return "", 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.core.cfg.AssembleTimeout())
	defer cancel()

	sizes, err := s.core.sessions.Parts(ctx, req.UploadID)
	if err != nil {
		return "", 0, fmt.Errorf("load session %s: %w", req.UploadID, err)
	}
	if err := checkParts(req, sizes); err != nil {
		return "", 0, err
	}

	id, err := s.core.keys.NextKey()
	if err != nil {
		return "", 0, fmt.Errorf("generate object key: %w", err)
	}
	key := domain.ObjectKey(req.GroupID, id, req.FileName)
	meta := domain.ObjectMeta{
		GroupID:     req.GroupID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SortOrder:   req.SortOrder,
	}

	if err := s.upload(ctx, req, key, meta); err != nil {
		return "", 0, err
	}

	publicURL, err := url.JoinPath(s.core.cfg.Server.PublicBaseURL, key)
	if err != nil {
		return "", 0, fmt.Errorf("build public url: %w", err)
	}

	s.release(ctx, req.UploadID)
	return publicURL, req.FileSize, nil
}

// upload streams parts in order through a pipe into the object store.
func (s *assembleService) upload(ctx context.Context, req domain.AssembleRequest, key string, meta domain.ObjectMeta) error {
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.streamParts(gctx, req, pw)
		_ = pw.CloseWithError(err)
		return err
	})
	g.Go(func() error {
		err := s.core.objects.PutObject(gctx, key, pr, req.FileSize, meta)
		if err != nil {
			_ = pr.CloseWithError(err)
			return fmt.Errorf("put object %s: %w", key, err)
		}
		_ = pr.Close()
		return nil
	})

	return g.Wait()
}

func (s *assembleService) streamParts(ctx context.Context, req domain.AssembleRequest, w io.Writer) error {
	for part := range req.TotalParts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.copyPart(ctx, req.UploadID, part, w); err != nil {
			return err
		}
	}
	return nil
}

func (s *assembleService) copyPart(ctx context.Context, uploadID string, part int, w io.Writer) error {
	r, err := s.core.parts.OpenPart(ctx, uploadID, part)
	if err != nil {
		return fmt.Errorf("open part %d of %s: %w", part, uploadID, err)
	}
	defer func() { _ = r.Close() }()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copy part %d of %s: %w", part, uploadID, err)
	}
	return nil
}

// release forgets the session now and deletes staged parts in the background.
// Parts left behind by a failed delete are collected by the sweeper.
func (s *assembleService) release(ctx context.Context, uploadID string) {
	if err := s.core.sessions.Clear(ctx, uploadID); err != nil {
		logger.Warnw("Failed to clear upload session", "upload_id", uploadID, "error", err.Error())
	}

	err := s.core.cleanup.TrySubmit(func() {
		delCtx, cancel := context.WithTimeout(context.Background(), partDeleteTimeout)
		defer cancel()
		if err := s.core.parts.DeleteUpload(delCtx, uploadID); err != nil {
			logger.Warnw("Failed to delete staged parts", "upload_id", uploadID, "error", err.Error())
		}
	})
	if err != nil {
		reason := "queue full"
		if errors.Is(err, resilience.ErrWorkerPoolClosed) {
			reason = "pool closed"
		}
		logger.Warnw("Staged part cleanup deferred to sweeper", "upload_id", uploadID, "reason", reason)
	}
}

// checkParts requires parts 0..TotalParts-1 whose sizes add up to FileSize.
func checkParts(req domain.AssembleRequest, sizes map[int]int64) error {
	var missing []int
	var total int64
	for part := range req.TotalParts {
		size, ok := sizes[part]
		if !ok {
			missing = append(missing, part)
			continue
		}
		total += size
	}
	if len(missing) > 0 {
		return &domain.MissingPartsError{UploadID: req.UploadID, Missing: missing}
	}

	if extra := len(sizes) - req.TotalParts; extra > 0 {
		var unexpected []int
		for part := range sizes {
			if part >= req.TotalParts {
				unexpected = append(unexpected, part)
			}
		}
		slices.Sort(unexpected)
		logger.Warnw("Ignoring parts beyond totalParts", "upload_id", req.UploadID, "parts", unexpected)
	}

	if total != req.FileSize {
		return fmt.Errorf("%w: parts hold %d bytes, expected %d", domain.ErrSizeMismatch, total, req.FileSize)
	}
	return nil
}
