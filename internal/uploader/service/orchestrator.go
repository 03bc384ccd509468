package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/gosdk/logger"
)

// orchestratorService runs the jobs of one batch strictly one at a time.
type orchestratorService struct {
	core       *UploadServiceImpl
	transcoder port.Transcoder
	transfer   *transferService
}

func newOrchestratorService(core *UploadServiceImpl, transcoder port.Transcoder, transfer *transferService) *orchestratorService {
	return &orchestratorService{core: core, transcoder: transcoder, transfer: transfer}
}

// uploadBatch advances every job to a terminal state in input order. A job's
// failure is recorded and never aborts the batch; only a batch where nothing
// succeeded returns an error.
func (s *orchestratorService) uploadBatch(ctx context.Context, groupID string, items []port.BatchItem) ([]string, error) {
	if groupID == "" {
		return nil, domain.ErrMissingGroup
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	jobs := make([]*domain.UploadJob, len(items))
	for i, item := range items {
		jobs[i] = domain.NewUploadJob(i, groupID, item.File, item.TranscodeEnabled)
	}
	if err := s.core.state.begin(jobs); err != nil {
		return nil, err
	}

	logger.Infow("Batch started", "group_id", groupID, "files", len(jobs))

	urls := make([]string, 0, len(jobs))
	var failures []error
	for _, job := range jobs {
		tracker := newProgressTracker(s.core.state, job.ID)

		publicURL, err := s.runJob(ctx, job, tracker)
		metrics.JobsTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
		if err != nil {
			tracker.fail(err)
			failures = append(failures, err)
			logger.Errorw("Upload job failed", "group_id", groupID, "file_name", job.File.Name, "sort_order", job.SortOrder, "error", err.Error())
			continue
		}

		tracker.complete(publicURL)
		urls = append(urls, publicURL)
	}

	if len(urls) == 0 {
		err := &domain.AllFilesFailedError{Total: len(jobs), Failures: failures}
		s.core.state.finish(err)
		logger.Errorw("Batch failed", "group_id", groupID, "files", len(jobs), "error", err.Error())
		return urls, err
	}

	s.core.state.finish(nil)
	logger.Infow("Batch completed", "group_id", groupID, "files", len(jobs), "succeeded", len(urls), "failed", len(failures))
	return urls, nil
}

// runJob takes one job through the optional transcode and the transfer.
func (s *orchestratorService) runJob(ctx context.Context, job *domain.UploadJob, tracker *progressTracker) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file := job.File
	if file.Size <= 0 {
		return "", domain.ErrEmptyFile
	}

	if job.TranscodeEnabled && s.transcoder.ShouldTranscode(file) {
		tracker.beginTranscode()

		tc := s.core.cfg.Transcode
		out, err := s.transcoder.Transcode(ctx, domain.TranscodeRequest{
			Input:       file,
			BitrateKbps: tc.BitrateKbps,
			SampleRate:  tc.SampleRate,
			Channels:    tc.Channels,
			OnProgress:  tracker.transcodeProgress,
		})
		switch {
		case err == nil:
			file = out
		case ctx.Err() != nil:
			return "", errors.Join(err, ctx.Err())
		default:
			metrics.TranscodeTotal.WithLabelValues(metrics.ResultFallback).Inc()
			logger.Warnw("Transcode failed, uploading original file", "file_name", file.Name, "error", err.Error())
		}
	}

	return s.transfer.transfer(ctx, job, file, tracker)
}
