package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/go-media-transfer/pkg/lazy"
	"github.com/anthanhphan/go-media-transfer/pkg/metrics"
	"github.com/anthanhphan/gosdk/logger"
)

type formatClass int

const (
	formatUnsupported formatClass = iota
	formatOptimal
	formatLossless
	formatSupported
)

var contentTypeFormats = map[string]formatClass{
	"audio/mpeg":     formatOptimal,
	"audio/mp3":      formatOptimal,
	"audio/mp4":      formatOptimal,
	"audio/x-m4a":    formatOptimal,
	"audio/aac":      formatOptimal,
	"audio/ogg":      formatOptimal,
	"audio/opus":     formatOptimal,
	"audio/webm":     formatOptimal,
	"audio/wav":      formatLossless,
	"audio/x-wav":    formatLossless,
	"audio/wave":     formatLossless,
	"audio/vnd.wave": formatLossless,
	"audio/flac":     formatLossless,
	"audio/x-flac":   formatLossless,
	"audio/aiff":     formatLossless,
	"audio/x-aiff":   formatLossless,
	"audio/x-ms-wma": formatSupported,
	"audio/amr":      formatSupported,
	"audio/3gpp":     formatSupported,
	"audio/x-caf":    formatSupported,
}

var extensionFormats = map[string]formatClass{
	".mp3":  formatOptimal,
	".m4a":  formatOptimal,
	".aac":  formatOptimal,
	".ogg":  formatOptimal,
	".opus": formatOptimal,
	".weba": formatOptimal,
	".wav":  formatLossless,
	".flac": formatLossless,
	".aif":  formatLossless,
	".aiff": formatLossless,
	".wma":  formatSupported,
	".amr":  formatSupported,
	".3gp":  formatSupported,
	".caf":  formatSupported,
}

// classifyFormat resolves the content type first and the extension second.
func classifyFormat(file domain.MediaFile) formatClass {
	contentType, _, _ := strings.Cut(file.ContentType, ";")
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if class, ok := contentTypeFormats[contentType]; ok {
		return class
	}
	if class, ok := extensionFormats[file.Extension()]; ok {
		return class
	}
	return formatUnsupported
}

// TranscodeEngine re-encodes audio to MP3 through a lazily loaded codec
// runtime shared by every caller of the engine.
type TranscodeEngine struct {
	threshold  int64
	scratchDir string
	runtime    *lazy.Value[port.CodecRuntime]
}

var _ port.Transcoder = (*TranscodeEngine)(nil)

// NewTranscodeEngine creates an engine. Nothing is loaded until the first
// Transcode call.
func NewTranscodeEngine(cfg *config.Config, loader port.RuntimeLoader) *TranscodeEngine {
	return &TranscodeEngine{
		threshold:  cfg.App.TranscodeThreshold,
		scratchDir: cfg.Transcode.ScratchDir,
		runtime: lazy.New(func(ctx context.Context) (port.CodecRuntime, error) {
			start := time.Now()
			runtime, err := loader.Load(ctx)
			metrics.CodecLoadsTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
			if err != nil {
				logger.Errorw("Codec runtime load failed", "error", err.Error())
				return nil, err
			}
			logger.Infow("Codec runtime loaded", "duration_ms", time.Since(start).Milliseconds())
			return runtime, nil
		}),
	}
}

// ShouldTranscode reports whether file is worth re-encoding before transfer.
func (e *TranscodeEngine) ShouldTranscode(file domain.MediaFile) bool {
	switch classifyFormat(file) {
	case formatLossless:
		return true
	case formatSupported:
		return file.Size > e.threshold
	default:
		return false
	}
}

// Transcode re-encodes req.Input and returns the MP3 payload. Failures are
// *domain.EngineLoadError or *domain.TranscodeError; the caller decides on
// falling back to the original file.
func (e *TranscodeEngine) Transcode(ctx context.Context, req domain.TranscodeRequest) (domain.MediaFile, error) {
	req = req.WithDefaults()
	start := time.Now()

	if classifyFormat(req.Input) == formatUnsupported {
		metrics.TranscodeTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return domain.MediaFile{}, &domain.TranscodeError{FileName: req.Input.Name, Err: domain.ErrUnsupportedInput}
	}

	runtime, err := e.runtime.Get(ctx)
	if err != nil {
		metrics.TranscodeTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return domain.MediaFile{}, &domain.EngineLoadError{Err: err}
	}

	out, err := e.encode(ctx, runtime, req)
	metrics.TranscodeTotal.WithLabelValues(metrics.ResultLabel(err)).Inc()
	if err != nil {
		return domain.MediaFile{}, &domain.TranscodeError{FileName: req.Input.Name, Err: err}
	}
	metrics.TranscodeDuration.Observe(time.Since(start).Seconds())

	req.Report(100)
	logger.Infow("Transcode completed",
		"file_name", req.Input.Name,
		"output_name", out.Name,
		"input_bytes", req.Input.Size,
		"output_bytes", out.Size,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// encode runs one re-encode inside its own scratch directory.
func (e *TranscodeEngine) encode(ctx context.Context, runtime port.CodecRuntime, req domain.TranscodeRequest) (domain.MediaFile, error) {
	dir, err := os.MkdirTemp(e.scratchDir, "transcode-*")
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Debugw("Scratch cleanup failed", "dir", dir, "error", err.Error())
		}
	}()

	inputExt := req.Input.Extension()
	if inputExt == "" {
		inputExt = ".bin"
	}
	inputPath := filepath.Join(dir, "input"+inputExt)
	outputPath := filepath.Join(dir, "output"+domain.TargetExtension)

	if err := writeScratchInput(inputPath, req.Input); err != nil {
		return domain.MediaFile{}, err
	}

	last := -1
	onProgress := func(percent int) {
		percent = clampPercent(percent)
		if percent <= last {
			return
		}
		last = percent
		req.Report(percent)
	}

	job := port.EncodeJob{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		BitrateKbps: req.BitrateKbps,
		SampleRate:  req.SampleRate,
		Channels:    req.Channels,
	}
	if err := runtime.Encode(ctx, job, onProgress); err != nil {
		return domain.MediaFile{}, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("failed to read encoder output: %w", err)
	}
	if len(data) == 0 {
		return domain.MediaFile{}, errors.New("encoder produced no output")
	}

	return domain.NewMemoryFile(
		domain.ReplaceExtension(req.Input.Name, domain.TargetExtension),
		domain.TargetContentType,
		data,
	), nil
}

func writeScratchInput(path string, file domain.MediaFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scratch input: %w", err)
	}
	if _, err := io.Copy(f, file.Reader()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write scratch input: %w", err)
	}
	return f.Close()
}
