package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/gosdk/logger"
)

const mp3Encoder = "libmp3lame"

var ErrEncoderMissing = errors.New("ffmpeg build has no " + mp3Encoder + " encoder")

// Loader resolves and verifies the ffmpeg and ffprobe binaries.
type Loader struct {
	ffmpegPath  string
	ffprobePath string
}

var _ port.RuntimeLoader = (*Loader)(nil)

// NewLoader creates a loader; empty paths are resolved from PATH on Load.
func NewLoader(cfg config.TranscodeConfig) *Loader {
	return &Loader{ffmpegPath: cfg.FFmpegPath, ffprobePath: cfg.FFprobePath}
}

// Load locates both binaries and checks that ffmpeg can encode MP3.
func (l *Loader) Load(ctx context.Context) (port.CodecRuntime, error) {
	ffmpegBin, err := resolveBinary(l.ffmpegPath, "ffmpeg")
	if err != nil {
		return nil, err
	}
	ffprobeBin, err := resolveBinary(l.ffprobePath, "ffprobe")
	if err != nil {
		return nil, err
	}

	encoders, err := exec.CommandContext(ctx, ffmpegBin, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg %s: %w", ffmpegBin, err)
	}
	if !bytes.Contains(encoders, []byte(mp3Encoder)) {
		return nil, ErrEncoderMissing
	}

	logger.Debugw("Resolved codec binaries", "ffmpeg", ffmpegBin, "ffprobe", ffprobeBin)
	return &Runtime{ffmpegPath: ffmpegBin, ffprobePath: ffprobeBin}, nil
}

func resolveBinary(configured, name string) (string, error) {
	if configured == "" {
		configured = name
	}
	path, err := exec.LookPath(configured)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", name, err)
	}
	return path, nil
}
