package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/gosdk/logger"
)

// stderrTail bounds how much encoder output ends up in an error message.
const stderrTail = 512

// Runtime runs ffmpeg as an external process per encode.
type Runtime struct {
	ffmpegPath  string
	ffprobePath string
}

var _ port.CodecRuntime = (*Runtime)(nil)

// Encode re-encodes job.InputPath to MP3, reporting progress from ffmpeg's
// machine-readable progress stream.
func (r *Runtime) Encode(ctx context.Context, job port.EncodeJob, onProgress func(percent int)) error {
	duration, err := r.probeDuration(ctx, job.InputPath)
	if err != nil {
		// Progress degrades to start/end only.
		logger.Debugw("Duration probe failed", "input", job.InputPath, "error", err.Error())
	}

	cmd := exec.CommandContext(ctx, r.ffmpegPath, buildEncodeArgs(job)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	readErr := consumeProgress(stdout, duration, onProgress)
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg exited: %w: %s", err, tail(stderr.String(), stderrTail))
	}
	if readErr != nil {
		return fmt.Errorf("read ffmpeg progress: %w", readErr)
	}
	return nil
}

func (r *Runtime) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := exec.CommandContext(ctx, r.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return parseProbeDuration(out)
}

// buildEncodeArgs constructs the ffmpeg arguments for an audio-only MP3 encode.
func buildEncodeArgs(job port.EncodeJob) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-progress", "pipe:1",
		"-nostats",
		"-i", job.InputPath,
		"-vn",
		"-map_metadata", "-1",
		"-c:a", mp3Encoder,
		"-b:a", strconv.Itoa(job.BitrateKbps) + "k",
		"-ar", strconv.Itoa(job.SampleRate),
		"-ac", strconv.Itoa(job.Channels),
		"-f", "mp3",
		job.OutputPath,
	}
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
