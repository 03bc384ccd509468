package ffmpeg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// readProgress consumes ffmpeg's "-progress" key=value stream until EOF.
// Percentages come from out_time_us over the probed duration; without a
// duration only the final "progress=end" is reported.
func readProgress(r io.Reader, duration time.Duration, onProgress func(int)) error {
	scanner := bufio.NewScanner(r)
	last := -1
	report := func(p int) {
		p = min(max(p, 0), 100)
		if p > last {
			last = p
			onProgress(p)
		}
	}

	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}

		switch key {
		// out_time_ms carries microseconds as well.
		case "out_time_us", "out_time_ms":
			if duration <= 0 {
				continue
			}
			us, err := strconv.ParseInt(value, 10, 64)
			if err != nil || us < 0 {
				continue
			}
			elapsed := time.Duration(us) * time.Microsecond
			// Hold 100 back for the end marker.
			report(min(int(elapsed*100/duration), 99))
		case "progress":
			if value == "end" {
				report(100)
			}
		}
	}
	return scanner.Err()
}

// consumeProgress reads the progress stream and then drains whatever is left,
// so ffmpeg never blocks writing to stdout after parsing stops early.
func consumeProgress(r io.Reader, duration time.Duration, onProgress func(int)) error {
	err := readProgress(r, duration, onProgress)
	_, _ = io.Copy(io.Discard, r)
	return err
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseProbeDuration reads format.duration from ffprobe JSON output.
func parseProbeDuration(data []byte) (time.Duration, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", out.Format.Duration)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
