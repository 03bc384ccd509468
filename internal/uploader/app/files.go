package app

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/gosdk/logger"
)

const fallbackContentType = "application/octet-stream"

// audioContentTypes covers audio extensions that system MIME tables often lack.
var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".weba": "audio/webm",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aif":  "audio/aiff",
	".aiff": "audio/aiff",
	".wma":  "audio/x-ms-wma",
	".amr":  "audio/amr",
	".3gp":  "audio/3gpp",
	".caf":  "audio/x-caf",
}

// openBatch opens every path as a batch item. Paths that cannot be read as
// regular files are skipped with a warning; it fails only when none is left.
// The returned close function releases all opened files.
func openBatch(paths []string, transcode bool) ([]port.BatchItem, func(), error) {
	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	items := make([]port.BatchItem, 0, len(paths))
	for _, path := range paths {
		f, info, err := openRegular(path)
		if err != nil {
			logger.Warnw("Skipping file", "path", path, "error", err.Error())
			continue
		}
		files = append(files, f)

		items = append(items, port.BatchItem{
			File: domain.MediaFile{
				Name:        filepath.Base(path),
				ContentType: contentTypeOf(path),
				Size:        info.Size(),
				Content:     f,
			},
			TranscodeEnabled: transcode,
		})
	}

	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: none of %d paths could be opened", domain.ErrEmptyBatch, len(paths))
	}
	return items, closeAll, nil
}

func openRegular(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, errors.New(path + " is a directory")
	}
	return f, info, nil
}

func contentTypeOf(path string) string {
	if ct, ok := audioContentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return fallbackContentType
}
