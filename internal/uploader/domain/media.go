package domain

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// MediaFile is one binary payload addressable by byte range.
type MediaFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.ReaderAt
}

// NewMemoryFile wraps an in-memory payload.
func NewMemoryFile(name, contentType string, data []byte) MediaFile {
	return MediaFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}

// Extension returns the lower-cased file extension including the dot.
func (f MediaFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Reader returns a reader over the whole payload.
func (f MediaFile) Reader() *io.SectionReader {
	return io.NewSectionReader(f.Content, 0, f.Size)
}

// ReplaceExtension keeps the base file name and swaps its extension.
func ReplaceExtension(name, ext string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
