package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBatch(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "intro.mp3")
	second := filepath.Join(dir, "notes.unknownext")
	require.NoError(t, os.WriteFile(first, []byte("mp3-data"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("xyz"), 0o644))

	items, closeFiles, err := openBatch([]string{first, second}, true)
	require.NoError(t, err)
	defer closeFiles()

	require.Len(t, items, 2)
	assert.Equal(t, "intro.mp3", items[0].File.Name)
	assert.Equal(t, "audio/mpeg", items[0].File.ContentType)
	assert.Equal(t, int64(8), items[0].File.Size)
	assert.True(t, items[0].TranscodeEnabled)
	assert.Equal(t, fallbackContentType, items[1].File.ContentType)

	got, err := io.ReadAll(items[0].File.Reader())
	require.NoError(t, err)
	assert.Equal(t, "mp3-data", string(got))
}

func TestOpenBatch_SkipsUnreadablePaths(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "keep.wav")
	require.NoError(t, os.WriteFile(good, []byte("RIFF"), 0o644))

	items, closeFiles, err := openBatch([]string{
		filepath.Join(dir, "missing.wav"),
		good,
		t.TempDir(),
	}, false)
	require.NoError(t, err)
	defer closeFiles()

	require.Len(t, items, 1)
	assert.Equal(t, "keep.wav", items[0].File.Name)
	assert.Equal(t, "audio/wav", items[0].File.ContentType)
}

func TestOpenBatch_NothingReadable(t *testing.T) {
	_, _, err := openBatch([]string{filepath.Join(t.TempDir(), "missing.wav"), t.TempDir()}, false)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.ErrorContains(t, err, "none of 2 paths")
}

func TestContentTypeOf(t *testing.T) {
	assert.Equal(t, "audio/wav", contentTypeOf("/a/b/Take 1.WAV"))
	assert.Equal(t, "audio/flac", contentTypeOf("x.flac"))
	assert.Equal(t, fallbackContentType, contentTypeOf("noext"))
}
