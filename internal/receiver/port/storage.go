package port

import (
	"context"
	"io"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
)

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// UploadInfo describes a staged upload session on the part store.
type UploadInfo struct {
	UploadID string
	Parts    int
	Bytes    int64
	ModTime  time.Time
}

// PartStore stages received parts until they are assembled.
type PartStore interface {
	// WritePart stores r as the given part, replacing any previous copy.
	// A read error from r leaves the previous copy untouched.
	WritePart(ctx context.Context, uploadID string, partNumber int, r io.Reader) (int64, error)
	OpenPart(ctx context.Context, uploadID string, partNumber int) (io.ReadCloser, error)
	DeleteUpload(ctx context.Context, uploadID string) error
	ListUploads(ctx context.Context) ([]UploadInfo, error)
}

// SessionTracker remembers which parts of an upload have arrived.
type SessionTracker interface {
	RecordPart(ctx context.Context, uploadID string, partNumber int, size int64) error
	// Parts returns part number to size for the upload.
	Parts(ctx context.Context, uploadID string) (map[int]int64, error)
	Clear(ctx context.Context, uploadID string) error
}

// ObjectStore holds assembled media objects.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, meta domain.ObjectMeta) error
}
