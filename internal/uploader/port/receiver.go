package port

import (
	"context"
	"io"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
)

//go:generate mockgen -destination=../service/mocks/receiver_mock.go -package=mocks -source=receiver.go

// ProgressFunc receives byte-level progress for one in-flight chunk.
type ProgressFunc func(sent, total int64)

// ChunkUpload is one part handed to the chunk receiver.
type ChunkUpload struct {
	Descriptor domain.ChunkDescriptor
	Payload    io.Reader
}

// FinalizeRequest asks the backend to assemble parts 0..TotalParts-1.
type FinalizeRequest struct {
	UploadID    string `json:"uploadId"`
	TotalParts  int    `json:"totalParts"`
	GroupID     string `json:"groupId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	SortOrder   int    `json:"sortOrder"`
}

// ChunkReceiver accepts one chunk per call.
type ChunkReceiver interface {
	// SendChunk transmits one part. onProgress may be nil.
	SendChunk(ctx context.Context, chunk ChunkUpload, onProgress ProgressFunc) error
}

// Finalizer assembles previously received parts into one durable object.
type Finalizer interface {
	// Finalize returns the public address of the assembled object.
	Finalize(ctx context.Context, req FinalizeRequest) (string, error)
}
