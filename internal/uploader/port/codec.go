package port

import "context"

//go:generate mockgen -destination=../service/mocks/codec_mock.go -package=mocks -source=codec.go

// EncodeJob describes one file-to-file re-encode.
type EncodeJob struct {
	InputPath   string
	OutputPath  string
	BitrateKbps int
	SampleRate  int
	Channels    int
}

// CodecRuntime is a loaded codec engine.
type CodecRuntime interface {
	// Encode re-encodes InputPath into OutputPath, reporting 0-100 progress.
	Encode(ctx context.Context, job EncodeJob, onProgress func(percent int)) error
}

// RuntimeLoader brings a codec runtime up from its configured source.
type RuntimeLoader interface {
	Load(ctx context.Context) (CodecRuntime, error)
}
