package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEngineLoad     = errors.New("codec engine failed to load")
	ErrTranscode      = errors.New("transcode failed")
	ErrChunkTransfer  = errors.New("chunk transfer failed")
	ErrFinalize       = errors.New("finalize failed")
	ErrAllFilesFailed = errors.New("all files failed")

	ErrEmptyFile        = errors.New("file is empty")
	ErrEmptyBatch       = errors.New("batch has no files")
	ErrBatchInProgress  = errors.New("a batch is already uploading")
	ErrMissingGroup     = errors.New("group id is required")
	ErrUnsupportedInput = errors.New("input format is not supported by the transcoder")
)

// EngineLoadError reports a codec runtime that could not initialize.
type EngineLoadError struct {
	Err error
}

func (e *EngineLoadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrEngineLoad, e.Err)
}

func (e *EngineLoadError) Unwrap() error { return e.Err }

func (e *EngineLoadError) Is(target error) bool { return target == ErrEngineLoad }

// TranscodeError reports a re-encode that failed after a successful load.
type TranscodeError struct {
	FileName string
	Err      error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("%v for %s: %v", ErrTranscode, e.FileName, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

func (e *TranscodeError) Is(target error) bool { return target == ErrTranscode }

// ChunkTransferError reports a network failure or timeout on one part.
type ChunkTransferError struct {
	UploadID   string
	PartNumber int
	Err        error
}

func (e *ChunkTransferError) Error() string {
	return fmt.Sprintf("%v (upload %s part %d): %v", ErrChunkTransfer, e.UploadID, e.PartNumber, e.Err)
}

func (e *ChunkTransferError) Unwrap() error { return e.Err }

func (e *ChunkTransferError) Is(target error) bool { return target == ErrChunkTransfer }

// FinalizeError reports a failed server-side assembly.
type FinalizeError struct {
	UploadID string
	Err      error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("%v (upload %s): %v", ErrFinalize, e.UploadID, e.Err)
}

func (e *FinalizeError) Unwrap() error { return e.Err }

func (e *FinalizeError) Is(target error) bool { return target == ErrFinalize }

// AllFilesFailedError is the only error a batch surfaces to its caller.
type AllFilesFailedError struct {
	Total    int
	Failures []error
}

func (e *AllFilesFailedError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("%v (%d files)", ErrAllFilesFailed, e.Total)
	}
	return fmt.Sprintf("%v (%d files), first error: %v", ErrAllFilesFailed, e.Total, e.Failures[0])
}

func (e *AllFilesFailedError) Unwrap() []error { return e.Failures }

func (e *AllFilesFailedError) Is(target error) bool { return target == ErrAllFilesFailed }
