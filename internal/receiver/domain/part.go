package domain

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrPartTooLarge    = errors.New("part exceeds maximum size")
	ErrInvalidChecksum = errors.New("invalid part checksum")
	ErrMissingParts    = errors.New("upload is missing parts")
	ErrSizeMismatch    = errors.New("assembled size does not match file size")
	ErrPartNotFound    = errors.New("part not found")
)

// Part identifies one received chunk of an upload session.
type Part struct {
	UploadID   string
	PartNumber int
	// TotalParts is informational; 0 when the sender omitted it.
	TotalParts int
	// Checksum is the CRC32 (IEEE) of the payload when HasChecksum is set.
	Checksum    uint32
	HasChecksum bool
}

// Validate checks identifiers only; payload checks happen while streaming.
func (p Part) Validate() error {
	if err := ValidateUploadID(p.UploadID); err != nil {
		return err
	}
	if p.PartNumber < 0 {
		return fmt.Errorf("%w: partNumber must be >= 0", ErrInvalidRequest)
	}
	if p.TotalParts < 0 || (p.TotalParts > 0 && p.PartNumber >= p.TotalParts) {
		return fmt.Errorf("%w: partNumber %d out of range for %d parts", ErrInvalidRequest, p.PartNumber, p.TotalParts)
	}
	return nil
}

// ValidateUploadID accepts only UUIDs, which also keeps ids safe as path elements.
func ValidateUploadID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: uploadId must be a UUID", ErrInvalidRequest)
	}
	return nil
}

// VerifyingReader enforces a size ceiling and, optionally, a CRC32 over the
// stream. Violations surface as read errors so writers can discard output.
type VerifyingReader struct {
	r        io.Reader
	hash     hash.Hash32
	n        int64
	max      int64
	checksum uint32
	check    bool
}

func NewVerifyingReader(r io.Reader, part Part, maxSize int64) *VerifyingReader {
	return &VerifyingReader{
		r:        r,
		hash:     crc32.NewIEEE(),
		max:      maxSize,
		checksum: part.Checksum,
		check:    part.HasChecksum,
	}
}

func (v *VerifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	v.n += int64(n)
	if v.max > 0 && v.n > v.max {
		return n, ErrPartTooLarge
	}
	v.hash.Write(p[:n])

	if errors.Is(err, io.EOF) {
		if v.n == 0 {
			return n, fmt.Errorf("%w: empty part", ErrInvalidRequest)
		}
		if v.check && v.hash.Sum32() != v.checksum {
			return n, ErrInvalidChecksum
		}
	}
	return n, err
}

// Size returns the bytes read so far.
func (v *VerifyingReader) Size() int64 {
	return v.n
}
