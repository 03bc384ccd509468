package domain

import "fmt"

// ChunkDescriptor addresses one contiguous part of a payload.
// The byte range is [Start, End).
type ChunkDescriptor struct {
	UploadID   string
	PartNumber int
	TotalParts int
	Start      int64
	End        int64
}

// Len returns the number of bytes in the part.
func (c ChunkDescriptor) Len() int64 {
	return c.End - c.Start
}

func (c ChunkDescriptor) String() string {
	return fmt.Sprintf("%s#%d/%d[%d:%d]", c.UploadID, c.PartNumber, c.TotalParts, c.Start, c.End)
}

// PartCount returns ceil(size / chunkSize).
func PartCount(size, chunkSize int64) int {
	if size <= 0 || chunkSize <= 0 {
		return 0
	}
	return int((size + chunkSize - 1) / chunkSize)
}

// Describe returns the descriptor of part number partNumber.
func Describe(uploadID string, partNumber int, size, chunkSize int64) ChunkDescriptor {
	start := int64(partNumber) * chunkSize
	end := min(start+chunkSize, size)
	return ChunkDescriptor{
		UploadID:   uploadID,
		PartNumber: partNumber,
		TotalParts: PartCount(size, chunkSize),
		Start:      start,
		End:        end,
	}
}

// Plan returns every part of a payload in transmission order.
func Plan(uploadID string, size, chunkSize int64) []ChunkDescriptor {
	total := PartCount(size, chunkSize)
	parts := make([]ChunkDescriptor, 0, total)
	for i := 0; i < total; i++ {
		parts = append(parts, Describe(uploadID, i, size, chunkSize))
	}
	return parts
}
