package domain

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartCount(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		chunkSize int64
		want      int
	}{
		{name: "Empty", size: 0, chunkSize: 10, want: 0},
		{name: "SmallerThanChunk", size: 3, chunkSize: 10, want: 1},
		{name: "ExactMultiple", size: 20, chunkSize: 10, want: 2},
		{name: "Remainder", size: 21, chunkSize: 10, want: 3},
		{name: "DefaultChunkTenMiB", size: 10 * 1024 * 1024, chunkSize: 3670016, want: 3},
		{name: "InvalidChunkSize", size: 10, chunkSize: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartCount(tt.size, tt.chunkSize))
		})
	}
}

func TestPlan_TenMiBFile(t *testing.T) {
	const chunkSize = 3670016
	size := int64(10 * 1024 * 1024)

	parts := Plan("u-1", size, chunkSize)
	require.Len(t, parts, 3)

	assert.Equal(t, int64(0), parts[0].Start)
	assert.Equal(t, int64(chunkSize), parts[0].End)
	assert.Equal(t, int64(chunkSize), parts[1].Len())
	assert.Equal(t, size-2*chunkSize, parts[2].Len())
	for i, p := range parts {
		assert.Equal(t, i, p.PartNumber)
		assert.Equal(t, 3, p.TotalParts)
		assert.Equal(t, "u-1", p.UploadID)
	}
}

func TestPlan_ReassemblesOriginalBytes(t *testing.T) {
	for _, size := range []int64{1, 7, 64, 65, 1000, 4096, 4097} {
		for _, chunkSize := range []int64{1, 3, 64, 1024} {
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i*31 + int(size))
			}
			src := bytes.NewReader(data)

			var out bytes.Buffer
			var prevEnd int64
			for _, p := range Plan("u", size, chunkSize) {
				require.Equal(t, prevEnd, p.Start, "parts must be contiguous")
				require.LessOrEqual(t, p.Len(), chunkSize)
				require.Positive(t, p.Len())
				_, err := io.Copy(&out, io.NewSectionReader(src, p.Start, p.Len()))
				require.NoError(t, err)
				prevEnd = p.End
			}

			assert.Equal(t, size, prevEnd)
			assert.Equal(t, data, out.Bytes(), "size=%d chunk=%d", size, chunkSize)
		}
	}
}
