package receiver

import (
	"io"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
)

// countingReader reports cumulative bytes read from the request body, which
// is what the transport has handed to the connection.
type countingReader struct {
	r          io.Reader
	sent       int64
	total      int64
	onProgress port.ProgressFunc
}

func newCountingReader(r io.Reader, total int64, onProgress port.ProgressFunc) *countingReader {
	return &countingReader{r: r, total: total, onProgress: onProgress}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.onProgress != nil {
			c.onProgress(c.sent, c.total)
		}
	}
	return n, err
}
