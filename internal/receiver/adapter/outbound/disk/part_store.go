package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/spaolacci/murmur3"
)

const partSuffix = ".part"

var _ port.PartStore = (*PartStore)(nil)

// PartStore stages parts as files under root/<bucket>/<uploadId>/<n>.part.
// The bucket is derived from a murmur3 hash of the upload id to keep
// directory fan-out bounded.
type PartStore struct {
	root string
}

func NewPartStore(root string) (*PartStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create part root: %w", err)
	}
	return &PartStore{root: root}, nil
}

func bucketOf(uploadID string) string {
	return fmt.Sprintf("%02x", murmur3.Sum32([]byte(uploadID))&0xff)
}

func (s *PartStore) uploadDir(uploadID string) (string, error) {
	if err := domain.ValidateUploadID(uploadID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, bucketOf(uploadID), uploadID), nil
}

func partName(partNumber int) string {
	return fmt.Sprintf("%06d%s", partNumber, partSuffix)
}

// WritePart writes to a temp file and renames it over the part, so a failed
// or rejected write never replaces an accepted copy.
func (s *PartStore) WritePart(ctx context.Context, uploadID string, partNumber int, r io.Reader) (int64, error) {
	dir, err := s.uploadDir(uploadID)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create upload dir: %w", err)
	}

	return writeAtomic(dir, filepath.Join(dir, partName(partNumber)), r, -1)
}

func (s *PartStore) OpenPart(_ context.Context, uploadID string, partNumber int) (io.ReadCloser, error) {
	dir, err := s.uploadDir(uploadID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, partName(partNumber)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: part %d of %s", domain.ErrPartNotFound, partNumber, uploadID)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *PartStore) DeleteUpload(_ context.Context, uploadID string) error {
	dir, err := s.uploadDir(uploadID)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// ListUploads reports every staged upload with its newest part write time.
func (s *PartStore) ListUploads(ctx context.Context) ([]port.UploadInfo, error) {
	buckets, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read part root: %w", err)
	}

	var uploads []port.UploadInfo
	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(filepath.Join(s.root, bucket.Name()))
		if err != nil {
			return nil, fmt.Errorf("read bucket %s: %w", bucket.Name(), err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || domain.ValidateUploadID(entry.Name()) != nil {
				continue
			}
			info, err := describeUpload(filepath.Join(s.root, bucket.Name(), entry.Name()), entry)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, info)
		}
	}
	return uploads, nil
}

func describeUpload(dir string, entry fs.DirEntry) (port.UploadInfo, error) {
	upload := port.UploadInfo{UploadID: entry.Name()}
	if dirInfo, err := entry.Info(); err == nil {
		upload.ModTime = dirInfo.ModTime()
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return upload, fmt.Errorf("read upload %s: %w", entry.Name(), err)
	}
	for _, file := range files {
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(upload.ModTime) {
			upload.ModTime = info.ModTime()
		}
		if strings.HasSuffix(file.Name(), partSuffix) {
			if _, err := strconv.Atoi(strings.TrimSuffix(file.Name(), partSuffix)); err == nil {
				upload.Parts++
			}
		}
		upload.Bytes += info.Size()
	}
	return upload, nil
}

// writeAtomic copies r into a temp file in dir and renames it to dst.
// A non-negative want enforces the exact byte count.
func writeAtomic(dir, dst string, r io.Reader, want int64) (int64, error) {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return 0, err
	}
	if want >= 0 && n != want {
		return 0, fmt.Errorf("%w: wrote %d bytes, expected %d", domain.ErrSizeMismatch, n, want)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return 0, fmt.Errorf("commit %s: %w", filepath.Base(dst), err)
	}
	committed = true
	return n, nil
}
