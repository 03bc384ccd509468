package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
)

var _ port.ObjectStore = (*ObjectStore)(nil)

// ObjectStore writes assembled objects below root and their metadata as
// JSON sidecars below metaRoot.
type ObjectStore struct {
	root     string
	metaRoot string
}

func NewObjectStore(root, metaRoot string) (*ObjectStore, error) {
	for _, dir := range []string{root, metaRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create object dir: %w", err)
		}
	}
	return &ObjectStore{root: root, metaRoot: metaRoot}, nil
}

// Root is the directory served as public media.
func (s *ObjectStore) Root() string {
	return s.root
}

func (s *ObjectStore) PutObject(ctx context.Context, key string, r io.Reader, size int64, meta domain.ObjectMeta) error {
	dst, err := resolve(s.root, key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	if _, err := writeAtomic(dir, dst, r, size); err != nil {
		return err
	}

	return s.writeMeta(key, meta)
}

// Meta reads back the metadata sidecar for key.
func (s *ObjectStore) Meta(key string) (domain.ObjectMeta, error) {
	var meta domain.ObjectMeta
	path, err := resolve(s.metaRoot, key+".json")
	if err != nil {
		return meta, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

func (s *ObjectStore) writeMeta(key string, meta domain.ObjectMeta) error {
	path, err := resolve(s.metaRoot, key+".json")
	if err != nil {
		return err
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode object meta: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create meta dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write object meta: %w", err)
	}
	return nil
}

// resolve maps a slash-separated key into root, rejecting escapes.
func resolve(root, key string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(key))
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: object key %q escapes store", domain.ErrInvalidRequest, key)
	}
	return path, nil
}
