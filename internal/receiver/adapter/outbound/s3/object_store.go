package s3_store

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/config"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ port.ObjectStore = (*ObjectStore)(nil)

// putObjectAPI is the slice of the S3 client this store needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore uploads assembled objects to an S3 bucket. The stream is
// spooled to a local file first so the SDK gets a seekable, sized body.
// Uploads go through breaker; while it is open PutObject fails fast with
// resilience.ErrCircuitOpen.
type ObjectStore struct {
	client   putObjectAPI
	bucket   string
	spoolDir string
	breaker  *resilience.CircuitBreaker
}

// New builds an S3 client from the default credential chain.
func New(ctx context.Context, cfg config.S3Config, spoolDir string, breaker *resilience.CircuitBreaker) (*ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewWithClient(client, cfg.Bucket, spoolDir, breaker)
}

// NewWithClient wraps an existing client. breaker may be nil.
func NewWithClient(client putObjectAPI, bucket, spoolDir string, breaker *resilience.CircuitBreaker) (*ObjectStore, error) {
	if spoolDir != "" {
		if err := os.MkdirAll(spoolDir, 0o755); err != nil {
			return nil, fmt.Errorf("create spool dir: %w", err)
		}
	}
	return &ObjectStore{client: client, bucket: bucket, spoolDir: spoolDir, breaker: breaker}, nil
}

func (s *ObjectStore) PutObject(ctx context.Context, key string, r io.Reader, size int64, meta domain.ObjectMeta) error {
	// Skip spooling the stream while S3 is known to be down.
	if err := s.breaker.Ready(); err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}

	spool, err := s.spool(r, size)
	if err != nil {
		return err
	}
	defer func() {
		_ = spool.Close()
		if err := os.Remove(spool.Name()); err != nil {
			logger.Debugw("Failed to remove spool file", "path", spool.Name(), "error", err.Error())
		}
	}()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          spool,
		ContentLength: aws.Int64(size),
		Metadata: map[string]string{
			"group-id":   meta.GroupID,
			"file-name":  meta.FileName,
			"sort-order": strconv.Itoa(meta.SortOrder),
		},
	}
	if meta.ContentType != "" {
		input.ContentType = aws.String(meta.ContentType)
	}

	err = s.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := s.client.PutObject(ctx, input)
		return err
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// spool copies r into a temp file positioned at its start.
func (s *ObjectStore) spool(r io.Reader, size int64) (*os.File, error) {
	f, err := os.CreateTemp(s.spoolDir, "assemble-*")
	if err != nil {
		return nil, fmt.Errorf("create spool file: %w", err)
	}

	fail := func(err error) (*os.File, error) {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}

	n, err := io.Copy(f, r)
	if err != nil {
		return fail(err)
	}
	if n != size {
		return fail(fmt.Errorf("%w: received %d bytes, expected %d", domain.ErrSizeMismatch, n, size))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fail(fmt.Errorf("rewind spool file: %w", err))
	}
	return f, nil
}
