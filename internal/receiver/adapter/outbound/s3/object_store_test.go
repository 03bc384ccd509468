package s3_store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
	calls int
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestObjectStore_PutObject(t *testing.T) {
	spoolDir := t.TempDir()
	fake := &fakeS3{}
	store, err := NewWithClient(fake, "media", spoolDir, nil)
	require.NoError(t, err)

	meta := domain.ObjectMeta{GroupID: "g1", FileName: "talk.mp3", ContentType: "audio/mpeg", SortOrder: 3}
	err = store.PutObject(context.Background(), "groups/g1/k-talk.mp3", bytes.NewReader([]byte("payload")), 7, meta)
	require.NoError(t, err)

	assert.Equal(t, "media", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "groups/g1/k-talk.mp3", aws.ToString(fake.input.Key))
	assert.Equal(t, int64(7), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "audio/mpeg", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "3", fake.input.Metadata["sort-order"])
	assert.Equal(t, []byte("payload"), fake.body)

	entries, err := os.ReadDir(spoolDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "spool file must be removed")
}

func TestObjectStore_SizeMismatchSkipsUpload(t *testing.T) {
	fake := &fakeS3{}
	store, err := NewWithClient(fake, "media", t.TempDir(), nil)
	require.NoError(t, err)

	err = store.PutObject(context.Background(), "k", bytes.NewReader([]byte("abc")), 10, domain.ObjectMeta{})
	assert.ErrorIs(t, err, domain.ErrSizeMismatch)
	assert.Nil(t, fake.input)
}

func TestObjectStore_ClientError(t *testing.T) {
	boom := errors.New("access denied")
	store, err := NewWithClient(&fakeS3{err: boom}, "media", t.TempDir(), nil)
	require.NoError(t, err)

	err = store.PutObject(context.Background(), "k", bytes.NewReader([]byte("abc")), 3, domain.ObjectMeta{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3 put k")
}

func TestObjectStore_BreakerFailsFastWhileOpen(t *testing.T) {
	spoolDir := t.TempDir()
	fake := &fakeS3{err: errors.New("503 slow down")}
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "s3",
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})
	store, err := NewWithClient(fake, "media", spoolDir, breaker)
	require.NoError(t, err)

	put := func() error {
		return store.PutObject(context.Background(), "k", bytes.NewReader([]byte("abc")), 3, domain.ObjectMeta{})
	}
	require.Error(t, put())
	require.Error(t, put())
	assert.Equal(t, resilience.CircuitOpen, breaker.State())

	err = put()
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, 2, fake.calls, "open circuit must not reach S3")

	entries, err := os.ReadDir(spoolDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
