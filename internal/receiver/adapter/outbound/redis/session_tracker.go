package redis_session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "media:upload:"

var _ port.SessionTracker = (*SessionTracker)(nil)

// SessionTracker stores each session as a hash of part number to size, so
// several receiver replicas can share one view of an upload. Commands go
// through breaker, which may be nil.
type SessionTracker struct {
	client  redis.Cmdable
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

func NewSessionTracker(client redis.Cmdable, ttl time.Duration, breaker *resilience.CircuitBreaker) *SessionTracker {
	return &SessionTracker{client: client, ttl: ttl, breaker: breaker}
}

func sessionKey(uploadID string) string {
	return keyPrefix + uploadID + ":parts"
}

// RecordPart stores the part size and pushes the session expiry forward.
func (t *SessionTracker) RecordPart(ctx context.Context, uploadID string, partNumber int, size int64) error {
	key := sessionKey(uploadID)

	err := t.breaker.Execute(ctx, func(ctx context.Context) error {
		pipe := t.client.TxPipeline()
		pipe.HSet(ctx, key, strconv.Itoa(partNumber), size)
		if t.ttl > 0 {
			pipe.Expire(ctx, key, t.ttl)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("redis record part: %w", err)
	}
	return nil
}

func (t *SessionTracker) Parts(ctx context.Context, uploadID string) (map[int]int64, error) {
	var fields map[string]string
	err := t.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		fields, err = t.client.HGetAll(ctx, sessionKey(uploadID)).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redis load parts: %w", err)
	}
	return parseParts(fields)
}

func (t *SessionTracker) Clear(ctx context.Context, uploadID string) error {
	err := t.breaker.Execute(ctx, func(ctx context.Context) error {
		return t.client.Del(ctx, sessionKey(uploadID)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func parseParts(fields map[string]string) (map[int]int64, error) {
	parts := make(map[int]int64, len(fields))
	for field, value := range fields {
		part, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("corrupt part field %q: %w", field, err)
		}
		size, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt size for part %d: %w", part, err)
		}
		parts[part] = size
	}
	return parts, nil
}
