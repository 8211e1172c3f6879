package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned when a key is not present
var ErrCacheMiss = errors.New("cache miss")

// Cache stores small binary values with a TTL. Used for exported PDF bytes
// and idempotency tokens.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// PDFKey is the cache key for a certificate's exported PDF
func PDFKey(certificateID uint) string {
	return fmt.Sprintf("cert:%d:pdf", certificateID)
}

// IdempotencyKey is the cache key guarding duplicate certificate submissions
func IdempotencyKey(visitID uint, token string) string {
	return fmt.Sprintf("idem:%d:%s", visitID, token)
}
