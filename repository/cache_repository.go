package repository

import (
	"context"
	"errors"
	"time"
)

// ErrUpdateConflict is returned when an Update keeps losing to concurrent writers.
var ErrUpdateConflict = errors.New("concurrent update conflict")

// UpdateFunc receives the current value of a key and returns the value to
// store. Returning a nil value leaves the key untouched. It may run more than
// once when the store retries after a conflict.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// CacheRepository is a byte store with optional expiry. A ttl <= 0 never expires.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Update applies fn atomically with respect to other writers of key.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
}
