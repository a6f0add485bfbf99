package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/internal/repo"
)

// DefaultIdempotencyTTL is used when IdempotencyService.TTL is unset.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyService remembers which resource a create request produced under
// a client-supplied Idempotency-Key so retries can be answered with the
// original record.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewIdempotencyService returns a service with ttl (or the default when ttl <= 0).
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyService{DB: db, TTL: ttl}
}

// Lookup returns the resource id stored for (scope, key). found is false when
// no live record exists.
func (s *IdempotencyService) Lookup(ctx context.Context, scope, key string) (resourceID int64, found bool, err error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return rec.ResourceID, true, nil
}

// Exists reports whether a live record exists for (scope, key) at now. Its
// shape matches middleware.IdempotencyLookup.
func (s *IdempotencyService) Exists(ctx context.Context, scope, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, scope, key, now)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remember records that (scope, key) produced resourceID with status. A
// concurrent writer that stored the same key first wins; that is not an error.
func (s *IdempotencyService) Remember(ctx context.Context, scope, key string, resourceID int64, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.DB, scope, key, resourceID, status, s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// Purge deletes expired records and returns how many were removed.
func (s *IdempotencyService) Purge(ctx context.Context, now time.Time) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, now)
}
