package repository

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"invest-appraisal/domain"
)

const sessionKeyPrefix = "appraisal:session:"

type SessionRepository interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	// Update loads the session, applies fn and stores the result as one atomic
	// cycle. An error from fn aborts the cycle and is returned unchanged.
	Update(ctx context.Context, id string, fn func(session *domain.Session) error) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// CacheSessionRepository keeps sessions as JSON documents in a CacheRepository.
// Every save refreshes the session ttl.
type CacheSessionRepository struct {
	cache CacheRepository
	ttl   time.Duration
}

func NewCacheSessionRepository(cache CacheRepository, ttl time.Duration) *CacheSessionRepository {
	return &CacheSessionRepository{cache: cache, ttl: ttl}
}

func (r *CacheSessionRepository) Save(ctx context.Context, session domain.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	return r.cache.Set(ctx, sessionKeyPrefix+session.ID, b, r.ttl)
}

func (r *CacheSessionRepository) Get(ctx context.Context, id string) (domain.Session, error) {
	b, found, err := r.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session %s: %w", id, err)
	}
	if !found {
		return domain.Session{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	var session domain.Session
	if err := json.Unmarshal(b, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session, nil
}

func (r *CacheSessionRepository) Update(
	ctx context.Context,
	id string,
	fn func(session *domain.Session) error,
) (domain.Session, error) {

	var updated domain.Session
	err := r.cache.Update(ctx, sessionKeyPrefix+id, r.ttl, func(current []byte, found bool) ([]byte, error) {
		if !found {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		var session domain.Session
		if err := json.Unmarshal(current, &session); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
		if err := fn(&session); err != nil {
			return nil, err
		}
		b, err := json.Marshal(session)
		if err != nil {
			return nil, fmt.Errorf("encode session %s: %w", id, err)
		}
		updated = session
		return b, nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return updated, nil
}

func (r *CacheSessionRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, sessionKeyPrefix+id)
}
