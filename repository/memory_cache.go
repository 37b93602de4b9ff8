package repository

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

type memoryItem struct {
	value   []byte
	expires time.Time
}

func (it memoryItem) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// MemoryCache is an in-process CacheRepository. A background sweep evicts
// expired entries until Stop is called.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]memoryItem
	now    func() time.Time
	logger *zap.Logger

	stopSweep chan struct{}
	stopOnce  sync.Once
}

func NewMemoryCache(logger *zap.Logger) *MemoryCache {
	m := newMemoryCache(time.Now, logger)
	go m.sweepLoop(sweepInterval)
	return m
}

func newMemoryCache(now func() time.Time, logger *zap.Logger) *MemoryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryCache{
		items:     make(map[string]memoryItem),
		now:       now,
		logger:    logger,
		stopSweep: make(chan struct{}),
	}
}

func (m *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := m.sweep(); evicted > 0 {
				m.logger.Debug("expired entries evicted",
					zap.Int("evicted", evicted),
					zap.Int("remaining", m.Len()),
				)
			}
		case <-m.stopSweep:
			return
		}
	}
}

// sweep deletes every expired entry and reports how many it removed.
func (m *MemoryCache) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	evicted := 0
	for key, it := range m.items {
		if it.expired(now) {
			delete(m.items, key)
			evicted++
		}
	}
	return evicted
}

func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.stopSweep) })
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if it.expired(m.now()) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return clone(it.value), true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	it := m.item(value, ttl)
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

// Update holds the write lock for the whole read-modify-write cycle.
func (m *MemoryCache) Update(_ context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		current []byte
		found   bool
	)
	if it, ok := m.items[key]; ok && !it.expired(m.now()) {
		current, found = clone(it.value), true
	}

	next, err := fn(current, found)
	if err != nil || next == nil {
		return err
	}
	m.items[key] = m.item(next, ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len counts stored entries, including expired ones the sweep has not reached yet.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MemoryCache) item(value []byte, ttl time.Duration) memoryItem {
	it := memoryItem{value: clone(value)}
	if ttl > 0 {
		it.expires = m.now().Add(ttl)
	}
	return it
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
