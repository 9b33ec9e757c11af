// Package cache remembers recent predictions keyed by their model input.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Repository stores prediction results as strings. A miss is reported as
// ok == false with a nil error.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a cache key from a model input vector.
func Key(input []float64) string {
	parts := make([]string, len(input))
	for i, v := range input {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "prediction:" + strings.Join(parts, ",")
}

type entry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Repository. A zero ttl keeps entries forever.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]entry),
	}
}

// Get returns a live entry.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.data[key] = e
	return nil
}
