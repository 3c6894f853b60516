// ABOUTME: In-memory settings store backed by go-cache
// ABOUTME: Notifies registered listeners of every key whose value changed

package memory

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"

	"linkoff-engine/infrastructure/settings"
)

// Store keeps settings in process memory. Entries never expire.
type Store struct {
	mu        sync.Mutex
	cache     *cache.Cache
	listeners settings.Listeners
}

// NewStore creates an empty store, optionally seeded with values.
func NewStore(seed map[string]any) *Store {
	s := &Store{cache: cache.New(cache.NoExpiration, 0)}
	for k, v := range seed {
		s.cache.Set(k, v, cache.NoExpiration)
	}
	return s
}

// Get returns the stored values for keys; missing keys are omitted.
func (s *Store) Get(ctx context.Context, keys []string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := s.cache.Get(k); ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set writes values and notifies listeners of the keys that changed.
func (s *Store) Set(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	current := make(map[string]any, len(values))
	for k := range values {
		if v, ok := s.cache.Get(k); ok {
			current[k] = v
		}
	}
	changes := settings.Diff(current, values)
	for k, v := range changes {
		s.cache.Set(k, v, cache.NoExpiration)
	}
	s.mu.Unlock()

	s.listeners.Notify(changes)
	return nil
}

// OnChanged registers fn for change notifications.
func (s *Store) OnChanged(fn func(map[string]any)) func() {
	return s.listeners.Add(fn)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
