// ABOUTME: Redis settings store keeping all settings in one ReJSON document
// ABOUTME: Changes are published on a channel so every process sees them

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/infrastructure/settings"
	"linkoff-engine/pkg/config"
)

const backend = "redis"

// Store implements the settings store on Redis.
type Store struct {
	client  *redis.Client
	handler *rejson.Handler
	key     string
	channel string
	logger  interfaces.Logger

	mu sync.Mutex
}

// NewStore connects to Redis and verifies the connection.
func NewStore(cfg config.RedisConfig, logger interfaces.Logger) (*Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if cfg.Key == "" {
		cfg.Key = "linkoff:settings"
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", map[string]interface{}{
			"address":  cfg.Address,
			"database": cfg.DB,
		})
		return nil, &coreerrors.StoreError{Backend: backend, Op: "connect", Err: err}
	}

	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClient(client)

	return &Store{
		client:  client,
		handler: handler,
		key:     cfg.Key,
		channel: cfg.Key + ":changed",
		logger:  logger,
	}, nil
}

// Get returns the stored values for keys; missing keys are omitted.
func (s *Store) Get(ctx context.Context, keys []string) (map[string]any, error) {
	all, err := s.load()
	if err != nil {
		return nil, &coreerrors.StoreError{Backend: backend, Op: "get", Err: err}
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set merges values into the document and publishes the changed keys.
func (s *Store) Set(ctx context.Context, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
	}
	changes := settings.Diff(all, values)
	if len(changes) == 0 {
		return nil
	}
	for k, v := range changes {
		all[k] = v
	}

	if _, err := s.handler.JSONSet(s.key, ".", all); err != nil {
		s.logger.Error("Failed to write settings to Redis", map[string]interface{}{
			"key":   s.key,
			"error": err.Error(),
		})
		return &coreerrors.StoreError{Backend: backend, Op: "set", Err: err}
	}

	payload, err := json.Marshal(changes)
	if err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "publish", Err: err}
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return &coreerrors.StoreError{Backend: backend, Op: "publish", Err: err}
	}
	return nil
}

// OnChanged subscribes fn to the change channel. Changes written by any
// process, this one included, are delivered.
func (s *Store) OnChanged(fn func(map[string]any)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	sub := s.client.Subscribe(ctx, s.channel)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			var changes map[string]any
			if err := json.Unmarshal([]byte(msg.Payload), &changes); err != nil {
				s.logger.Warn("Ignoring malformed settings change", map[string]interface{}{
					"channel": msg.Channel,
					"error":   err.Error(),
				})
				continue
			}
			fn(changes)
		}
	}()

	return func() {
		cancel()
		_ = sub.Close()
		<-done
	}
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// load reads the whole settings document. A missing document is empty.
func (s *Store) load() (map[string]any, error) {
	val, err := s.handler.JSONGet(s.key, ".")
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	raw, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected reply type %T", val)
	}
	all := make(map[string]any)
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, err
	}
	return all, nil
}
