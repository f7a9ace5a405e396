package businessconfig

import (
	"context"
	"sync"
	"time"

	"github.com/mitienda/storefront-backend/pkg/redis"
)

// Snapshotter persists the serialized configuration between restarts.
// Load returns (nil, nil) when no snapshot exists.
type Snapshotter interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// RedisSnapshotter keeps the configuration under a single namespaced
// key with no TTL: business configuration never expires on its own.
type RedisSnapshotter struct {
	client *redis.Client
}

// NewRedisSnapshotter wraps the shared redis client.
func NewRedisSnapshotter(client *redis.Client) *RedisSnapshotter {
	return &RedisSnapshotter{client: client}
}

func (s *RedisSnapshotter) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.client.ConfigSnapshotKey())
	if redis.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (s *RedisSnapshotter) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.client.ConfigSnapshotKey(), string(data), time.Duration(0))
}

func (s *RedisSnapshotter) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.client.ConfigSnapshotKey())
}

// MemorySnapshotter is the in-process fallback used by tests and
// single-node dev setups.
type MemorySnapshotter struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySnapshotter returns an empty in-memory snapshot store.
func NewMemorySnapshotter() *MemorySnapshotter {
	return &MemorySnapshotter{}
}

func (s *MemorySnapshotter) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySnapshotter) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySnapshotter) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
