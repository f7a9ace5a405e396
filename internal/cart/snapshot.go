package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mitienda/storefront-backend/pkg/redis"
	"github.com/mitienda/storefront-backend/pkg/types"
)

// SnapshotStore persists per-session cart contents between restarts.
// Load returns (nil, nil) for absent sessions; corrupt payloads are
// handled by the manager, not here.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSnapshotStore keeps each cart under its session key with a TTL
// so abandoned carts eventually expire.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore wraps the shared redis client.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.client.CartSnapshotKey(sessionID))
	if redis.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID string, data []byte) error {
	return s.client.Set(ctx, s.client.CartSnapshotKey(sessionID), string(data), s.ttl)
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartSnapshotKey(sessionID))
}

// MemorySnapshotStore is the in-process fallback for tests and dev.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemorySnapshotStore returns an empty in-memory snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (s *MemorySnapshotStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[sessionID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemorySnapshotStore) Save(_ context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append([]byte(nil), data...)
	return nil
}

func (s *MemorySnapshotStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func marshalEntries(entries []types.CartEntry) ([]byte, error) {
	return json.Marshal(entries)
}

func unmarshalEntries(data []byte) ([]types.CartEntry, bool) {
	var entries []types.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}
