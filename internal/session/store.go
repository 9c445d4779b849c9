package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotFound means the session id is unknown or has expired.
var ErrNotFound = errors.New("session not found")

type Store interface {
	Save(ctx context.Context, id string, userID uuid.UUID, ttl time.Duration) error
	Load(ctx context.Context, id string) (uuid.UUID, error)
	Delete(ctx context.Context, id string) error
}

// ======================================================
// REDIS
// ======================================================

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(id string) string {
	return "session:" + id
}

func (s *RedisStore) Save(ctx context.Context, id string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, key(id), userID.String(), ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (uuid.UUID, error) {
	v, err := s.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(v)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}

// ======================================================
// MEMORY
// ======================================================

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Sessions do not survive a
// restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return uuid.Nil, ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
