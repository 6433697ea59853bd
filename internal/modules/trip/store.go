// README: Trip store over key-value persistence; the whole collection lives
// under one key, mirroring the client-side storage it replaced.
package trip

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

const historyKey = "wayfarer:trip-history"

// KV is the minimal string storage the store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load reads the full collection. Corrupt or missing data degrades to an
// empty history rather than an error.
func (s *Store) Load(ctx context.Context) ([]TripRecord, error) {
	raw, ok, err := s.kv.Get(ctx, historyKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var trips []TripRecord
	if err := json.Unmarshal([]byte(raw), &trips); err != nil {
		return nil, nil
	}
	return trips, nil
}

// Save persists the full collection under the single history key.
func (s *Store) Save(ctx context.Context, trips []TripRecord) error {
	b, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, historyKey, string(b))
}

// RedisKV is the production key-value backend.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// MemoryKV backs tests and single-process runs.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (k *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemoryKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}
