package cart

import (
	"context"
	"sync"
	"time"

	"github.com/campusmart/storefront/pkg/redis"
)

// Fixed keys under which a cart persists its state.
const (
	KeyItems             = "cartItems"
	KeyCheckoutReference = "paymentIntent"
)

// Storage is the durable key-value store behind one cart.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, raw []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// StorageProvider hands out the Storage of one cart id.
type StorageProvider interface {
	ForCart(cartID string) Storage
}

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token, field string) string
}

// RedisProvider stores carts under cm:cart:<id>:<key> with a sliding TTL.
type RedisProvider struct {
	client redisKV
	ttl    time.Duration
}

func NewRedisProvider(client redisKV, ttl time.Duration) *RedisProvider {
	return &RedisProvider{client: client, ttl: ttl}
}

func (p *RedisProvider) ForCart(cartID string) Storage {
	return &RedisStorage{client: p.client, cartID: cartID, ttl: p.ttl}
}

// RedisStorage is the Storage of a single cart in Redis.
type RedisStorage struct {
	client redisKV
	cartID string
	ttl    time.Duration
}

func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(s.cartID, key))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(raw), true, nil
}

func (s *RedisStorage) Save(ctx context.Context, key string, raw []byte) error {
	return s.client.Set(ctx, s.client.CartKey(s.cartID, key), string(raw), s.ttl)
}

func (s *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.client.CartKey(s.cartID, key))
	}
	return s.client.Del(ctx, full...)
}

// MemoryStorage keeps one cart in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string][]byte{}}
}

func (s *MemoryStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (s *MemoryStorage) Save(_ context.Context, key string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), raw...)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

// MemoryProvider keeps every cart in process memory.
type MemoryProvider struct {
	mu    sync.Mutex
	carts map[string]*MemoryStorage
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{carts: map[string]*MemoryStorage{}}
}

func (p *MemoryProvider) ForCart(cartID string) Storage {
	p.mu.Lock()
	defer p.mu.Unlock()
	storage, ok := p.carts[cartID]
	if !ok {
		storage = NewMemoryStorage()
		p.carts[cartID] = storage
	}
	return storage
}
