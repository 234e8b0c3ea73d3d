// pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fraud-check/pkg/redis"
)

// Store decides whether a client identified by key may make another request.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore is a per-process token bucket that refills fully every refillDur.
type MemoryStore struct {
	mu          sync.Mutex
	capacity    int
	refillDur   time.Duration
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewMemoryStore(capacity int, refillDur time.Duration) *MemoryStore {
	s := &MemoryStore{
		capacity:    capacity,
		refillDur:   refillDur,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, bucket := range s.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(s.clients, key)
		}
	}
}

// Stop ends the background cleanup.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
}

func (s *MemoryStore) Allow(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	bucket, exists := s.clients[key]

	if !exists {
		s.clients[key] = &clientBucket{
			tokens:     s.capacity - 1,
			lastRefill: now,
		}
		return true, nil
	}

	if now.Sub(bucket.lastRefill) >= s.refillDur {
		bucket.tokens = s.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false, nil
	}

	bucket.tokens--
	return true, nil
}

// RedisStore is a fixed-window counter shared by every replica.
type RedisStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:fraud-check",
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	slot := time.Now().UnixNano() / int64(s.window)
	n, err := s.client.IncrWindow(ctx, s.windowKey(key, slot), s.window)
	if err != nil {
		return false, fmt.Errorf("rate limit lookup failed: %w", err)
	}
	return n <= s.limit, nil
}

func (s *RedisStore) windowKey(key string, slot int64) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, key, slot)
}
