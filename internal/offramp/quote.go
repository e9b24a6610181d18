package offramp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "offramp:quote:"

// ErrQuoteExpired indicates the referenced rate quote is past its expiry (or
// was never issued). The caller must fetch a fresh one.
var ErrQuoteExpired = errors.New("rate quote expired, fetch a new one")

// Quote is a time-bound conversion rate. It lives only in the quote store,
// with a TTL equal to its remaining lifetime; it is never persisted.
type Quote struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Rate      float64   `json:"rate"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QuoteStore holds quotes for their lifetime. Find returns ErrQuoteExpired
// for unknown ids: an evicted quote and a fabricated one are
// indistinguishable, and both must be refused.
type QuoteStore interface {
	Save(ctx context.Context, q Quote) error
	Find(ctx context.Context, id string) (Quote, error)
}

// RedisQuoteStore keeps quotes in Redis, expiry enforced by key TTL.
type RedisQuoteStore struct {
	client *redis.Client
}

// NewRedisQuoteStore builds a Redis-backed quote store.
func NewRedisQuoteStore(client *redis.Client) *RedisQuoteStore {
	return &RedisQuoteStore{client: client}
}

// Save stores the quote with TTL equal to its remaining lifetime.
func (s *RedisQuoteStore) Save(ctx context.Context, q Quote) error {
	ttl := time.Until(q.ExpiresAt)
	if ttl <= 0 {
		return ErrQuoteExpired
	}
	encoded, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, quoteKeyPrefix+q.ID, encoded, ttl).Err()
}

// Find resolves a live quote by id.
func (s *RedisQuoteStore) Find(ctx context.Context, id string) (Quote, error) {
	raw, err := s.client.Get(ctx, quoteKeyPrefix+id).Result()
	if err == redis.Nil {
		return Quote{}, ErrQuoteExpired
	}
	if err != nil {
		return Quote{}, err
	}
	var q Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return Quote{}, ErrQuoteExpired
	}
	return q, nil
}

type memoryQuoteStore struct {
	mu     sync.Mutex
	quotes map[string]Quote
}

// NewMemoryQuoteStore builds an in-memory quote store for tests and dev runs.
func NewMemoryQuoteStore() QuoteStore {
	return &memoryQuoteStore{quotes: make(map[string]Quote)}
}

func (s *memoryQuoteStore) Save(_ context.Context, q Quote) error {
	if !q.ExpiresAt.After(time.Now()) {
		return ErrQuoteExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.ID] = q
	return nil
}

func (s *memoryQuoteStore) Find(_ context.Context, id string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok || !q.ExpiresAt.After(time.Now()) {
		delete(s.quotes, id)
		return Quote{}, ErrQuoteExpired
	}
	return q, nil
}
