package offramp

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisQuoteStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedisQuoteStore(client), mr
}

func TestRedisQuoteStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	q := Quote{ID: "q1", Token: "usdc", Rate: 1528.50, ExpiresAt: time.Now().Add(30 * time.Second)}
	if err := store.Save(ctx, q); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Find(ctx, "q1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Token != "usdc" || got.Rate != 1528.50 {
		t.Fatalf("unexpected quote: %+v", got)
	}
}

func TestRedisQuoteStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	q := Quote{ID: "q1", Token: "usdc", Rate: 1528.50, ExpiresAt: time.Now().Add(time.Second)}
	if err := store.Save(ctx, q); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Find(ctx, "q1"); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}
}

func TestRedisQuoteStoreUnknownID(t *testing.T) {
	store, _ := newRedisStore(t)

	if _, err := store.Find(context.Background(), "missing"); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired for unknown id, got %v", err)
	}
}

func TestRedisQuoteStoreRefusesDeadQuote(t *testing.T) {
	store, _ := newRedisStore(t)

	q := Quote{ID: "q1", Token: "usdc", Rate: 1500, ExpiresAt: time.Now().Add(-time.Second)}
	if err := store.Save(context.Background(), q); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}
}
