//go:build integration

package redis_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
	redisStorage "github.com/shortlyhq/shortly/internal/storage/redis"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()

	client := goredis.NewClient(&goredis.Options{Addr: getRedisAddr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return client
}

func testKey(t *testing.T) string {
	return fmt.Sprintf("quota:test:%s:%d", t.Name(), time.Now().UnixNano())
}

func TestQuotaStore_ConsumeLifecycle(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Minute)
	ctx := context.Background()

	key := testKey(t)
	defer client.Del(ctx, key)

	// First call initializes the counter and consumes one unit.
	remaining, err := store.Consume(ctx, key, 3)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 2 {
		t.Errorf("after 1st consume: got remaining %d, want 2", remaining)
	}

	// Subsequent calls decrement until exhaustion.
	for want := int64(1); want >= 0; want-- {
		remaining, err = store.Consume(ctx, key, 3)
		if err != nil {
			t.Fatal(err)
		}
		if remaining != want {
			t.Errorf("got remaining %d, want %d", remaining, want)
		}
	}

	if _, err := store.Consume(ctx, key, 3); !errors.Is(err, shortener.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded at zero, got: %v", err)
	}

	// Exhaustion does not mutate the counter.
	remaining, ok, err := store.Peek(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || remaining != 0 {
		t.Errorf("got (%d, %v), want (0, true)", remaining, ok)
	}
}

func TestQuotaStore_ZeroCapacity(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Minute)
	ctx := context.Background()

	key := testKey(t)
	defer client.Del(ctx, key)

	if _, err := store.Consume(ctx, key, 0); !errors.Is(err, shortener.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded for zero capacity, got: %v", err)
	}

	// No counter must be created for a zero-capacity tier.
	if _, ok, _ := store.Peek(ctx, key); ok {
		t.Error("expected no counter to be initialized")
	}
}

func TestQuotaStore_InitializationSetsTTL(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Minute)
	ctx := context.Background()

	key := testKey(t)
	defer client.Del(ctx, key)

	if _, err := store.Consume(ctx, key, 5); err != nil {
		t.Fatal(err)
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("got TTL %v, want within (0, 1m]", ttl)
	}
}

func TestQuotaStore_PeekAbsent(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Minute)

	remaining, ok, err := store.Peek(context.Background(), testKey(t))
	if err != nil {
		t.Fatal(err)
	}
	if ok || remaining != 0 {
		t.Errorf("got (%d, %v), want (0, false)", remaining, ok)
	}
}

func TestQuotaStore_WindowExpiryResets(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Second)
	ctx := context.Background()

	key := testKey(t)
	defer client.Del(ctx, key)

	for range 3 {
		if _, err := store.Consume(ctx, key, 3); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Consume(ctx, key, 3); !errors.Is(err, shortener.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded before expiry, got: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	remaining, err := store.Consume(ctx, key, 3)
	if err != nil {
		t.Fatalf("expected a fresh window after expiry, got: %v", err)
	}
	if remaining != 2 {
		t.Errorf("after expiry: got remaining %d, want 2", remaining)
	}
}

// Concurrent first requests against an absent counter must grant exactly
// capacity units in total.
func TestQuotaStore_ConcurrentConsumeAtBoundary(t *testing.T) {
	client := newTestClient(t)
	store := redisStorage.NewQuotaStore(client, time.Minute)
	ctx := context.Background()

	key := testKey(t)
	defer client.Del(ctx, key)

	const capacity = 1
	const workers = 16

	var wg sync.WaitGroup
	results := make(chan error, workers)
	start := make(chan struct{})

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.Consume(ctx, key, capacity)
			results <- err
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	granted, denied := 0, 0
	for err := range results {
		switch {
		case err == nil:
			granted++
		case errors.Is(err, shortener.ErrQuotaExceeded):
			denied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if granted != capacity {
		t.Errorf("got %d grants, want exactly %d", granted, capacity)
	}
	if denied != workers-capacity {
		t.Errorf("got %d denials, want %d", denied, workers-capacity)
	}
}
