package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
)

// consumeScript is the single atomic primitive behind quota enforcement.
// When the counter is absent it is initialized to capacity-1 with the
// window's TTL (the initializing call consumes one unit). When present and
// positive it is decremented. When zero nothing is mutated.
//
// KEYS[1]: counter key
// ARGV[1]: tier capacity
// ARGV[2]: window TTL in seconds
//
// Returns the remaining count after the call, or -1 when the quota is
// exhausted. Running this as one script closes the check-then-act race
// between concurrent first requests of a new window.
var consumeScript = redis.NewScript(`
local remaining = redis.call('GET', KEYS[1])
if remaining == false then
  redis.call('SET', KEYS[1], tonumber(ARGV[1]) - 1, 'EX', tonumber(ARGV[2]))
  return tonumber(ARGV[1]) - 1
end
remaining = tonumber(remaining)
if remaining <= 0 then
  return -1
end
return redis.call('DECRBY', KEYS[1], 1)
`)

// QuotaStore backs the per-owner creation counters with Redis. Expiry is
// enforced by Redis TTL, not by application timestamps.
type QuotaStore struct {
	client *redis.Client
	window time.Duration
}

func NewQuotaStore(client *redis.Client, window time.Duration) *QuotaStore {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &QuotaStore{
		client: client,
		window: window,
	}
}

func (s *QuotaStore) Consume(ctx context.Context, key string, capacity int) (int64, error) {
	if capacity <= 0 {
		return 0, shortener.ErrQuotaExceeded
	}

	windowSeconds := int64(s.window.Seconds())
	remaining, err := consumeScript.Run(ctx, s.client, []string{key}, capacity, windowSeconds).Int64()
	if err != nil {
		return 0, shortener.ErrQuotaUnavailable
	}
	if remaining < 0 {
		return 0, shortener.ErrQuotaExceeded
	}

	return remaining, nil
}

func (s *QuotaStore) Peek(ctx context.Context, key string) (int64, bool, error) {
	remaining, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, shortener.ErrQuotaUnavailable
	}
	return remaining, true, nil
}
