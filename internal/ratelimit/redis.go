package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyRateLimit = "uigen:ratelimit:%s"

// trims the window, then records the request when under the limit.
// returns {admitted, count after the call, oldest score in ms}
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local admitted = 0

if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, window)
  count = count + 1
  admitted = 1
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = now
if oldest[2] then
  oldestScore = tonumber(oldest[2])
end

return {admitted, count, oldestScore}
`)

// RedisGate implements Gate with a sorted set per key in Redis
type RedisGate struct {
	client *redis.Client
	rate   Rate
	now    func() time.Time
}

// creates a new Redis-backed sliding window gate
func NewRedisGate(client *redis.Client, rate Rate) *RedisGate {
	return &RedisGate{
		client: client,
		rate:   rate,
		now:    time.Now,
	}
}

// creates a new Redis-backed gate from a URL
func NewRedisGateFromURL(redisURL string, rate Rate) (*RedisGate, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisGate(client, rate), nil
}

// admits the request when fewer than Limit admissions happened in the trailing window
func (g *RedisGate) Admit(ctx context.Context, key string) (Decision, error) {
	key = normalizeKey(key)
	nowMs := g.now().UnixMilli()
	windowMs := g.rate.Window.Milliseconds()

	res, err := slidingWindowScript.Run(ctx, g.client,
		[]string{fmt.Sprintf(keyRateLimit, key)},
		nowMs, windowMs, g.rate.Limit, fmt.Sprintf("%d-%s", nowMs, uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}

	if len(res) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit reply: %v", res)
	}

	return Decision{
		Success:   res[0] == 1,
		Limit:     g.rate.Limit,
		Remaining: max(0, g.rate.Limit-int(res[1])),
		ResetAt:   time.UnixMilli(res[2] + windowMs),
	}, nil
}

// returns the underlying Redis client (shared with the fixed window store)
func (g *RedisGate) Client() *redis.Client {
	return g.client
}

// closes the redis connection
func (g *RedisGate) Close() error {
	return g.client.Close()
}
