package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const fixedWindowPrefix = "uigen:ratelimit:fixed"

// FixedWindowGate implements Gate with ulule/limiter's fixed window counters.
// cheaper than the sliding window, but allows bursts of up to 2x Limit across a window boundary
type FixedWindowGate struct {
	limiter *limiter.Limiter
	rate    Rate
}

// creates a fixed window gate backed by process memory
func NewFixedWindowMemoryGate(rate Rate) *FixedWindowGate {
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          fixedWindowPrefix,
		CleanUpInterval: rate.Window,
	})

	return newFixedWindowGate(store, rate)
}

// creates a fixed window gate backed by Redis
func NewFixedWindowRedisGate(client *redis.Client, rate Rate) (*FixedWindowGate, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   fixedWindowPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	return newFixedWindowGate(store, rate), nil
}

func newFixedWindowGate(store limiter.Store, rate Rate) *FixedWindowGate {
	return &FixedWindowGate{
		limiter: limiter.New(store, limiter.Rate{
			Period: rate.Window,
			Limit:  int64(rate.Limit),
		}),
		rate: rate,
	}
}

// admits the request while the current window's counter is within the limit
func (g *FixedWindowGate) Admit(ctx context.Context, key string) (Decision, error) {
	lctx, err := g.limiter.Get(ctx, normalizeKey(key))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}

	return Decision{
		Success:   !lctx.Reached,
		Limit:     int(lctx.Limit),
		Remaining: int(lctx.Remaining),
		ResetAt:   time.Unix(lctx.Reset, 0),
	}, nil
}
