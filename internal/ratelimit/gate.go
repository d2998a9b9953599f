package ratelimit

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
)

const (
	// key used when the request carries no forwarded client address
	LoopbackKey = "127.0.0.1"

	forwardedForHeader = "X-Forwarded-For"
)

// 5 admissions per 60 seconds
var DefaultRate = Rate{Limit: 5, Window: time.Minute}

// parses a formatted rate such as "5-M" (5 per minute) or "100-H"
func ParseRate(formatted string) (Rate, error) {
	r, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}

	if r.Limit <= 0 {
		return Rate{}, fmt.Errorf("invalid rate %q: limit must be positive", formatted)
	}

	return Rate{Limit: int(r.Limit), Window: r.Period}, nil
}

// returns the rate limit key for a request: the first X-Forwarded-For hop
func ClientKey(r *http.Request) string {
	return keyFromForwarded(r.Header.Get(forwardedForHeader))
}

func keyFromForwarded(header string) string {
	first, _, _ := strings.Cut(header, ",")

	if first = strings.TrimSpace(first); first != "" {
		return first
	}

	return LoopbackKey
}

// normalizes an empty key to the loopback placeholder
func normalizeKey(key string) string {
	if key == "" {
		return LoopbackKey
	}

	return key
}
