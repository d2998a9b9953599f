package ratelimit

import (
	"context"
	"time"
)

// decides whether a request identified by key may proceed
type Gate interface {
	Admit(ctx context.Context, key string) (Decision, error)
}

// outcome of a single admission check
type Decision struct {
	Success   bool
	Limit     int
	Remaining int
	ResetAt   time.Time // when the oldest counted request leaves the window
}

// at most Limit admissions per key within any trailing Window
type Rate struct {
	Limit  int
	Window time.Duration
}

// metric labels for decisions
const (
	resultAdmitted = "admitted"
	resultRejected = "rejected"
	resultError    = "error"
)
