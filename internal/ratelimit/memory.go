package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryGate implements Gate with a per-key ring buffer of admission timestamps
type MemoryGate struct {
	rate Rate
	now  func() time.Time

	mu     sync.Mutex
	keys   map[string]*stampRing
	done   chan struct{}
	closed bool
}

// fixed-size ring of the last Limit admission times for one key
type stampRing struct {
	stamps []time.Time
	next   int // slot written next; the oldest stamp once the ring is full
	size   int
}

// creates a new in-memory sliding window gate
func NewMemoryGate(rate Rate) *MemoryGate {
	gate := newMemoryGate(rate, time.Now)

	go gate.cleanupLoop()

	return gate
}

func newMemoryGate(rate Rate, now func() time.Time) *MemoryGate {
	return &MemoryGate{
		rate: rate,
		now:  now,
		keys: make(map[string]*stampRing),
		done: make(chan struct{}),
	}
}

// admits the request when fewer than Limit admissions happened in the trailing window
func (g *MemoryGate) Admit(_ context.Context, key string) (Decision, error) {
	key = normalizeKey(key)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	ring, exists := g.keys[key]
	if !exists {
		ring = &stampRing{stamps: make([]time.Time, g.rate.Limit)}
		g.keys[key] = ring
	}

	if ring.size < len(ring.stamps) {
		ring.push(now)
		return g.decision(true, ring), nil
	}

	// full ring: the slot about to be overwritten holds the oldest admission
	if now.Sub(ring.stamps[ring.next]) >= g.rate.Window {
		ring.push(now)
		return g.decision(true, ring), nil
	}

	return g.decision(false, ring), nil
}

func (g *MemoryGate) decision(success bool, ring *stampRing) Decision {
	now := g.now()
	active := ring.activeSince(now.Add(-g.rate.Window))

	return Decision{
		Success:   success,
		Limit:     g.rate.Limit,
		Remaining: max(0, g.rate.Limit-active),
		ResetAt:   ring.oldest().Add(g.rate.Window),
	}
}

func (r *stampRing) push(t time.Time) {
	r.stamps[r.next] = t
	r.next = (r.next + 1) % len(r.stamps)

	if r.size < len(r.stamps) {
		r.size++
	}
}

func (r *stampRing) oldest() time.Time {
	if r.size < len(r.stamps) {
		return r.stamps[0]
	}

	return r.stamps[r.next]
}

func (r *stampRing) newest() time.Time {
	return r.stamps[(r.next-1+len(r.stamps))%len(r.stamps)]
}

// counts stamps strictly after cutoff
func (r *stampRing) activeSince(cutoff time.Time) int {
	count := 0

	for i := 0; i < r.size; i++ {
		if r.stamps[i].After(cutoff) {
			count++
		}
	}

	return count
}

// drops keys whose newest admission already left the window
func (g *MemoryGate) sweep() {
	cutoff := g.now().Add(-g.rate.Window)

	g.mu.Lock()
	defer g.mu.Unlock()

	for key, ring := range g.keys {
		if !ring.newest().After(cutoff) {
			delete(g.keys, key)
		}
	}
}

func (g *MemoryGate) cleanupLoop() {
	ticker := time.NewTicker(g.rate.Window)
	defer ticker.Stop()

	for {
		select {
		case <-g.done:
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

// stops the cleanup goroutine
func (g *MemoryGate) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.closed {
		close(g.done)
		g.closed = true
	}

	return nil
}
