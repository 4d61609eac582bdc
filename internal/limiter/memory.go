// Package limiter provides request-rate limiting keyed by a client
// identifier.  The Redis token bucket in the middleware package is the
// preferred backend; the in-memory sliding window here is the fallback
// used when no Redis client is configured, injected into the handler
// chain rather than accessed as ambient global state.
package limiter

import (
    "sync"
    "time"
)

// Window decides whether a request from the given client identifier is
// allowed right now.  Implementations record the request as a side
// effect when it is allowed.
type Window interface {
    Allow(key string) bool
}

// MemoryWindow is a process-local sliding-window counter: each key
// keeps the timestamps of its recent requests, and a request is
// allowed while fewer than max timestamps fall inside the window.
// Entries expire as the window slides, and keys whose entries have all
// expired are pruned on access so the map does not grow without bound.
type MemoryWindow struct {
    mu     sync.Mutex
    max    int
    window time.Duration
    hits   map[string][]time.Time
    now    func() time.Time

    lastPrune time.Time
}

// NewMemoryWindow returns a sliding-window limiter allowing max
// requests per key within the given window.
func NewMemoryWindow(max int, window time.Duration) *MemoryWindow {
    if max < 1 {
        max = 1
    }
    if window <= 0 {
        window = time.Minute
    }
    return &MemoryWindow{
        max:    max,
        window: window,
        hits:   make(map[string][]time.Time),
        now:    time.Now,
    }
}

// Allow reports whether a request for key is within the rate limit and
// records it when it is.
func (w *MemoryWindow) Allow(key string) bool {
    w.mu.Lock()
    defer w.mu.Unlock()

    now := w.now()
    cutoff := now.Add(-w.window)

    recent := w.hits[key][:0]
    for _, ts := range w.hits[key] {
        if ts.After(cutoff) {
            recent = append(recent, ts)
        }
    }

    if len(recent) >= w.max {
        w.hits[key] = recent
        return false
    }

    w.hits[key] = append(recent, now)
    w.pruneLocked(now, cutoff)
    return true
}

// pruneLocked drops keys whose entries have all expired.  It runs at
// most once per window to keep Allow cheap.
func (w *MemoryWindow) pruneLocked(now, cutoff time.Time) {
    if now.Sub(w.lastPrune) < w.window {
        return
    }
    w.lastPrune = now
    for key, stamps := range w.hits {
        alive := false
        for _, ts := range stamps {
            if ts.After(cutoff) {
                alive = true
                break
            }
        }
        if !alive {
            delete(w.hits, key)
        }
    }
}
