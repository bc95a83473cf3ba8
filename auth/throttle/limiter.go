// Package throttle bounds the rate of login attempts per originating client
// to blunt credential guessing. It guards only the login operation; other
// routes are outside its scope.
//
// State is a per-key fixed-window counter held in process memory. Every
// attempt counts against the window regardless of whether the login itself
// succeeds.
package throttle

import (
	"sync"
	"time"
)

// Decision is the outcome of an admission check.
type Decision struct {
	// Allowed reports whether the attempt may proceed.
	Allowed bool
	// Remaining is the number of attempts left in the current window.
	Remaining int
	// RetryAfter is how long until the window resets. Only set when the
	// attempt was denied.
	RetryAfter time.Duration
}

type bucket struct {
	count int
	start time.Time
}

// Limiter counts attempts per client key over a fixed window. The
// increment-and-compare in Admit is atomic per limiter, so concurrent
// attempts for the same key can never jointly exceed the limit.
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	buckets map[string]*bucket

	// now is swappable for tests.
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewLimiter creates a login throttle and starts its background sweep.
// Call Close when the limiter is no longer needed.
func NewLimiter(cfg Config) *Limiter {
	cfg.ApplyDefaults()
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Admit records an attempt for the key and reports whether it may proceed.
// The attempt is counted even if the caller's operation later fails.
func (l *Limiter) Admit(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.buckets[key]
	if b == nil || now.Sub(b.start) >= l.cfg.Window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}

	if b.count >= l.cfg.MaxAttempts {
		return Decision{
			Allowed:    false,
			RetryAfter: b.start.Add(l.cfg.Window).Sub(now),
		}
	}

	b.count++
	return Decision{
		Allowed:   true,
		Remaining: l.cfg.MaxAttempts - b.count,
	}
}

// Close stops the background sweep. Safe to call multiple times.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// sweep periodically drops buckets whose window has elapsed so idle clients
// do not accumulate memory.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, b := range l.buckets {
				if now.Sub(b.start) >= l.cfg.Window {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
