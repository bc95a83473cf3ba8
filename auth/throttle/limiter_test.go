package throttle

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(cfg Config) (*Limiter, *time.Time) {
	l := NewLimiter(cfg)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAdmitUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 5, Window: 15 * time.Minute})
	defer l.Close()

	for i := 1; i <= 5; i++ {
		d := l.Admit("10.0.0.1")
		if !d.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if d.Remaining != 5-i {
			t.Errorf("attempt %d: expected %d remaining, got %d", i, 5-i, d.Remaining)
		}
	}

	d := l.Admit("10.0.0.1")
	if d.Allowed {
		t.Fatal("sixth attempt within the window must be denied")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 15*time.Minute {
		t.Fatalf("expected a retry-after within the window, got %s", d.RetryAfter)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 2, Window: time.Minute})
	defer l.Close()

	l.Admit("a")
	l.Admit("a")
	if d := l.Admit("a"); d.Allowed {
		t.Fatal("key a should be exhausted")
	}
	if d := l.Admit("b"); !d.Allowed {
		t.Fatal("key b must not be affected by key a")
	}
}

func TestWindowRollover(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 2, Window: time.Minute})
	defer l.Close()

	l.Admit("client")
	l.Admit("client")
	if d := l.Admit("client"); d.Allowed {
		t.Fatal("third attempt should be denied")
	}

	*clock = clock.Add(61 * time.Second)

	d := l.Admit("client")
	if !d.Allowed {
		t.Fatal("a new window must admit again after the old one elapses")
	}
	if d.Remaining != 1 {
		t.Fatalf("fresh window should have 1 remaining, got %d", d.Remaining)
	}
}

func TestRetryAfterShrinksWithinWindow(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 1, Window: time.Minute})
	defer l.Close()

	l.Admit("client")
	first := l.Admit("client")
	*clock = clock.Add(30 * time.Second)
	second := l.Admit("client")

	if !(second.RetryAfter < first.RetryAfter) {
		t.Fatalf("retry-after should shrink as the window progresses: %s then %s",
			first.RetryAfter, second.RetryAfter)
	}
}

func TestConcurrentAdmissions(t *testing.T) {
	l := NewLimiter(Config{MaxAttempts: 5, Window: time.Minute})
	defer l.Close()

	const attempts = 100
	var allowed int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if l.Admit("same-client").Allowed {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if allowed != 5 {
		t.Fatalf("expected exactly 5 concurrent admissions, got %d", allowed)
	}
}

func TestSweepEvictsExpiredBuckets(t *testing.T) {
	l := NewLimiter(Config{MaxAttempts: 1, Window: 10 * time.Millisecond, SweepInterval: 5 * time.Millisecond})
	defer l.Close()

	l.Admit("ephemeral")
	time.Sleep(50 * time.Millisecond)

	l.mu.Lock()
	_, present := l.buckets["ephemeral"]
	l.mu.Unlock()
	if present {
		t.Fatal("expired bucket should have been swept")
	}
}
