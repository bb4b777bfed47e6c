package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, 1, 0)

	for i := 0; i < 3; i++ {
		if !rl.Allow("client") {
			t.Fatalf("expected request %d to be allowed", i)
		}
	}

	if rl.Allow("client") {
		t.Fatal("expected request beyond burst to be denied")
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 1, 0)
	current := time.Now()
	rl.now = func() time.Time { return current }

	if !rl.Allow("client") {
		t.Fatal("expected first request to be allowed")
	}
	if rl.Allow("client") {
		t.Fatal("expected empty bucket to deny")
	}

	current = current.Add(1500 * time.Millisecond)
	if !rl.Allow("client") {
		t.Fatal("expected bucket to refill after a second")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 0.1, 0)

	if !rl.Allow("a") {
		t.Fatal("expected first request from a to be allowed")
	}
	if !rl.Allow("b") {
		t.Fatal("expected first request from b to be allowed")
	}
	if rl.Allow("a") {
		t.Fatal("expected second request from a to be denied")
	}
}

func TestRateLimiterPrunesStaleClients(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 0.1, time.Minute)
	current := time.Now()
	rl.now = func() time.Time { return current }

	rl.Allow("stale")
	current = current.Add(2 * time.Minute)
	rl.pruneStale()

	rl.mu.Lock()
	_, exists := rl.clients["stale"]
	rl.mu.Unlock()

	if exists {
		t.Fatal("expected stale client to be pruned")
	}
}
