package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fixedClock returns a limiter whose clock the test advances by hand.
func fixedClock(t *testing.T, limit int, length time.Duration) (*Limiter, *time.Time) {
	t.Helper()
	l := New(limit, length)
	t.Cleanup(l.Close)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		requests int
		want     int
	}{
		{name: "under the limit", limit: 30, requests: 5, want: 5},
		{name: "at the limit", limit: 3, requests: 3, want: 3},
		{name: "over the limit", limit: 3, requests: 7, want: 3},
		{name: "zero limit", limit: 0, requests: 2, want: 0},
		{name: "negative limit", limit: -1, requests: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := fixedClock(t, tt.limit, time.Minute)

			admitted := 0
			for range tt.requests {
				if l.Allow("198.51.100.4") {
					admitted++
				}
			}
			if admitted != tt.want {
				t.Errorf("admitted %d of %d bookings, want %d", admitted, tt.requests, tt.want)
			}
		})
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := fixedClock(t, 1, time.Minute)

	for _, ip := range []string{"198.51.100.4", "198.51.100.5", ""} {
		if !l.Allow(ip) {
			t.Errorf("first booking from %q refused", ip)
		}
		if l.Allow(ip) {
			t.Errorf("second booking from %q admitted", ip)
		}
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	l, now := fixedClock(t, 2, time.Minute)
	const ip = "203.0.113.7"

	l.Allow(ip)
	l.Allow(ip)
	if l.Allow(ip) {
		t.Fatal("third booking admitted")
	}
	if got := l.Remaining(ip); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}

	*now = now.Add(20 * time.Second)
	if got := l.RetryAfter(ip); got != 40*time.Second {
		t.Errorf("RetryAfter() = %s, want 40s", got)
	}

	*now = now.Add(40 * time.Second)
	if got := l.RetryAfter(ip); got != 0 {
		t.Errorf("RetryAfter() after reset = %s, want 0", got)
	}
	if got := l.Remaining(ip); got != 2 {
		t.Errorf("Remaining() after reset = %d, want 2", got)
	}
	if !l.Allow(ip) {
		t.Error("booking after reset refused")
	}
}

func TestLimiter_RetryAfter(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		admit   int
		wantPos bool
	}{
		{name: "requests left", limit: 2, admit: 1},
		{name: "exhausted", limit: 1, admit: 1, wantPos: true},
		{name: "disabled limiter", limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := fixedClock(t, tt.limit, time.Minute)
			for range tt.admit {
				l.Allow("k")
			}

			got := l.RetryAfter("k")
			if tt.wantPos && got != time.Minute {
				t.Errorf("RetryAfter() = %s, want 1m", got)
			}
			if !tt.wantPos && got != 0 {
				t.Errorf("RetryAfter() = %s, want 0", got)
			}
		})
	}
}

func TestLimiter_ForgetIdle(t *testing.T) {
	l, now := fixedClock(t, 1, time.Minute)

	l.Allow("old")
	*now = now.Add(90 * time.Second)
	l.Allow("recent")
	*now = now.Add(40 * time.Second)

	l.forgetIdle()

	if _, ok := l.clients["old"]; ok {
		t.Error("idle client kept")
	}
	if _, ok := l.clients["recent"]; !ok {
		t.Error("recent client dropped")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(100, time.Minute)
	defer l.Close()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for range 250 {
		wg.Go(func() {
			if l.Allow("192.0.2.1") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if admitted != 100 {
		t.Errorf("admitted %d concurrent bookings, want 100", admitted)
	}
}
