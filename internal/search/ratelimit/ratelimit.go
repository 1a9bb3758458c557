// Package ratelimit caps how many bookings a client may request per window.
package ratelimit

import (
	"sync"
	"time"
)

// sweepInterval is how often idle clients are forgotten.
const sweepInterval = 5 * time.Minute

// Limiter admits up to limit requests per client in each fixed window. A limit
// of zero or less admits nothing.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	length  time.Duration
	now     func() time.Time
	done    chan struct{}
}

type window struct {
	start time.Time
	used  int
}

// New creates a Limiter and starts its background sweep. Call Close to stop it.
func New(limit int, length time.Duration) *Limiter {
	l := &Limiter{
		clients: make(map[string]*window),
		limit:   limit,
		length:  length,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Close stops the background sweep.
func (l *Limiter) Close() {
	close(l.done)
}

// Allow records a request from client and reports whether it is admitted.
func (l *Limiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(client, l.now())
	if w.used >= l.limit {
		return false
	}
	w.used++
	return true
}

// Remaining reports how many more requests client may make in its window.
func (l *Limiter) Remaining(client string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return max(l.limit-l.current(client, l.now()).used, 0)
}

// RetryAfter reports how long client must wait for its window to reset. It is
// zero while requests remain and when the limiter admits nothing at all.
func (l *Limiter) RetryAfter(client string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.current(client, now)
	if l.limit <= 0 || w.used < l.limit {
		return 0
	}
	return w.start.Add(l.length).Sub(now)
}

// current returns the window of client at now, opening a new one when the
// previous window has ended. Callers hold l.mu.
func (l *Limiter) current(client string, now time.Time) *window {
	w, ok := l.clients[client]
	if !ok || now.Sub(w.start) >= l.length {
		w = &window{start: now}
		l.clients[client] = w
	}
	return w
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.forgetIdle()
		case <-l.done:
			return
		}
	}
}

// forgetIdle drops clients whose last window ended more than a window ago.
func (l *Limiter) forgetIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for client, w := range l.clients {
		if now.Sub(w.start) > 2*l.length {
			delete(l.clients, client)
		}
	}
}
