package server

import (
	"strings"
	"sync"
	"time"
)

const sweepThreshold = 1024

// loginLimiter is a sliding-window limiter on login attempts, keyed by the
// normalised email.
type loginLimiter struct {
	limit   int
	window  time.Duration
	nowTime func() time.Time

	mu     sync.Mutex
	events map[string][]time.Time
}

// newLoginLimiter returns a limiter allowing limit attempts per window. A
// limit of zero or less disables limiting.
func newLoginLimiter(limit int, window time.Duration, nowTime func() time.Time) *loginLimiter {
	if nowTime == nil {
		nowTime = time.Now
	}
	return &loginLimiter{
		limit:   limit,
		window:  window,
		nowTime: nowTime,
		events:  make(map[string][]time.Time),
	}
}

// Allow records an attempt for email and reports whether it is permitted.
// When it is not, the returned duration is how long until the oldest
// attempt leaves the window.
func (l *loginLimiter) Allow(email string) (bool, time.Duration) {
	if l.limit <= 0 {
		return true, 0
	}
	key := normaliseEmail(email)
	now := l.nowTime()
	cut := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.events[key][:0]
	for _, t := range l.events[key] {
		if t.After(cut) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.events[key] = kept
		return false, kept[0].Sub(cut)
	}
	l.events[key] = append(kept, now)
	if len(l.events) > sweepThreshold {
		l.sweep(cut)
	}
	return true, 0
}

// inFlight tracks login submissions still being checked, keyed by the
// normalised email.
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{keys: make(map[string]struct{})}
}

// begin claims email and reports false when a submission for it is already
// outstanding. A successful claim must be released with end.
func (f *inFlight) begin(email string) bool {
	key := normaliseEmail(email)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inFlight) end(email string) {
	f.mu.Lock()
	delete(f.keys, normaliseEmail(email))
	f.mu.Unlock()
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sweep drops keys whose attempts have all left the window.
func (l *loginLimiter) sweep(cut time.Time) {
	for key, events := range l.events {
		if len(events) == 0 || !events[len(events)-1].After(cut) {
			delete(l.events, key)
		}
	}
}
