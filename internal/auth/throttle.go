package auth

import (
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedLogins bounds the limiter map; it is reset when full.
const maxTrackedLogins = 10000

// LoginThrottle rate limits login attempts per username.
type LoginThrottle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewLoginThrottle allows perSecond sustained attempts per username with the given burst.
// A non-positive perSecond disables throttling.
func NewLoginThrottle(perSecond float64, burst int) *LoginThrottle {
	if burst <= 0 {
		burst = 1
	}
	return &LoginThrottle{limit: rate.Limit(perSecond), burst: burst, limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether another attempt for username may proceed now.
func (t *LoginThrottle) Allow(username string) bool {
	if t == nil || t.limit <= 0 {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(username))
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.limiters[key]
	if !ok {
		if len(t.limiters) >= maxTrackedLogins {
			t.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[key] = l
	}
	return l.Allow()
}
