package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginThrottle limits login attempts per normalized email with a token
// bucket. A throttle built with perMinute <= 0 allows everything.
type loginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newLoginThrottle(perMinute int) *loginThrottle {
	if perMinute <= 0 {
		return &loginThrottle{}
	}
	return &loginThrottle{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (t *loginThrottle) allow(key string) bool {
	if t.limiters == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[key]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[key] = l
	}
	return l.AllowN(t.now(), 1)
}

// reset forgets the bucket of key after a successful login.
func (t *loginThrottle) reset(key string) {
	if t.limiters == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.limiters, key)
}
