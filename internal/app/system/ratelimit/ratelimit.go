// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts events per key in fixed windows. It is safe for
// concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type window struct {
	count     int
	expiresAt time.Time
}

// New returns a Limiter allowing limit events per period for each key.
// Expired windows are swept in the background until Stop is called.
func New(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.sweep(2 * period)
	return l
}

// Allow records one event for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.period)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many events key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	if n := l.limit - w.count; n > 0 {
		return n
	}
	return 0
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.windows, key)
	l.mu.Unlock()
}

// Stop ends the background sweep.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep(every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.mu.Lock()
			now := l.now()
			for k, w := range l.windows {
				if now.After(w.expiresAt) {
					delete(l.windows, k)
				}
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP returns the caller's address, preferring the first
// X-Forwarded-For entry, then X-Real-IP, then RemoteAddr without its port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Messages shown when a sign-in attempt is refused.
const (
	MsgTooManyFromAddress = "Too many sign-in attempts. Please wait a minute before trying again."
	MsgTooManyForUser     = "Too many sign-in attempts for this user. Please wait a few minutes."
)

// LoginLimiter throttles sign-in attempts by client address and by user name.
type LoginLimiter struct {
	byIP   *Limiter
	byUser *Limiter
}

// NewLoginLimiter allows 10 attempts per address per minute and 5 per user
// name per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig returns a LoginLimiter with explicit limits.
func NewLoginLimiterWithConfig(ipLimit int, ipPeriod time.Duration, userLimit int, userPeriod time.Duration) *LoginLimiter {
	return &LoginLimiter{
		byIP:   New(ipLimit, ipPeriod),
		byUser: New(userLimit, userPeriod),
	}
}

// Check records an attempt for username from r. When refused, the returned
// message is suitable for the sign-in form.
func (ll *LoginLimiter) Check(r *http.Request, username string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, MsgTooManyFromAddress
	}
	if key := userKey(username); key != "" && !ll.byUser.Allow(key) {
		return false, MsgTooManyForUser
	}
	return true, ""
}

// ResetUser clears username's count after a successful sign-in.
func (ll *LoginLimiter) ResetUser(username string) {
	if key := userKey(username); key != "" {
		ll.byUser.Reset(key)
	}
}

// Stop ends both background sweeps.
func (ll *LoginLimiter) Stop() {
	ll.byIP.Stop()
	ll.byUser.Stop()
}

func userKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
