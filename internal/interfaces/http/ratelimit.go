package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// LoginLimiter limita los intentos de login por IP (token bucket de x/time/rate).
type LoginLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	ttl      time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter permite perMinute intentos por minuto con ráfagas de burst. perMinute <= 0 desactiva.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &LoginLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
		now:      time.Now,
	}
}

// Allow consume un intento para key.
func (l *LoginLimiter) Allow(key string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		l.evict(now)
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evict descarta IPs inactivas; se llama con mu tomado.
func (l *LoginLimiter) evict(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, k)
		}
	}
}

// Middleware responde 429 cuando la IP agotó sus intentos.
func (l *LoginLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, "60")
			return errorJSON(c, fiber.StatusTooManyRequests, CodeRateLimited, "demasiados intentos de login; intente más tarde")
		}
		return c.Next()
	}
}
