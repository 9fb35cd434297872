package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"jerosmotos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana counts requests of one client inside a fixed window.
type ventana struct {
	count int
	fin   time.Time
}

// Limiter is a fixed-window, per-IP request counter.
type Limiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	clientes map[string]*ventana
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{limit: limit, window: window, clientes: make(map[string]*ventana)}
}

// Allow records one request from ip and reports whether it is within the limit,
// plus the end of the current window.
func (l *Limiter) Allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.clientes[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.window)}
		l.clientes[ip] = v
	}
	v.count++
	return v.count <= l.limit, v.fin
}

// Purge drops expired windows and returns how many were removed.
func (l *Limiter) Purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for ip, v := range l.clientes {
		if now.After(v.fin) {
			delete(l.clientes, ip)
			n++
		}
	}
	return n
}

// StartPurge removes stale entries every interval until ctx is cancelled.
func (l *Limiter) StartPurge(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := l.Purge(now); n > 0 {
					log.Debug().Int("purged", n).Msg("rate limiter entries purged")
				}
			}
		}
	}()
}

// Middleware rejects requests over the limit with 429 and the given message.
func (l *Limiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.Allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", fin.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}
