package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many requests. Please try again later."

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of requests rejected by a per-client rate limiter",
	},
	[]string{"limiter"},
)

// RateLimitConfig configures one IPRateLimiter.
type RateLimitConfig struct {
	// Name labels the limiter in logs and metrics (e.g. "submit", "proxy").
	Name string
	// PerMinute is the sustained number of requests one client may make per minute.
	// It is also the burst size.
	PerMinute int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	name       string
	limit      rate.Limit
	burst      int
	retryAfter string
	extractor  IPExtractor

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewIPRateLimiter creates an IPRateLimiter. A nil extractor uses RemoteAddr.
func NewIPRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if extractor == nil {
		extractor = &RemoteAddrExtractor{}
	}
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	return &IPRateLimiter{
		name:       cfg.Name,
		limit:      rate.Every(interval),
		burst:      perMinute,
		retryAfter: strconv.Itoa(int(math.Max(1, math.Ceil(interval.Seconds())))),
		extractor:  extractor,
		visitors:   make(map[string]*visitor),
		now:        time.Now,
	}
}

// Allow takes a token from key's bucket.
func (l *IPRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := l.extractor.ExtractIP(r)
		if err != nil {
			key = r.RemoteAddr
		}

		if !l.Allow(key) {
			rateLimitRejections.WithLabelValues(l.name).Inc()
			slog.Warn("rate limit exceeded",
				slog.String("limiter", l.name),
				slog.String("client", key),
				slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", l.retryAfter)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitMessage))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup forgets clients idle for longer than maxIdle and returns how many were removed.
// A client idle that long has a full bucket again, so forgetting it changes nothing.
func (l *IPRateLimiter) Cleanup(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// StartCleanup runs Cleanup every interval until ctx is cancelled.
func StartCleanup(ctx context.Context, l *IPRateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter", l.name),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped", slog.String("limiter", l.name))
			return
		case <-ticker.C:
			removed := l.Cleanup(time.Minute)
			slog.Debug("rate limit cleanup completed",
				slog.String("limiter", l.name),
				slog.Int("removed", removed))
		}
	}
}
