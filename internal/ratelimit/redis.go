// Package ratelimit is a fixed-window request limiter keyed by client IP and
// backed by Redis INCR/EXPIRE. It fails open: with no Redis client, or when
// Redis errors, requests pass.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/metrics"
	"github.com/Nasaee/go-dayplanner/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	rdb     *redis.Client
	max     int64
	window  time.Duration
	blocked *prometheus.CounterVec
}

// New returns a limiter allowing max requests per window per client. rdb may
// be nil. blocked, when set, is incremented with the route label on every
// rejection.
func New(rdb *redis.Client, max int, window time.Duration, blocked *prometheus.CounterVec) *Limiter {
	return &Limiter{
		rdb:     rdb,
		max:     int64(max),
		window:  window,
		blocked: blocked,
	}
}

func (l *Limiter) key(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return fmt.Sprintf("rl:%d:%s", int64(l.window.Seconds()), ip)
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rdb == nil || l.max <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := l.key(r)

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			w.Header().Set("X-RateLimit-Error", "redis-error")
			next.ServeHTTP(w, r)
			return
		}
		n := incr.Val()

		// a negative TTL means the window was never opened, either because this
		// is the first hit or because an earlier EXPIRE was lost; open it now
		if ttl.Val() < 0 {
			expireCtx := context.WithoutCancel(ctx)
			if err := l.rdb.Expire(expireCtx, key, l.window).Err(); err != nil {
				slog.Warn("rate limiter expire failed", "key", key, "error", err)
			}
		}

		if n > l.max {
			if l.blocked != nil {
				l.blocked.WithLabelValues(metrics.RoutePattern(r)).Inc()
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(l.window.Seconds())))
			utils.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
