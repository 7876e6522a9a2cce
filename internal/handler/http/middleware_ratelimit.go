package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mintid/mintid/internal/app"
	"github.com/mintid/mintid/internal/logger"
)

// clientLimiter pairs a token bucket with its last access time so stale
// entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// withLoginRateLimit limits login attempts per client IP. Login is the only
// unauthenticated mutation the server exposes, so it is the one endpoint
// worth protecting against credential stuffing.
func (h *Handler) withLoginRateLimit() func(next http.Handler) http.Handler {
	perMinute := h.loginRatePerMinute
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limit := rate.Limit(float64(perMinute) / 60.0)
	burst := perMinute

	var mu sync.Mutex
	limiters := make(map[string]*clientLimiter)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := clientAddr(r)

			mu.Lock()
			cl, ok := limiters[clientIP]
			if !ok {
				cl = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
				limiters[clientIP] = cl
			}
			cl.lastAccess = time.Now()

			// Evict buckets idle long enough to have fully refilled.
			for ip, stale := range limiters {
				if time.Since(stale.lastAccess) > 2*time.Minute {
					delete(limiters, ip)
				}
			}
			mu.Unlock()

			if !cl.limiter.Allow() {
				log := logger.FromRequest(r)
				log.Warn().Str("client_ip", clientIP).Msg("login rate limit exceeded")

				retryAfterSec := int(math.Ceil(1.0 / float64(limit)))
				if retryAfterSec < 1 {
					retryAfterSec = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
				http.Error(w, app.MsgTooManyLoginAttempts, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
