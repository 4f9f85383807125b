package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var (
	limiters      = make(map[string]*rate.Limiter)
	limitersMutex sync.Mutex

	limitPerSec rate.Limit = 5
	burstSize              = 10

	whitelistedIPs = map[string]bool{
		"127.0.0.1": true, // local tooling
	}
)

// ConfigureRateLimit sets the per-IP rate applied to new limiters.
func ConfigureRateLimit(perSec int) {
	limitersMutex.Lock()
	defer limitersMutex.Unlock()
	limitPerSec = rate.Limit(perSec)
	burstSize = perSec * 2
}

func getLimiter(ip string) *rate.Limiter {
	limitersMutex.Lock()
	defer limitersMutex.Unlock()

	if limiter, exists := limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(limitPerSec, burstSize)
	limiters[ip] = limiter
	return limiter
}

func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		if whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		limiter := getLimiter(ip)
		if !limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
