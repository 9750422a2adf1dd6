package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"washplane/internal/store"
	"washplane/pkg/api"
)

// RateLimit throttles requests per authenticated business using its stored
// limits. Must run after APIKeyAuth.
func RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limiters := sync.Map{} // business ID -> *cachedLimiter

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			business, ok := BusinessFromContext(r.Context())
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(api.ErrorResponse{
					Error: "Unauthorized",
					Code:  "401",
				})
				return
			}

			// RateLimit=0 means unlimited
			if business.RateLimit > 0 {
				limiter := getOrCreateLimiter(&limiters, business, 5*time.Minute)
				if !limiter.Allow() {
					w.Header().Set("Retry-After", "1")
					http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type cachedLimiter struct {
	limiter   *rate.Limiter
	expiresAt time.Time
}

func getOrCreateLimiter(limiters *sync.Map, business *store.Business, ttl time.Duration) *rate.Limiter {
	if cached, ok := limiters.Load(business.ID); ok {
		entry := cached.(*cachedLimiter)
		if time.Now().Before(entry.expiresAt) {
			return entry.limiter
		}
		// expired, need to create new
	}

	limiter := rate.NewLimiter(
		rate.Limit(business.RateLimit),
		business.RateLimitBurst,
	)
	limiters.Store(business.ID, &cachedLimiter{
		limiter:   limiter,
		expiresAt: time.Now().Add(ttl),
	})
	return limiter
}
