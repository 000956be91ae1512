package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"chat-server-backend/utils"

	"github.com/go-redis/redis/v8"
)

// RateLimiter enforces a fixed-window per-client request budget backed by
// Redis. When Redis is unreachable the request is let through; limiting is an
// operational guard, not a correctness requirement.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) allow(r *http.Request, key string) (bool, error) {
	ctx := r.Context()

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}

	return count.Val() <= rl.limit, nil
}

func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s", utils.RealClientIP(r))

			allowed, err := rl.allow(r, key)
			if err != nil {
				log.Printf("rate limiter unavailable, allowing request: %v", err)
			}
			if !allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}
