package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
	"hairconnect/pkg/response"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows requests per window with the same burst.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > time.Hour {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) RateLimitMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			reservation := rl.getLimiter(ip).Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				logger.L().Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded. Try again later.", delay))
			}
			return next(c)
		}
	}
}

func GeneralRateLimit() echo.MiddlewareFunc {
	return NewRateLimiter(100, time.Minute).RateLimitMiddleware()
}

func AuthRateLimit() echo.MiddlewareFunc {
	return NewRateLimiter(10, time.Minute).RateLimitMiddleware()
}

func PaymentRateLimit() echo.MiddlewareFunc {
	return NewRateLimiter(20, time.Minute).RateLimitMiddleware()
}

func WebhookRateLimit() echo.MiddlewareFunc {
	return NewRateLimiter(120, time.Minute).RateLimitMiddleware()
}
