package echoapi

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/umeedfoundation/console/core"
)

const limiterCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// rateLimiter throttles requests per client IP.
type rateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
}

func newRateLimiter(perMinute float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *rateLimiter) middleware(logger core.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ip := ctx.RealIP()
			if !rl.allow(ip) {
				logger.Warn(fmt.Sprintf("rate limit exceeded: %s", ip), map[string]interface{}{"ip": ip, "path": ctx.Path()})
				ctx.Response().Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
				return errTooManyLeads
			}
			return next(ctx)
		}
	}
}

// retryAfter is the number of seconds until one token is refilled.
func (rl *rateLimiter) retryAfter() int {
	if rl.limit <= 0 {
		return 60
	}
	if sec := int(math.Ceil(1 / float64(rl.limit))); sec > 1 {
		return sec
	}
	return 1
}

func (rl *rateLimiter) start() {
	rl.startOnce.Do(func() {
		go rl.cleanupLoop()
	})
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCh)
	})
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup forgets clients idle for two cleanup intervals.
func (rl *rateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > 2*limiterCleanupInterval {
			delete(rl.limiters, ip)
		}
	}
}
