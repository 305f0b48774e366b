package middlewares

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter is the per-instance token bucket used when no Redis is
// configured. Idle keys are dropped after idleTTL.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	keyFn    KeyFunc
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryRateLimiter starts a janitor goroutine that stops with ctx.
func NewMemoryRateLimiter(ctx context.Context, ratePerSecond float64, burst int, keyFn KeyFunc) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		limiters: make(map[string]*visitor),
		keyFn:    keyFn,
		rate:     rate.Limit(ratePerSecond),
		burst:    burst,
		idleTTL:  5 * time.Minute,
	}
	go rl.janitor(ctx)
	return rl
}

func (rl *MemoryRateLimiter) janitor(ctx context.Context) {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep(time.Now())
		}
	}
}

func (rl *MemoryRateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.limiters {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
}

func (rl *MemoryRateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *MemoryRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFn(r)
		lim := rl.limiter(key)

		now := time.Now()
		res := lim.ReserveN(now, 1)
		delay := res.DelayFrom(now)

		d := decision{policy: "token-bucket", limit: rl.burst, allowed: res.OK() && delay == 0}
		if d.allowed {
			d.remaining = int64(lim.TokensAt(now))
		} else {
			res.CancelAt(now)
			d.retryAfter = delay
		}
		d.enforce(w, r, key, next)
	})
}
