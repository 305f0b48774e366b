package middlewares

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/isbn-books/internal/api/apperr"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type KeyFunc func(r *http.Request) string

// PerIPKey buckets callers by client address.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		return prefix + ":" + clientIP(r)
	}
}

// PerIPScopeKey gives each caller separate read and write budgets, so a
// burst of creates or deletes cannot starve listing.
func PerIPScopeKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		scope := "read"
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			scope = "write"
		}
		return prefix + ":" + scope + ":" + clientIP(r)
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// decision is the outcome of one limiter check.
type decision struct {
	policy     string
	limit      int
	remaining  int64
	allowed    bool
	retryAfter time.Duration
}

// enforce sets the X-RateLimit-* headers and either passes the request on
// or answers 429 with Retry-After rounded up to whole seconds (at least 1).
func (d decision) enforce(w http.ResponseWriter, r *http.Request, key string, next http.Handler) {
	h := w.Header()
	h.Set("X-RateLimit-Policy", d.policy)
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.limit))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, d.remaining), 10))

	if d.allowed {
		next.ServeHTTP(w, r)
		return
	}

	sec := max(1, int64((d.retryAfter+time.Second-1)/time.Second))
	h.Set("Retry-After", strconv.FormatInt(sec, 10))
	slog.InfoContext(r.Context(), "rate limit: blocked", "policy", d.policy, "key", key, "retry_after_s", sec)
	apperr.Write(w, r, apperr.New(http.StatusTooManyRequests, "Too Many Requests"))
}

// runScript evaluates a limiter script and reads its {allowed, remaining,
// retry_ms} reply.
func runScript(r *http.Request, rdb *redis.Client, s *redis.Script, key string, args ...any) (allowed bool, remaining int64, retry time.Duration, err error) {
	res, err := s.Run(r.Context(), rdb, []string{key}, args...).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}
	if len(res) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected script reply %v", res)
	}
	return res[0] == 1, res[1], time.Duration(res[2]) * time.Millisecond, nil
}

// limiterUnavailable lets the request through when Redis cannot answer.
func limiterUnavailable(w http.ResponseWriter, r *http.Request, policy string, err error, next http.Handler) {
	slog.WarnContext(r.Context(), "rate limit: redis error, allowing request", "policy", policy, "err", err)
	next.ServeHTTP(w, r)
}

// ARGV: rate per second, capacity, ttl ms. The bucket hash holds tokens and
// the last refill time in ms; it expires once it would be full again.
var tokenBucketScript = redis.NewScript(`
local rate, capacity = tonumber(ARGV[1]), tonumber(ARGV[2])
local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens, last = tonumber(state[1]), tonumber(state[2])
if tokens == nil then
  tokens, last = capacity, now
end
if now > last then
  tokens = math.min(capacity, tokens + (now - last) * rate / 1000)
end

local allowed, retry = 0, 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  retry = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HMSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return {allowed, math.floor(tokens), retry}
`)

// RedisTokenBucket shares one bucket per key across every API instance.
type RedisTokenBucket struct {
	rdb      *redis.Client
	keyFn    KeyFunc
	ratePerS float64
	burst    int
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int, keyFn KeyFunc) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, keyFn: keyFn, ratePerS: ratePerSecond, burst: burst}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := tb.keyFn(r)
		ttl := int64(math.Ceil(float64(tb.burst) / tb.ratePerS * 1000))
		allowed, remaining, retry, err := runScript(r, tb.rdb, tokenBucketScript, key,
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64), tb.burst, ttl)
		if err != nil {
			limiterUnavailable(w, r, "token-bucket", err, next)
			return
		}
		decision{
			policy:     "token-bucket",
			limit:      tb.burst,
			remaining:  remaining,
			allowed:    allowed,
			retryAfter: retry,
		}.enforce(w, r, key, next)
	})
}

// ARGV: now ms, window ms, limit, member, cutoff ms. Blocked requests are
// not recorded, so a caller that keeps retrying is not pushed further out.
var slidingWindowScript = redis.NewScript(`
local now, window, limit = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[5])
local count = redis.call('ZCARD', KEYS[1])
if count < limit then
  redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
  return {1, limit - count - 1, 0}
end
local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
local retry = window
if oldest[2] then
  retry = tonumber(oldest[2]) + window - now
end
return {0, 0, retry}
`)

// RedisSlidingWindow caps requests per key over a rolling window.
type RedisSlidingWindow struct {
	rdb    *redis.Client
	keyFn  KeyFunc
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, keyFn: keyFn, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := sw.keyFn(r)
		now := time.Now().UnixMilli()
		window := sw.window.Milliseconds()

		allowed, remaining, retry, err := runScript(r, sw.rdb, slidingWindowScript, key,
			now, window, sw.limit, uuid.NewString(), now-window)
		if err != nil {
			limiterUnavailable(w, r, "sliding-window", err, next)
			return
		}
		decision{
			policy:     "sliding-window",
			limit:      sw.limit,
			remaining:  remaining,
			allowed:    allowed,
			retryAfter: retry,
		}.enforce(w, r, key, next)
	})
}
