package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ltplabs/ecatalog/pkg/slogx"
)

// RateLimit is a token bucket refilled with Requests tokens every Window.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Profiles used by the catalog services. Each can be overridden through
// RATELIMIT_<NAME>_REQUESTS, RATELIMIT_<NAME>_WINDOW_SEC and
// RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards credential endpoints.
	StrictLimit = RateLimit{Requests: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit guards admin writes.
	ModerateLimit = RateLimit{Requests: 30, Window: time.Minute, Burst: 30}

	// LenientLimit guards authenticated reads.
	LenientLimit = RateLimit{Requests: 300, Window: time.Minute, Burst: 100}
)

func init() {
	StrictLimit = RateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = RateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = RateLimitFromEnv("LENIENT", LenientLimit)
}

// RateLimitFromEnv overlays RATELIMIT_<name>_* variables on def. Invalid or
// non-positive values are ignored.
func RateLimitFromEnv(name string, def RateLimit) RateLimit {
	cfg := def
	if n, ok := positiveEnv("RATELIMIT_" + name + "_REQUESTS"); ok {
		cfg.Requests = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyFunc derives the bucket key for a request. An empty key bypasses the
// limiter.
type KeyFunc func(*http.Request) string

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserKey keys on the authenticated subject.
func UserKey(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// JSONFieldKey keys on a top-level string field of a JSON body, e.g. the
// email of a login attempt. The body is restored for the next handler.
func JSONFieldKey(field string) KeyFunc {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return ""
		}

		var fields map[string]any
		if json.Unmarshal(body, &fields) != nil {
			return ""
		}
		s, _ := fields[field].(string)
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// Keys joins the non-empty results of several key functions with ":".
func Keys(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, ":")
	}
}

// idleAfter is how long a bucket may go unused before it is dropped.
const idleAfter = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter holds one token bucket per key.
type Limiter struct {
	cfg RateLimit
	key KeyFunc

	mu          sync.Mutex
	buckets     map[string]*bucket
	lastCleanup time.Time
}

// NewLimiter builds a limiter for cfg keyed by key.
func NewLimiter(cfg RateLimit, key KeyFunc) *Limiter {
	return &Limiter{
		cfg:         cfg,
		key:         key,
		buckets:     make(map[string]*bucket),
		lastCleanup: time.Now(),
	}
}

// Allow consumes one token from key's bucket and, when refused, reports
// how long until the next token.
func (l *Limiter) Allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > idleAfter {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > idleAfter {
				delete(l.buckets, k)
			}
		}
		l.lastCleanup = now
	}

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Every(l.cfg.Window / time.Duration(max(l.cfg.Requests, 1)))
		b = &bucket{limiter: rate.NewLimiter(every, max(l.cfg.Burst, 1))}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := b.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		ok, delay := l.Allow(key, time.Now())
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		retryAfter := max(int(delay.Round(time.Second).Seconds()), 1)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Requests))
		w.Header().Set("X-RateLimit-Window", l.cfg.Window.String())

		slogx.FromContext(r.Context()).Warn("rate limit exceeded",
			"key", key,
			"path", r.URL.Path,
			"retry_after", retryAfter,
		)
		WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
	})
}

// RateLimitByIP limits per client address.
func RateLimitByIP(cfg RateLimit) Middleware {
	return NewLimiter(cfg, ClientIP).Middleware
}

// RateLimitByUser limits per authenticated user, falling back to address.
func RateLimitByUser(cfg RateLimit) Middleware {
	return NewLimiter(cfg, Keys(UserKey, ClientIP)).Middleware
}

// RateLimitByIPAndJSONField limits per address and body field, e.g. per
// address and login email.
func RateLimitByIPAndJSONField(cfg RateLimit, field string) Middleware {
	return NewLimiter(cfg, Keys(ClientIP, JSONFieldKey(field))).Middleware
}
