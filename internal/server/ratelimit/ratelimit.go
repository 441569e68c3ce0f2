// Package ratelimit provides per-client rate limiting using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Info describes the limit state returned alongside each decision.
type Info struct {
	Allowed   bool
	Limit     int
	Remaining int
}

// EndpointConfig is the limit for one path prefix and method.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Endpoints     []EndpointConfig
}

// DefaultConfig limits the expensive completion-service endpoints hard and
// everything else generously.
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			// Every /agent mode and run creation hits the completion service.
			{Path: "/agent", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
			{Path: "/runs", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	}
}

// Limiter manages token buckets per (client, endpoint) pair.
type Limiter struct {
	mu      sync.Mutex
	config  *Config
	buckets map[string]*tokenBucket
}

// NewLimiter creates a limiter; a nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow decides whether clientID may call method path now.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}
	// Health checks are never limited.
	if path == "/health" && method == "GET" {
		return true, Info{Allowed: true}
	}

	limit, window, burst := l.config.DefaultLimit, l.config.DefaultWindow, l.config.DefaultLimit
	for _, ep := range l.config.Endpoints {
		if ep.Method == method && (ep.Path == path || hasPathPrefix(path, ep.Path)) {
			limit, window = ep.Limit, ep.Window
			burst = ep.Burst
			if burst == 0 {
				burst = limit
			}
			break
		}
	}

	key := clientID + " " + method + " " + path
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(burst, float64(limit)/window.Seconds())
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	allowed := bucket.allow()
	return allowed, Info{Allowed: allowed, Limit: limit}
}

func hasPathPrefix(path, prefix string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}
