package config

import "time"

// RateLimitConfig drives the fixed-window request limiter in front of the
// gateway.  Limiting is per client IP; the window resets atomically in
// Redis so multiple gateway replicas share one budget.
type RateLimitConfig struct {
	Enabled bool          // master switch
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults allow 120 requests per minute per IP.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   atoi(getenv("RATE_LIMIT_MAX", "120")),
		Window:  dur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

// CacheConfig controls Redis caching of the public room-browse responses.
// Only successful GET bodies are cached; a nil Redis client disables the
// middleware entirely.
type CacheConfig struct {
	Enabled bool          // master switch
	TTL     time.Duration // entry lifetime
	Prefix  string        // Redis key namespace
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     dur("CACHE_TTL", 30*time.Second),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}
