package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the availability response cache.
// When Enabled is false or no Redis client is configured, caching is
// disabled and every availability read hits the database.  Methods
// lists the HTTP methods to cache; TTL defines the lifetime of cache
// entries; Prefix and MaxBodyBytes control namespacing and the maximum
// size of responses worth caching.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// The short default TTL keeps availability reads fresh enough that a
// newly committed booking shows up within seconds; the reservation
// transaction never trusts the cache anyway.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 10*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
