package config

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"jsontodos/internal/core/telemetry"
	. "jsontodos/pkg"
)

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

// RateLimiter is a fixed-window limiter keyed by route and client.
type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.RWMutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// NewRateLimiter builds a limiter from "METHOD /route", "/route" or
// "default" keyed limits. metrics may be nil.
func NewRateLimiter(logger *zap.Logger, metrics *telemetry.AppMetrics, limits map[string]RateLimitConfig) *RateLimiter {
	c := cache.New(5*time.Minute, 10*time.Minute)

	configs := map[string]RateLimitEndpointConfig{
		"default": {
			Requests: 600,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	for key, limit := range limits {
		configs[key] = RateLimitEndpointConfig{
			Requests: limit.Requests,
			Window:   limit.Window,
			KeyFunc:  GetClientIP,
		}
	}

	return &RateLimiter{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		methodPath := c.Request.Method + " " + path

		config := rl.lookup(methodPath, path)
		key := rl.generateKey(c, methodPath, config.KeyFunc)

		allowed, remaining, resetTime := rl.checkRateLimit(key, config)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
			})
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path)
		}

		c.Next()
	}
}

func (rl *RateLimiter) lookup(methodPath, path string) RateLimitEndpointConfig {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	if config, exists := rl.config[methodPath]; exists {
		return config
	}

	if config, exists := rl.config[path]; exists && path != "" {
		return config
	}

	return rl.config["default"]
}

func (rl *RateLimiter) checkRateLimit(key string, config RateLimitEndpointConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if entry, found := rl.cache.Get(key); found {
		rateLimitEntry := entry.(RateLimitEntry)

		if now.After(rateLimitEntry.ResetTime) {
			resetTime := now.Add(config.Window)
			rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

			return true, config.Requests - 1, resetTime
		}

		if rateLimitEntry.Count >= config.Requests {
			return false, 0, rateLimitEntry.ResetTime
		}

		rateLimitEntry.Count++
		rl.cache.Set(key, rateLimitEntry, time.Until(rateLimitEntry.ResetTime))

		return true, config.Requests - rateLimitEntry.Count, rateLimitEntry.ResetTime
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}

func (rl *RateLimiter) generateKey(c *gin.Context, path string, keyFunc func(*gin.Context) string) string {
	return fmt.Sprintf("rate_limit:%s:%s", path, keyFunc(c))
}

func (rl *RateLimiter) SetConfig(path string, config RateLimitEndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[path] = config
}

func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	return map[string]interface{}{
		"active_entries": rl.cache.ItemCount(),
		"configs":        len(rl.config),
	}
}
