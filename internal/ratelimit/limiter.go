// Package ratelimit throttles anonymous writes per client IP.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config mirrors the RATE_LIMIT_* settings.
type Config struct {
	RPS      float64
	Burst    int
	RedisURL string
	Password string
}

// Window is the fixed window that admits Burst requests at RPS.
func (c Config) Window() time.Duration {
	return time.Duration(math.Ceil(float64(c.Burst)/c.RPS)) * time.Second
}

// New returns a Redis-backed limiter when RedisURL is set, an in-memory one
// otherwise. The returned close func releases the Redis client.
func New(ctx context.Context, cfg Config) (Limiter, func() error, error) {
	if cfg.RedisURL == "" {
		return NewMemory(cfg.RPS, cfg.Burst), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedis(client, cfg.Burst, cfg.Window()), client.Close, nil
}

// Middleware rejects requests over the limit with 429. Limiter failures
// let the request through.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Str("ip", key).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
