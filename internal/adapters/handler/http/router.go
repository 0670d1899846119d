package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	HabitHandler      *HabitHandler
	CompletionHandler *CompletionHandler
	StatsHandler      *StatsHandler
	Store             Pinger
	// Redis is optional. When nil, rate limiting is off.
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
	Logger    *zap.Logger
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit, time.Minute, deps.Logger))
	}

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "ok"
		if err := deps.Store.Ping(c.Request.Context()); err != nil {
			deps.Logger.Warn("Health check: store unreachable", zap.Error(err))
			storeStatus = "unreachable"
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		status, code := "ok", http.StatusOK
		if storeStatus != "ok" {
			status, code = "error", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"store":  storeStatus,
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		deps.HabitHandler.RegisterRoutes(apiV1)
		deps.CompletionHandler.RegisterRoutes(apiV1)
		deps.StatsHandler.RegisterRoutes(apiV1)
	}

	return router
}
