package handlers

import (
	"context"

	"propmarket/internal/logger"
	"propmarket/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

// CacheChecker is satisfied by *cache.CacheService.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
	GetStats() *redis.PoolStats
}

type HealthHandler struct {
	db     repositories.Pinger
	cache  CacheChecker
	logger *zap.Logger
}

// NewHealthHandler builds the handler. cache may be nil when redis is not
// configured.
func NewHealthHandler(db repositories.Pinger, cache CacheChecker, l *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, logger: logger.OrNop(l).Named("health")}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	services := fiber.Map{"database": "connected", "redis": "disabled"}

	if err := repositories.PingDatabase(c.UserContext(), h.db); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		services["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		services["redis"] = "connected"
		if err := h.cache.HealthCheck(c.UserContext()); err != nil {
			// The cache is optional; a failed ping degrades but does not fail.
			h.logger.Warn("redis health check failed", zap.Error(err))
			services["redis"] = "unavailable"
		}
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"version":  version,
		"services": services,
	})
}

// CacheStats reports redis connection pool statistics.
func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}
	poolStats := h.cache.GetStats()

	return c.JSON(fiber.Map{
		"enabled": true,
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
