package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by *cache.RedisCache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	dbPing    func() error
	cache     Pinger
	aiEnabled bool
}

// NewHealthHandler takes the database ping; cache may be nil when Redis is
// not configured.
func NewHealthHandler(dbPing func() error, cache Pinger, aiEnabled bool) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, cache: cache, aiEnabled: aiEnabled}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.dbPing(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		cacheStatus = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
		AIEnabled: h.aiEnabled,
	})
}
