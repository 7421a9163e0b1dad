package handlers

import (
	"time"

	"tms-shipflow/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

// Root godoc
// @Summary API root
// @Description Returns basic service information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "TMS ShipFlow API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	status := fiber.StatusOK
	healthy := true

	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
		healthy = false
	}

	return c.Status(status).JSON(fiber.Map{
		"healthy":  healthy,
		"database": dbStatus,
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
