package health

import (
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/monitor"
	"github.com/gofiber/fiber/v2"
)

// StatusSource reports the last backend check.
type StatusSource interface {
	Status() (monitor.Status, bool)
}

type HealthHandler struct {
	service string
	source  StatusSource
}

func NewHealthHandler(service string, source StatusSource) *HealthHandler {
	return &HealthHandler{service: service, source: source}
}

// GetHealth godoc
// @Summary Service health check
// @Description Reports whether the service is up and whether the accounting API answered the last check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":  "ok",
		"service": h.service,
	}

	st, ok := h.source.Status()
	if !ok {
		resp["backend"] = fiber.Map{"status": "unknown"}
		return c.JSON(resp)
	}

	backend := fiber.Map{
		"status":               "up",
		"latency_ms":           st.Latency.Milliseconds(),
		"checked_at":           st.CheckedAt.UTC().Format(time.RFC3339),
		"consecutive_failures": st.ConsecutiveFailures,
	}
	if !st.Reachable {
		backend["status"] = "down"
		backend["error"] = st.Error
		resp["status"] = "degraded"
	}
	resp["backend"] = backend

	return c.JSON(resp)
}
