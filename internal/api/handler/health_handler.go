package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

type readyResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Integrations map[string]bool   `json:"integrations"`
}

// HealthHandler reports process liveness and dependency readiness.
// Nil pingers (memory store mode, no Redis) are reported as skipped
// rather than failing readiness.
type HealthHandler struct {
	mongo        Pinger
	redis        Pinger
	integrations map[string]bool
}

func NewHealthHandler(mongo, redis Pinger, integrations map[string]bool) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis, integrations: integrations}
}

// Live answers as soon as the process serves traffic.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Ready checks the configured backing stores and reports which external
// integrations carry credentials.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readyResponse
// @Failure      503  {object}  readyResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	deps := map[string]string{
		"mongo": checkDependency(ctx, h.mongo),
		"redis": checkDependency(ctx, h.redis),
	}

	status := http.StatusOK
	overall := "ok"
	for _, state := range deps {
		if state == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
	}

	return c.JSON(status, readyResponse{
		Status:       overall,
		Dependencies: deps,
		Integrations: h.integrations,
	})
}

func checkDependency(ctx context.Context, p Pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
