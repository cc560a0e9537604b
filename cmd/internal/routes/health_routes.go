package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type Pinger func(ctx context.Context) error

type DefaultHealthRoute struct {
	Ping Pinger
}

func NewHealthDefault(ping Pinger) *DefaultHealthRoute {
	return &DefaultHealthRoute{Ping: ping}
}

func (h *DefaultHealthRoute) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.Ping(ctx); err != nil {
		log.Errorf("health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "message": "database unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
