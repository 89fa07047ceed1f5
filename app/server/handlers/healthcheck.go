package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) HealthCheck(c echo.Context) error {
	if err := a.st.Ping(c.Request().Context()); err != nil {
		a.l.Error("failed to ping database", zap.Error(err))
		return a.er(c, http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
