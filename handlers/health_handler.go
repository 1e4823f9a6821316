package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const BackendVersion = "0.1.0"

// GET /api/health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /api/version
func Version(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": BackendVersion})
}
