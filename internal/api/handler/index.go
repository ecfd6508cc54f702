package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index handles GET / with a static liveness text.
func Index(c echo.Context) error {
	return c.String(http.StatusOK, "Hello, world!")
}
