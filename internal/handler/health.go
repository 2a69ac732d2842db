package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports that the marketplace API is up. Load balancers and
// monitors hit this; it touches neither the store nor the index.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
