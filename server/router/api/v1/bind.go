package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body as JSON whatever the Content-Type says.
// An empty body leaves v untouched.
func bindJSON(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		slog.Debug("invalid request body",
			"uri", c.Request().RequestURI,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
