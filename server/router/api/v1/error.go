package v1

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the only error body the API produces.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPErrorHandler renders every error as {"message": ...}. Errors that are not
// *echo.HTTPError become a generic 500 so internal detail never leaks.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = fmt.Sprint(m)
		}
		if he.Internal != nil {
			slog.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"error", he.Internal,
			)
		}
	} else {
		slog.Error("unhandled request error",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"error", err,
		)
	}
	if code == http.StatusMethodNotAllowed {
		message = "Method not allowed"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Message: message})
	}
	if err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}

// MethodNotAllowed answers any method a route does not serve.
func (*APIV1Service) MethodNotAllowed(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
}
