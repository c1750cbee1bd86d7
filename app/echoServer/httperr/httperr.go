// Package httperr translates coded domain errors into HTTP responses
// with the uniform {"error": msg} body.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/apperr"
)

// StatusOf maps a domain error code to its HTTP status.
func StatusOf(code apperr.Code) int {
	switch code {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation, apperr.InvalidTransition:
		return http.StatusBadRequest
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write renders a domain error. Unknown errors become 500 with details
// only in logs.
func Write(c echo.Context, log *slog.Logger, err error) error {
	code := apperr.CodeOf(err)
	status := StatusOf(code)
	if status == http.StatusInternalServerError {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		log.Error("request failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// Handler keeps framework-raised errors (unknown route, method not
// allowed, bind failures) on the same body shape.
func Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(status)
		}
	}
	_ = c.JSON(status, echo.Map{"error": msg})
}
