package handler

import (
	"errors"
	"net/http"

	"order-system-api/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError translates domain errors into HTTP status codes. Anything
// unrecognized bubbles up to echo's recover/error machinery as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOrderClosed),
		errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrUserInactive):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return err
	}
}
