package middleware

import (
	"errors"
	"net/http"
	"strings"

	"order-system-api/internal/repository"
	"order-system-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CurrentUserKey is where the authenticated user lands in the echo context.
const CurrentUserKey = "usuario"

// AuthMiddleware verifies the bearer token and loads the user it refers
// to, so handlers always see a live account and not just a token subject.
func AuthMiddleware(tokenService service.TokenService, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token de acesso ausente")
			}

			userID, err := tokenService.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrTokenInvalid.Error())
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "acesso inválido")
				}
				return err
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}
