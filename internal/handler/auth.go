package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"order-system-api/internal/dto"
	"order-system-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
	tokenFile   string
}

func NewAuthHandler(authService service.AuthService, tokenFile string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenFile:   tokenFile,
	}
}

func (h *AuthHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"mensagem":    "Você acessou a rota padrão de autenticação",
		"autenticado": false,
	})
}

func (h *AuthHandler) CriarConta(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CriarContaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Email == "" || req.Senha == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email e senha são obrigatórios")
	}

	ativo := true
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	admin := false
	if req.Admin != nil {
		admin = *req.Admin
	}

	user, err := h.authService.Register(ctx, req.Nome, req.Email, req.Senha, ativo, admin)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MensagemResponse{
		Mensagem: fmt.Sprintf("usuário cadastrado com sucesso %s", user.Email),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo da requisição inválido")
	}

	pair, err := h.authService.Login(ctx, req.Email, req.Senha)
	if err != nil {
		return httpError(err)
	}

	// best-effort side channel for local debugging, never fails the login
	saveTokenToFile(h.tokenFile, pair.AccessToken)

	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}

// LoginForm accepts form-encoded credentials (username/password) and
// returns only an access token, for interactive API doc tooling.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.FormValue("username")
	senha := c.FormValue("password")

	pair, err := h.authService.Login(ctx, email, senha)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	refreshToken := c.QueryParam("refresh_token")
	if refreshToken == "" {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		refreshToken = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	}
	if refreshToken == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token ausente")
	}

	accessToken, err := h.authService.Refresh(ctx, refreshToken)
	if err != nil {
		// a vanished account rejects the refresh the same way an
		// invalid token does, not as a client data error
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
