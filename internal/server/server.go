package server

import (
	"context"

	"order-system-api/internal/handler"
	appmiddleware "order-system-api/internal/middleware"
	"order-system-api/internal/repository"
	"order-system-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo         *echo.Echo
	authHandler  *handler.AuthHandler
	orderHandler *handler.OrderHandler
	auth         echo.MiddlewareFunc
}

func NewServer(
	authService service.AuthService,
	orderService service.OrderService,
	tokenService service.TokenService,
	userRepo repository.UserRepository,
	tokenFile string,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:         e,
		authHandler:  handler.NewAuthHandler(authService, tokenFile),
		orderHandler: handler.NewOrderHandler(orderService),
		auth:         appmiddleware.AuthMiddleware(tokenService, userRepo),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := s.echo.Group("/auth")
	auth.GET("/", s.authHandler.Home)
	auth.POST("/criar_conta", s.authHandler.CriarConta)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/login-form", s.authHandler.LoginForm)
	auth.POST("/refresh", s.authHandler.Refresh)

	// -------- pedidos (bearer token required) --------
	pedidos := s.echo.Group("/pedidos", s.auth)
	pedidos.GET("/", s.orderHandler.Home)
	pedidos.POST("/pedido", s.orderHandler.CriarPedido)
	pedidos.POST("/pedido/adicionar-item/:id", s.orderHandler.AdicionarItem)
	pedidos.DELETE("/pedido/remover-item/:id", s.orderHandler.RemoverItem)
	pedidos.POST("/pedido/finalizar/:id", s.orderHandler.FinalizarPedido)
	pedidos.POST("/pedido/cancelar/:id", s.orderHandler.CancelarPedido)
	pedidos.GET("/pedido/:id", s.orderHandler.VisualizarPedido)
	pedidos.GET("/listar/pedidos-usuario", s.orderHandler.ListarPedidosUsuario)
	pedidos.GET("/pedidos/listar", s.orderHandler.ListarTodosPedidos)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
