package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"order-system-api/internal/dto"
	"order-system-api/internal/middleware"
	"order-system-api/internal/model"
	"order-system-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func currentUser(c echo.Context) *model.Usuario {
	return c.Get(middleware.CurrentUserKey).(*model.Usuario)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("parâmetro %s inválido", name))
	}
	return uint(id), nil
}

func (h *OrderHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MensagemResponse{
		Mensagem: "Você acessou a rota de pedidos",
	})
}

func (h *OrderHandler) CriarPedido(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CriarPedidoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo da requisição inválido")
	}

	order, err := h.orderService.Create(ctx, currentUser(c), req.Usuario)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MensagemResponse{
		Mensagem: fmt.Sprintf("Pedido criado com sucesso. ID do pedido: %d", order.ID),
	})
}

func (h *OrderHandler) AdicionarItem(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AdicionarItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo da requisição inválido")
	}

	item, order, err := h.orderService.AddItem(ctx, currentUser(c), orderID, req.Quantidade, req.Sabor, req.Tamanho, req.PrecoUnitario)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.AdicionarItemResponse{
		Mensagem:    "Item adicionado com sucesso ao pedido",
		ItemID:      item.ID,
		PrecoPedido: order.Preco,
	})
}

func (h *OrderHandler) RemoverItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.RemoveItem(ctx, currentUser(c), itemID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.RemoverItemResponse{
		Mensagem:              "Item removido com sucesso",
		QuantidadeItensPedido: len(order.Itens),
		Pedido:                order,
	})
}

func (h *OrderHandler) FinalizarPedido(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.Finalize(ctx, currentUser(c), orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.PedidoResponse{
		Mensagem: fmt.Sprintf("Pedido número: %d finalizado com sucesso", order.ID),
		Pedido:   order,
	})
}

func (h *OrderHandler) CancelarPedido(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.Cancel(ctx, currentUser(c), orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.PedidoResponse{
		Mensagem: fmt.Sprintf("Pedido número: %d cancelado com sucesso", order.ID),
		Pedido:   order,
	})
}

func (h *OrderHandler) VisualizarPedido(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, currentUser(c), orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.VisualizarPedidoResponse{
		QuantidadeItensPedido: len(order.Itens),
		Pedido:                order,
	})
}

func (h *OrderHandler) ListarPedidosUsuario(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListForUser(ctx, currentUser(c))
	if err != nil {
		return httpError(err)
	}
	if orders == nil {
		orders = []*model.Pedido{}
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListarTodosPedidos(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx, currentUser(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.ListarPedidosResponse{Pedidos: orders})
}
