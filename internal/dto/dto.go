package dto

import (
	"order-system-api/internal/model"

	"github.com/shopspring/decimal"
)

type CriarContaRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Ativo *bool  `json:"ativo,omitempty"`
	Admin *bool  `json:"admin,omitempty"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CriarPedidoRequest struct {
	Usuario uint `json:"usuario"`
}

type AdicionarItemRequest struct {
	Quantidade    int             `json:"quantidade"`
	Sabor         string          `json:"sabor"`
	Tamanho       string          `json:"tamanho"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
}

type MensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

type AdicionarItemResponse struct {
	Mensagem    string          `json:"mensagem"`
	ItemID      uint            `json:"item_id"`
	PrecoPedido decimal.Decimal `json:"preco_pedido"`
}

type RemoverItemResponse struct {
	Mensagem              string        `json:"mensagem"`
	QuantidadeItensPedido int           `json:"quantidade_itens_pedido"`
	Pedido                *model.Pedido `json:"pedido"`
}

type PedidoResponse struct {
	Mensagem string        `json:"mensagem"`
	Pedido   *model.Pedido `json:"pedido"`
}

type VisualizarPedidoResponse struct {
	QuantidadeItensPedido int           `json:"quantidade_itens_pedido"`
	Pedido                *model.Pedido `json:"pedido"`
}

type ListarPedidosResponse struct {
	Pedidos []*model.Pedido `json:"pedidos"`
}
