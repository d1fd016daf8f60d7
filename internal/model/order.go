package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses. PENDENTE is the only state that accepts
// item mutations or status transitions.
const (
	StatusPendente   = "PENDENTE"
	StatusFinalizado = "FINALIZADO"
	StatusCancelado  = "CANCELADO"
)

type Pedido struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"size:32;index;not null" json:"status"`
	// FK → usuarios.id (order owner)
	Usuario   uint            `gorm:"index;not null" json:"usuario"`
	Preco     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"preco"`
	Itens     []ItemPedido    `gorm:"foreignKey:Pedido;constraint:OnDelete:CASCADE" json:"itens"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

type ItemPedido struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FK → pedidos.id
	Pedido        uint            `gorm:"index;not null" json:"pedido"`
	Quantidade    int             `gorm:"not null" json:"quantidade"`
	Sabor         string          `gorm:"size:128;not null" json:"sabor"`
	Tamanho       string          `gorm:"size:64;not null" json:"tamanho"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"preco_unitario"`
	CreatedAt     time.Time       `json:"-"`
}

// CalcularPreco recomputes the derived total from the full item set.
// Always from scratch, never incremental, so a partial failure cannot
// leave the cached total drifted.
func (p *Pedido) CalcularPreco() {
	total := decimal.Zero
	for _, item := range p.Itens {
		total = total.Add(item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))))
	}
	p.Preco = total
}
