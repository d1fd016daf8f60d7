package service

import (
	"context"
	"errors"
	"fmt"

	"order-system-api/internal/model"
	"order-system-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, caller *model.Usuario, ownerID uint) (*model.Pedido, error)
	AddItem(ctx context.Context, caller *model.Usuario, orderID uint, quantidade int, sabor, tamanho string, precoUnitario decimal.Decimal) (*model.ItemPedido, *model.Pedido, error)
	RemoveItem(ctx context.Context, caller *model.Usuario, itemID uint) (*model.Pedido, error)
	Finalize(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error)
	Cancel(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error)
	Get(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error)
	ListForUser(ctx context.Context, caller *model.Usuario) ([]*model.Pedido, error)
	ListAll(ctx context.Context, caller *model.Usuario) ([]*model.Pedido, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// canAccess is the single authorization rule for every order-scoped
// operation: admins touch anything, everyone else only their own orders.
func canAccess(caller *model.Usuario, order *model.Pedido) bool {
	return caller.Admin || caller.ID == order.Usuario
}

func (s *orderServiceImpl) Create(ctx context.Context, caller *model.Usuario, ownerID uint) (*model.Pedido, error) {
	if !caller.Admin && caller.ID != ownerID {
		return nil, ErrForbidden
	}
	if caller.Admin && caller.ID != ownerID {
		// admin creating on behalf of someone else: the target must exist
		if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("lookup owner: %w", err)
		}
	}

	order := &model.Pedido{
		Status:  model.StatusPendente,
		Usuario: ownerID,
		Preco:   decimal.Zero,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) AddItem(ctx context.Context, caller *model.Usuario, orderID uint, quantidade int, sabor, tamanho string, precoUnitario decimal.Decimal) (*model.ItemPedido, *model.Pedido, error) {
	if quantidade <= 0 || precoUnitario.IsNegative() {
		return nil, nil, ErrValidation
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != model.StatusPendente {
		return nil, nil, ErrOrderClosed
	}
	if !canAccess(caller, order) {
		return nil, nil, ErrForbidden
	}

	item := &model.ItemPedido{
		Pedido:        orderID,
		Quantidade:    quantidade,
		Sabor:         sabor,
		Tamanho:       tamanho,
		PrecoUnitario: precoUnitario,
	}
	order, err = s.orderRepo.AddItem(ctx, item)
	if err != nil {
		return nil, nil, fmt.Errorf("add item: %w", err)
	}

	return item, order, nil
}

func (s *orderServiceImpl) RemoveItem(ctx context.Context, caller *model.Usuario, itemID uint) (*model.Pedido, error) {
	item, err := s.orderRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}

	order, err := s.findOrder(ctx, item.Pedido)
	if err != nil {
		return nil, err
	}
	if order.Status != model.StatusPendente {
		return nil, ErrOrderClosed
	}
	if !canAccess(caller, order) {
		return nil, ErrForbidden
	}

	order, err = s.orderRepo.RemoveItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("remove item: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) Finalize(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error) {
	return s.transition(ctx, caller, orderID, model.StatusFinalizado)
}

func (s *orderServiceImpl) Cancel(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error) {
	return s.transition(ctx, caller, orderID, model.StatusCancelado)
}

// transition moves a PENDENTE order into a terminal status. Terminal
// orders stay put: no FINALIZADO→CANCELADO or re-finalize.
func (s *orderServiceImpl) transition(ctx context.Context, caller *model.Usuario, orderID uint, to string) (*model.Pedido, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, order) {
		return nil, ErrForbidden
	}
	if order.Status != model.StatusPendente {
		return nil, ErrOrderClosed
	}

	err = s.orderRepo.UpdateStatus(ctx, orderID, model.StatusPendente, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lost a race against another transition
			return nil, ErrOrderClosed
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	order.Status = to
	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, caller *model.Usuario, orderID uint) (*model.Pedido, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, order) {
		return nil, ErrForbidden
	}

	return order, nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, caller *model.Usuario) ([]*model.Pedido, error) {
	return s.orderRepo.ListByUser(ctx, caller.ID)
}

func (s *orderServiceImpl) ListAll(ctx context.Context, caller *model.Usuario) ([]*model.Pedido, error) {
	if !caller.Admin {
		return nil, ErrForbidden
	}
	return s.orderRepo.ListAll(ctx)
}

func (s *orderServiceImpl) findOrder(ctx context.Context, orderID uint) (*model.Pedido, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	return order, nil
}
