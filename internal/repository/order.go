package repository

import (
	"context"
	"time"

	"order-system-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Pedido) error
	FindByID(ctx context.Context, orderID uint) (*model.Pedido, error)
	FindItemByID(ctx context.Context, itemID uint) (*model.ItemPedido, error)
	ListAll(ctx context.Context) ([]*model.Pedido, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Pedido, error)
	UpdateStatus(ctx context.Context, orderID uint, from, to string) error
	AddItem(ctx context.Context, item *model.ItemPedido) (*model.Pedido, error)
	RemoveItem(ctx context.Context, item *model.ItemPedido) (*model.Pedido, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Pedido) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Pedido, error) {
	var order model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindItemByID(ctx context.Context, itemID uint) (*model.ItemPedido, error) {
	var item model.ItemPedido
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Pedido, error) {
	var orders []*model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Pedido, error) {
	var orders []*model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("usuario = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus moves an order from one status to another. The current
// status is part of the predicate so a concurrent transition loses
// cleanly instead of overwriting a terminal state.
func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID uint, from, to string) error {
	result := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// AddItem inserts the item and recomputes the order total from the full
// item set, all inside one transaction. Returns the reloaded order.
func (r *orderRepoImpl) AddItem(ctx context.Context, item *model.ItemPedido) (*model.Pedido, error) {
	var order model.Pedido
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, item.Pedido, &order)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// RemoveItem deletes the item and recomputes the order total, mirroring
// AddItem's transaction shape.
func (r *orderRepoImpl) RemoveItem(ctx context.Context, item *model.ItemPedido) (*model.Pedido, error) {
	var order model.Pedido
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		return recomputeTotal(tx, item.Pedido, &order)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func recomputeTotal(tx *gorm.DB, orderID uint, order *model.Pedido) error {
	if err := tx.Preload("Itens").Where("id = ?", orderID).First(order).Error; err != nil {
		return err
	}

	order.CalcularPreco()

	return tx.Model(&model.Pedido{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"preco":      order.Preco,
			"updated_at": time.Now(),
		}).Error
}
