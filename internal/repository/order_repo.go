package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type OrderFilter struct {
	ClientID  uint
	OrderType string
}

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *model.Order) error
	FindAll(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error)
	FindByOrderIDForUpdate(ctx context.Context, orderID string) (*model.Order, error)
	FindOrderIDsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	IncrementDelivered(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, order *model.Order) error
	SoftDelete(ctx context.Context, id uint, deletedBy string) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepo{tx}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("Client").Create(order).Error
}

func (r *orderRepo) FindAll(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Preload("Client")
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.OrderType != "" {
		q = q.Where("order_type = ?", filter.OrderType)
	}
	err := q.Order("order_date DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Client").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Client").First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row without preloading the client.
func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := lockForUpdate(r.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	if err := lockForUpdate(r.db.WithContext(ctx)).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// IncrementDelivered counts one more delivered piece. It reports false when the order is already full.
func (r *orderRepo) IncrementDelivered(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND delivered_pieces < required_pieces", id).
		Update("delivered_pieces", gorm.Expr("delivered_pieces + 1"))
	return res.RowsAffected > 0, res.Error
}

// FindOrderIDsWithPrefix sees soft-deleted orders too; the unique index covers them.
func (r *orderRepo) FindOrderIDsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Order{}).
		Where("order_id LIKE ?", prefix+"%").
		Pluck("order_id", &ids).Error
	return ids, err
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("Client").Save(order).Error
}

func (r *orderRepo) SoftDelete(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.Order{}, "id = ?", id, deletedBy)
}
