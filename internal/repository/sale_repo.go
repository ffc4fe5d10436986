package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type SaleFilter struct {
	ClientID uint
	OrderID  string
	AdsID    string
}

type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository

	CreateBuy(ctx context.Context, sale *model.SalesBuy) error
	FindAllBuy(ctx context.Context, filter SaleFilter) ([]model.SalesBuy, error)
	FindBuyByID(ctx context.Context, id uint) (*model.SalesBuy, error)
	UpdateBuy(ctx context.Context, sale *model.SalesBuy) error
	SoftDeleteBuy(ctx context.Context, id uint, deletedBy string) error

	CreateRent(ctx context.Context, sale *model.SalesRent) error
	FindAllRent(ctx context.Context, filter SaleFilter) ([]model.SalesRent, error)
	FindRentByID(ctx context.Context, id uint) (*model.SalesRent, error)
	UpdateRent(ctx context.Context, sale *model.SalesRent) error
	UpdateRentPaymentStatus(ctx context.Context, id uint, status model.RentPaymentStatus, updatedBy string) error
	SoftDeleteRent(ctx context.Context, id uint, deletedBy string) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) WithTx(tx *gorm.DB) SaleRepository {
	return &saleRepo{tx}
}

func (r *saleRepo) filtered(ctx context.Context, filter SaleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Preload("Product").Preload("Client")
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.OrderID != "" {
		q = q.Where("order_id = ?", filter.OrderID)
	}
	if filter.AdsID != "" {
		q = q.Where("ads_id = ?", filter.AdsID)
	}
	return q
}

func (r *saleRepo) CreateBuy(ctx context.Context, sale *model.SalesBuy) error {
	return r.db.WithContext(ctx).Omit("Product", "Client").Create(sale).Error
}

func (r *saleRepo) FindAllBuy(ctx context.Context, filter SaleFilter) ([]model.SalesBuy, error) {
	var sales []model.SalesBuy
	err := r.filtered(ctx, filter).Order("sale_date DESC, id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindBuyByID(ctx context.Context, id uint) (*model.SalesBuy, error) {
	var sale model.SalesBuy
	if err := r.db.WithContext(ctx).Preload("Product").Preload("Client").First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) UpdateBuy(ctx context.Context, sale *model.SalesBuy) error {
	return r.db.WithContext(ctx).Omit("Product", "Client").Save(sale).Error
}

func (r *saleRepo) SoftDeleteBuy(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.SalesBuy{}, "id = ?", id, deletedBy)
}

func (r *saleRepo) CreateRent(ctx context.Context, sale *model.SalesRent) error {
	return r.db.WithContext(ctx).Omit("Product", "Client").Create(sale).Error
}

func (r *saleRepo) FindAllRent(ctx context.Context, filter SaleFilter) ([]model.SalesRent, error) {
	var sales []model.SalesRent
	err := r.filtered(ctx, filter).Order("start_date DESC, id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRentByID(ctx context.Context, id uint) (*model.SalesRent, error) {
	var sale model.SalesRent
	if err := r.db.WithContext(ctx).Preload("Product").Preload("Client").First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) UpdateRent(ctx context.Context, sale *model.SalesRent) error {
	return r.db.WithContext(ctx).Omit("Product", "Client").Save(sale).Error
}

func (r *saleRepo) UpdateRentPaymentStatus(ctx context.Context, id uint, status model.RentPaymentStatus, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.SalesRent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status": status,
		"updated_by":     updatedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) SoftDeleteRent(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.SalesRent{}, "id = ?", id, deletedBy)
}
