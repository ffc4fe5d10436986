package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type ProductFilter struct {
	Status    string
	Health    string
	Brand     string
	Condition string
	Query     string
}

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByAdsID(ctx context.Context, adsID string) (*model.Product, error)
	FindByAdsIDForUpdate(ctx context.Context, adsID string) (*model.Product, error)
	FindLiveAdsIDs(ctx context.Context, adsIDs []string) ([]string, error)
	ExistsUnscoped(ctx context.Context, adsID string) (bool, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateStatus(ctx context.Context, adsID string, status model.ProductStatus, updatedBy string) error
	SoftDelete(ctx context.Context, adsID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindAll excludes soft-deleted units through gorm's default scope.
func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Health != "" {
		q = q.Where("health = ?", filter.Health)
	}
	if filter.Condition != "" {
		q = q.Where("condition = ?", filter.Condition)
	}
	if filter.Brand != "" {
		q = q.Where("LOWER(brand) = LOWER(?)", filter.Brand)
	}
	if filter.Query != "" {
		p := containsPattern(filter.Query)
		q = q.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR ads_id LIKE ?", p, p, p)
	}
	err := q.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByAdsID(ctx context.Context, adsID string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "ads_id = ?", adsID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByAdsIDForUpdate locks the row; call it on a repository bound to a transaction.
func (r *productRepo) FindByAdsIDForUpdate(ctx context.Context, adsID string) (*model.Product, error) {
	var product model.Product
	if err := lockForUpdate(r.db.WithContext(ctx)).First(&product, "ads_id = ?", adsID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindLiveAdsIDs returns the subset of adsIDs that exist and are not soft-deleted.
func (r *productRepo) FindLiveAdsIDs(ctx context.Context, adsIDs []string) ([]string, error) {
	var found []string
	if len(adsIDs) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("ads_id IN ?", adsIDs).
		Pluck("ads_id", &found).Error
	return found, err
}

// ExistsUnscoped also sees soft-deleted units, since ads ids are never reused.
func (r *productRepo) ExistsUnscoped(ctx context.Context, adsID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Product{}).Where("ads_id = ?", adsID).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateStatus(ctx context.Context, adsID string, status model.ProductStatus, updatedBy string) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("ads_id = ?", adsID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, adsID, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.Product{}, "ads_id = ?", adsID, deletedBy)
}
