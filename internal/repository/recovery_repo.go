package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type RecoveryFilter struct {
	Status        string
	OriginalAdsID string
}

type RecoveryRepository interface {
	WithTx(tx *gorm.DB) RecoveryRepository
	Create(ctx context.Context, item *model.RecoveryItem) error
	FindAll(ctx context.Context, filter RecoveryFilter) ([]model.RecoveryItem, error)
	FindByID(ctx context.Context, id uint) (*model.RecoveryItem, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.RecoveryItem, error)
	Update(ctx context.Context, item *model.RecoveryItem) error
	SoftDelete(ctx context.Context, id uint, deletedBy string) error
}

type recoveryRepo struct {
	db *gorm.DB
}

func NewRecoveryRepo(db *gorm.DB) RecoveryRepository {
	return &recoveryRepo{db}
}

func (r *recoveryRepo) WithTx(tx *gorm.DB) RecoveryRepository {
	return &recoveryRepo{tx}
}

func (r *recoveryRepo) Create(ctx context.Context, item *model.RecoveryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *recoveryRepo) FindAll(ctx context.Context, filter RecoveryFilter) ([]model.RecoveryItem, error) {
	var items []model.RecoveryItem
	q := r.db.WithContext(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OriginalAdsID != "" {
		q = q.Where("original_ads_id = ?", filter.OriginalAdsID)
	}
	err := q.Order("received_date DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *recoveryRepo) FindByID(ctx context.Context, id uint) (*model.RecoveryItem, error) {
	var item model.RecoveryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *recoveryRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.RecoveryItem, error) {
	var item model.RecoveryItem
	if err := lockForUpdate(r.db.WithContext(ctx)).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *recoveryRepo) Update(ctx context.Context, item *model.RecoveryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *recoveryRepo) SoftDelete(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.RecoveryItem{}, "id = ?", id, deletedBy)
}
