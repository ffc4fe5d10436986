package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type RequirementFilter struct {
	ClientID uint
	Status   string
}

type RequirementRepository interface {
	Create(ctx context.Context, req *model.ClientRequirement) error
	FindAll(ctx context.Context, filter RequirementFilter) ([]model.ClientRequirement, error)
	FindByID(ctx context.Context, id uint) (*model.ClientRequirement, error)
	Update(ctx context.Context, req *model.ClientRequirement) error
	SoftDelete(ctx context.Context, id uint, deletedBy string) error
}

type requirementRepo struct {
	db *gorm.DB
}

func NewRequirementRepo(db *gorm.DB) RequirementRepository {
	return &requirementRepo{db}
}

func (r *requirementRepo) Create(ctx context.Context, req *model.ClientRequirement) error {
	return r.db.WithContext(ctx).Omit("Client").Create(req).Error
}

func (r *requirementRepo) FindAll(ctx context.Context, filter RequirementFilter) ([]model.ClientRequirement, error) {
	var reqs []model.ClientRequirement
	q := r.db.WithContext(ctx).Preload("Client")
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *requirementRepo) FindByID(ctx context.Context, id uint) (*model.ClientRequirement, error) {
	var req model.ClientRequirement
	if err := r.db.WithContext(ctx).Preload("Client").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepo) Update(ctx context.Context, req *model.ClientRequirement) error {
	return r.db.WithContext(ctx).Omit("Client").Save(req).Error
}

func (r *requirementRepo) SoftDelete(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.ClientRequirement{}, "id = ?", id, deletedBy)
}
