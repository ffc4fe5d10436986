package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type ClientFilter struct {
	Active *bool
	Query  string
}

type ClientRepository interface {
	WithTx(tx *gorm.DB) ClientRepository
	Create(ctx context.Context, client *model.Client) error
	FindAll(ctx context.Context, filter ClientFilter) ([]model.Client, error)
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	FindByEmailUnscoped(ctx context.Context, email string) (*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	SoftDelete(ctx context.Context, id uint, deletedBy string) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) WithTx(tx *gorm.DB) ClientRepository {
	return &clientRepo{tx}
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepo) FindAll(ctx context.Context, filter ClientFilter) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Model(&model.Client{})
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Query != "" {
		p := containsPattern(filter.Query)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(organization_name) LIKE ? OR phone LIKE ?", p, p, p, p)
	}
	err := q.Order("id DESC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByEmailUnscoped includes soft-deleted rows because the unique index does.
func (r *clientRepo) FindByEmailUnscoped(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Unscoped().Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepo) SoftDelete(ctx context.Context, id uint, deletedBy string) error {
	return softDelete(r.db.WithContext(ctx), &model.Client{}, "id = ?", id, deletedBy)
}
