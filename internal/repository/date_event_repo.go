package repository

import (
	"context"

	"ads-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type DateEventFilter struct {
	AdsID     string
	EventType string
	ClientID  uint
}

// DateEventRepository is append-only; there is no update or delete.
type DateEventRepository interface {
	WithTx(tx *gorm.DB) DateEventRepository
	Create(ctx context.Context, event *model.ProductDateEvent) error
	FindAll(ctx context.Context, filter DateEventFilter) ([]model.ProductDateEvent, error)
	FindByID(ctx context.Context, id uint) (*model.ProductDateEvent, error)
	FindByAdsID(ctx context.Context, adsID string) ([]model.ProductDateEvent, error)
}

type dateEventRepo struct {
	db *gorm.DB
}

func NewDateEventRepo(db *gorm.DB) DateEventRepository {
	return &dateEventRepo{db}
}

func (r *dateEventRepo) WithTx(tx *gorm.DB) DateEventRepository {
	return &dateEventRepo{tx}
}

func (r *dateEventRepo) Create(ctx context.Context, event *model.ProductDateEvent) error {
	return r.db.WithContext(ctx).Omit("Product").Create(event).Error
}

func (r *dateEventRepo) FindAll(ctx context.Context, filter DateEventFilter) ([]model.ProductDateEvent, error) {
	var events []model.ProductDateEvent
	q := r.db.WithContext(ctx)
	if filter.AdsID != "" {
		q = q.Where("ads_id = ?", filter.AdsID)
	}
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	err := q.Order("event_date DESC, id DESC").Find(&events).Error
	return events, err
}

func (r *dateEventRepo) FindByID(ctx context.Context, id uint) (*model.ProductDateEvent, error) {
	var event model.ProductDateEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByAdsID returns the unit's timeline oldest first.
func (r *dateEventRepo) FindByAdsID(ctx context.Context, adsID string) ([]model.ProductDateEvent, error) {
	var events []model.ProductDateEvent
	err := r.db.WithContext(ctx).
		Where("ads_id = ?", adsID).
		Order("event_date ASC, id ASC").
		Find(&events).Error
	return events, err
}
