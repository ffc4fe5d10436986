package service

import (
	"context"
	"fmt"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// clock is swapped in tests.
var clock = time.Now

type CreateProductRequest struct {
	AdsID               string                 `json:"ads_id" validate:"required,ads_id"`
	Brand               string                 `json:"brand" validate:"required,max=100"`
	Model               string                 `json:"model" validate:"required,max=150"`
	Condition           model.ProductCondition `json:"condition" validate:"required,oneof=new refurbished used"`
	CostPrice           decimal.Decimal        `json:"cost_price"`
	Specifications      string                 `json:"specifications"`
	Health              model.ProductHealth    `json:"health" validate:"omitempty,oneof=working maintenance expired"`
	Status              model.ProductStatus    `json:"status" validate:"omitempty,oneof=available leased sold returned leased-but-not-working leased-but-maintenance"`
	AuditDate           *string                `json:"audit_date"`
	LastMaintenanceDate *string                `json:"last_maintenance_date"`
	NextMaintenanceDate *string                `json:"next_maintenance_date"`
	AddedDate           *string                `json:"added_date"`
}

// UpdateProductRequest replaces the descriptive fields. Status moves through ChangeStatus.
type UpdateProductRequest struct {
	AdsID               string                 `json:"ads_id" validate:"omitempty,ads_id"`
	Brand               string                 `json:"brand" validate:"required,max=100"`
	Model               string                 `json:"model" validate:"required,max=150"`
	Condition           model.ProductCondition `json:"condition" validate:"required,oneof=new refurbished used"`
	CostPrice           decimal.Decimal        `json:"cost_price"`
	Specifications      string                 `json:"specifications"`
	Health              model.ProductHealth    `json:"health" validate:"required,oneof=working maintenance expired"`
	AuditDate           *string                `json:"audit_date"`
	LastMaintenanceDate *string                `json:"last_maintenance_date"`
	NextMaintenanceDate *string                `json:"next_maintenance_date"`
}

type ChangeStatusRequest struct {
	Status    model.ProductStatus `json:"status" validate:"required,oneof=available leased sold returned leased-but-not-working leased-but-maintenance"`
	EventType model.EventType     `json:"event_type"`
	EventDate *string             `json:"event_date"`
	ClientID  *uint               `json:"client_id"`
	Note      string              `json:"note"`
}

type ProductService interface {
	GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, adsID string) (*model.Product, error)
	GetProductEvents(ctx context.Context, adsID string) ([]model.ProductDateEvent, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest, actor string) (*model.Product, error)
	UpdateProduct(ctx context.Context, adsID string, req *UpdateProductRequest, actor string) (*model.Product, error)
	ChangeStatus(ctx context.Context, adsID string, req *ChangeStatusRequest, actor string) (*model.Product, *model.ProductDateEvent, error)
	DeleteProduct(ctx context.Context, adsID, actor string) error
}

type productService struct {
	productRepo repository.ProductRepository
	eventRepo   repository.DateEventRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, eRepo repository.DateEventRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		eventRepo:   eRepo,
		db:          db,
		wsHub:       hub,
	}
}

// DefaultEventFor picks the timeline event recorded for a status change.
func DefaultEventFor(from, to model.ProductStatus) model.EventType {
	if from == to {
		return model.EventAudited
	}
	switch to {
	case model.StatusSold:
		return model.EventSold
	case model.StatusLeased:
		return model.EventLeased
	case model.StatusReturned:
		return model.EventReturned
	case model.StatusLeasedInMaintenance:
		return model.EventMaintenance
	case model.StatusLeasedNotWorking:
		return model.EventRepairStarted
	default:
		return model.EventResold
	}
}

func validateMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}

func (s *productService) GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx, filter)
}

func (s *productService) GetProduct(ctx context.Context, adsID string) (*model.Product, error) {
	p, err := s.productRepo.FindByAdsID(ctx, adsID)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *productService) GetProductEvents(ctx context.Context, adsID string) ([]model.ProductDateEvent, error) {
	if _, err := s.GetProduct(ctx, adsID); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByAdsID(ctx, adsID)
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest, actor string) (*model.Product, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("cost_price", req.CostPrice); err != nil {
		return nil, err
	}
	product := &model.Product{
		AdsID:          req.AdsID,
		Brand:          req.Brand,
		Model:          req.Model,
		Condition:      req.Condition,
		CostPrice:      req.CostPrice,
		Specifications: req.Specifications,
		Health:         req.Health,
		Status:         req.Status,
	}
	if product.Health == "" {
		product.Health = model.HealthWorking
	}
	if product.Status == "" {
		product.Status = model.StatusAvailable
	}
	if err := applyProductDates(product, req.AuditDate, req.LastMaintenanceDate, req.NextMaintenanceDate); err != nil {
		return nil, err
	}
	addedOn, err := dateOrToday("added_date", req.AddedDate, clock())
	if err != nil {
		return nil, err
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		exists, err := products.ExistsUnscoped(ctx, product.AdsID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAdsIDExists
		}
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Create(ctx, &model.ProductDateEvent{
			AdsID:     product.AdsID,
			EventType: model.EventProductAdded,
			EventDate: addedOn,
			Note:      "Product added to inventory",
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "product",
		Action:  "created",
		Data:    product,
		User:    actor,
		Message: fmt.Sprintf("%s added product %s (%s %s)", actor, product.AdsID, product.Brand, product.Model),
	})
	return product, nil
}

func applyProductDates(p *model.Product, audit, lastMaint, nextMaint *string) error {
	var err error
	if p.AuditDate, err = parseOptionalDate("audit_date", audit); err != nil {
		return err
	}
	if p.LastMaintenanceDate, err = parseOptionalDate("last_maintenance_date", lastMaint); err != nil {
		return err
	}
	if p.NextMaintenanceDate, err = parseOptionalDate("next_maintenance_date", nextMaint); err != nil {
		return err
	}
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, adsID string, req *UpdateProductRequest, actor string) (*model.Product, error) {
	if req.AdsID != "" && req.AdsID != adsID {
		return nil, ErrAdsIDImmutable
	}
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("cost_price", req.CostPrice); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		existing, err := products.FindByAdsIDForUpdate(ctx, adsID)
		if err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}
		existing.Brand = req.Brand
		existing.Model = req.Model
		existing.Condition = req.Condition
		existing.CostPrice = req.CostPrice
		existing.Specifications = req.Specifications
		existing.Health = req.Health
		if err := applyProductDates(existing, req.AuditDate, req.LastMaintenanceDate, req.NextMaintenanceDate); err != nil {
			return err
		}
		existing.UpdatedBy = actor
		if err := products.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "product",
		Action:  "updated",
		Data:    updated,
		User:    actor,
		Message: fmt.Sprintf("%s updated product %s", actor, adsID),
	})
	return updated, nil
}

// ChangeStatus moves a unit to a new status and appends the matching timeline event atomically.
func (s *productService) ChangeStatus(ctx context.Context, adsID string, req *ChangeStatusRequest, actor string) (*model.Product, *model.ProductDateEvent, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, nil, validationError(msg)
	}
	if req.EventType != "" && !req.EventType.Valid() {
		return nil, nil, invalid("unknown event type %q", req.EventType)
	}
	eventDate, err := dateOrToday("event_date", req.EventDate, clock())
	if err != nil {
		return nil, nil, err
	}

	var (
		product *model.Product
		event   *model.ProductDateEvent
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		existing, err := products.FindByAdsIDForUpdate(ctx, adsID)
		if err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}
		eventType := req.EventType
		if eventType == "" {
			eventType = DefaultEventFor(existing.Status, req.Status)
		}
		if err := products.UpdateStatus(ctx, adsID, req.Status, actor); err != nil {
			return err
		}
		existing.Status = req.Status
		existing.UpdatedBy = actor

		event = &model.ProductDateEvent{
			AdsID:     adsID,
			ClientID:  req.ClientID,
			EventType: eventType,
			EventDate: eventDate,
			Note:      req.Note,
			CreatedBy: actor,
		}
		if err := s.eventRepo.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}
		product = existing
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "product",
		Action:  "status_changed",
		Data:    map[string]any{"product": product, "event": event},
		User:    actor,
		Message: fmt.Sprintf("%s set product %s to %s", actor, adsID, req.Status),
	})
	return product, event, nil
}

func (s *productService) DeleteProduct(ctx context.Context, adsID, actor string) error {
	if err := s.productRepo.SoftDelete(ctx, adsID, actor); err != nil {
		return mapNotFound(err, ErrProductNotFound)
	}
	s.wsHub.Publish(ws.Event{
		Type:    "product",
		Action:  "deleted",
		Data:    map[string]string{"ads_id": adsID},
		User:    actor,
		Message: fmt.Sprintf("%s deleted product %s", actor, adsID),
	})
	return nil
}
