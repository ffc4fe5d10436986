package service

import (
	"context"
	"fmt"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecoveryRequest struct {
	OriginalAdsID *string              `json:"original_ads_id" validate:"omitempty,ads_id"`
	ClientID      *uint                `json:"client_id"`
	Brand         string               `json:"brand" validate:"required,max=100"`
	Model         string               `json:"model" validate:"required,max=150"`
	SerialNumber  string               `json:"serial_number" validate:"omitempty,max=100"`
	Problem       string               `json:"problem"`
	RepairCost    decimal.Decimal      `json:"repair_cost"`
	Status        model.RecoveryStatus `json:"status" validate:"omitempty,oneof=received repairing ready sold"`
	ReceivedDate  *string              `json:"received_date"`
	Notes         string               `json:"notes"`
}

type RecoveryService interface {
	GetAllRecoveryItems(ctx context.Context, filter repository.RecoveryFilter) ([]model.RecoveryItem, error)
	GetRecoveryItem(ctx context.Context, id uint) (*model.RecoveryItem, error)
	CreateRecoveryItem(ctx context.Context, req *RecoveryRequest, actor string) (*model.RecoveryItem, error)
	UpdateRecoveryItem(ctx context.Context, id uint, req *RecoveryRequest, actor string) (*model.RecoveryItem, error)
	DeleteRecoveryItem(ctx context.Context, id uint, actor string) error
}

type recoveryService struct {
	recoveryRepo repository.RecoveryRepository
	productRepo  repository.ProductRepository
	clientRepo   repository.ClientRepository
	eventRepo    repository.DateEventRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewRecoveryService(
	rRepo repository.RecoveryRepository,
	pRepo repository.ProductRepository,
	cRepo repository.ClientRepository,
	eRepo repository.DateEventRepository,
	db *gorm.DB,
	hub *ws.Hub,
) RecoveryService {
	return &recoveryService{
		recoveryRepo: rRepo,
		productRepo:  pRepo,
		clientRepo:   cRepo,
		eventRepo:    eRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *recoveryService) GetAllRecoveryItems(ctx context.Context, filter repository.RecoveryFilter) ([]model.RecoveryItem, error) {
	return s.recoveryRepo.FindAll(ctx, filter)
}

func (s *recoveryService) GetRecoveryItem(ctx context.Context, id uint) (*model.RecoveryItem, error) {
	item, err := s.recoveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrRecoveryNotFound)
	}
	return item, nil
}

// checkLinks verifies the optional product and client references.
func (s *recoveryService) checkLinks(ctx context.Context, tx *gorm.DB, req *RecoveryRequest) error {
	if req.OriginalAdsID != nil && *req.OriginalAdsID != "" {
		if _, err := s.productRepo.WithTx(tx).FindByAdsID(ctx, *req.OriginalAdsID); err != nil {
			return mapNotFound(err, ErrProductNotFound)
		}
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.WithTx(tx).FindByID(ctx, *req.ClientID); err != nil {
			return mapNotFound(err, ErrClientNotFound)
		}
	}
	return nil
}

func (s *recoveryService) validate(req *RecoveryRequest) error {
	if msg := validator.FirstError(req); msg != "" {
		return validationError(msg)
	}
	return validateMoney("repair_cost", req.RepairCost)
}

// CreateRecoveryItem logs RECOVERY_RECEIVED on the original unit's timeline. The unit's status is untouched.
func (s *recoveryService) CreateRecoveryItem(ctx context.Context, req *RecoveryRequest, actor string) (*model.RecoveryItem, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	received, err := dateOrToday("received_date", req.ReceivedDate, clock())
	if err != nil {
		return nil, err
	}
	item := &model.RecoveryItem{
		OriginalAdsID: blankToNil(req.OriginalAdsID),
		ClientID:      req.ClientID,
		Brand:         req.Brand,
		Model:         req.Model,
		SerialNumber:  req.SerialNumber,
		Problem:       req.Problem,
		RepairCost:    req.RepairCost,
		Status:        req.Status,
		ReceivedDate:  received,
		Notes:         req.Notes,
	}
	if item.Status == "" {
		item.Status = model.RecoveryReceived
	}
	item.CreatedBy = actor
	item.UpdatedBy = actor

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkLinks(ctx, tx, req); err != nil {
			return err
		}
		if err := s.recoveryRepo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		if item.OriginalAdsID == nil {
			return nil
		}
		return s.eventRepo.WithTx(tx).Create(ctx, &model.ProductDateEvent{
			AdsID:     *item.OriginalAdsID,
			ClientID:  item.ClientID,
			EventType: model.EventRecoveryReceived,
			EventDate: received,
			Note:      item.Problem,
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "recovery",
		Action:  "created",
		Data:    item,
		User:    actor,
		Message: fmt.Sprintf("%s received recovery item %s %s", actor, item.Brand, item.Model),
	})
	return item, nil
}

// UpdateRecoveryItem logs RECOVERY_READY when the item first moves to ready.
func (s *recoveryService) UpdateRecoveryItem(ctx context.Context, id uint, req *RecoveryRequest, actor string) (*model.RecoveryItem, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var item *model.RecoveryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := s.recoveryRepo.WithTx(tx)
		existing, err := items.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapNotFound(err, ErrRecoveryNotFound)
		}
		if err := s.checkLinks(ctx, tx, req); err != nil {
			return err
		}
		if req.ReceivedDate != nil {
			if existing.ReceivedDate, err = parseDate("received_date", *req.ReceivedDate); err != nil {
				return err
			}
		}
		becameReady := req.Status == model.RecoveryReady && existing.Status != model.RecoveryReady

		existing.OriginalAdsID = blankToNil(req.OriginalAdsID)
		existing.ClientID = req.ClientID
		existing.Brand = req.Brand
		existing.Model = req.Model
		existing.SerialNumber = req.SerialNumber
		existing.Problem = req.Problem
		existing.RepairCost = req.RepairCost
		if req.Status != "" {
			existing.Status = req.Status
		}
		existing.Notes = req.Notes
		existing.UpdatedBy = actor
		if err := items.Update(ctx, existing); err != nil {
			return err
		}
		item = existing

		if !becameReady || existing.OriginalAdsID == nil {
			return nil
		}
		return s.eventRepo.WithTx(tx).Create(ctx, &model.ProductDateEvent{
			AdsID:     *existing.OriginalAdsID,
			ClientID:  existing.ClientID,
			EventType: model.EventRecoveryReady,
			EventDate: today(clock()),
			Note:      fmt.Sprintf("Repair cost %s", existing.RepairCost.StringFixed(2)),
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "recovery",
		Action:  "updated",
		Data:    item,
		User:    actor,
		Message: fmt.Sprintf("%s updated recovery item %d (%s)", actor, item.ID, item.Status),
	})
	return item, nil
}

func (s *recoveryService) DeleteRecoveryItem(ctx context.Context, id uint, actor string) error {
	if err := s.recoveryRepo.SoftDelete(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrRecoveryNotFound)
	}
	s.wsHub.Publish(ws.Event{
		Type:   "recovery",
		Action: "deleted",
		Data:   map[string]uint{"id": id},
		User:   actor,
	})
	return nil
}
