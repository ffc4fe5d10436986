package service

import (
	"context"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/pkg/validator"

	"github.com/shopspring/decimal"
)

type RequirementRequest struct {
	ClientID      uint                    `json:"client_id" validate:"required"`
	Brand         string                  `json:"brand" validate:"omitempty,max=100"`
	Model         string                  `json:"model" validate:"omitempty,max=150"`
	Configuration string                  `json:"configuration"`
	Quantity      int                     `json:"quantity" validate:"required,gt=0"`
	Budget        decimal.Decimal         `json:"budget"`
	RequiredBy    *string                 `json:"required_by"`
	Status        model.RequirementStatus `json:"status" validate:"omitempty,oneof=open fulfilled cancelled"`
	Notes         string                  `json:"notes"`
}

type RequirementService interface {
	GetAllRequirements(ctx context.Context, filter repository.RequirementFilter) ([]model.ClientRequirement, error)
	GetRequirement(ctx context.Context, id uint) (*model.ClientRequirement, error)
	CreateRequirement(ctx context.Context, req *RequirementRequest, actor string) (*model.ClientRequirement, error)
	UpdateRequirement(ctx context.Context, id uint, req *RequirementRequest, actor string) (*model.ClientRequirement, error)
	DeleteRequirement(ctx context.Context, id uint, actor string) error
}

type requirementService struct {
	reqRepo    repository.RequirementRepository
	clientRepo repository.ClientRepository
}

func NewRequirementService(rRepo repository.RequirementRepository, cRepo repository.ClientRepository) RequirementService {
	return &requirementService{reqRepo: rRepo, clientRepo: cRepo}
}

func (s *requirementService) GetAllRequirements(ctx context.Context, filter repository.RequirementFilter) ([]model.ClientRequirement, error) {
	return s.reqRepo.FindAll(ctx, filter)
}

func (s *requirementService) GetRequirement(ctx context.Context, id uint) (*model.ClientRequirement, error) {
	r, err := s.reqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrRequirementNotFound)
	}
	return r, nil
}

func (s *requirementService) apply(ctx context.Context, r *model.ClientRequirement, req *RequirementRequest) error {
	if msg := validator.FirstError(req); msg != "" {
		return validationError(msg)
	}
	if err := validateMoney("budget", req.Budget); err != nil {
		return err
	}
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return mapNotFound(err, ErrClientNotFound)
	}
	requiredBy, err := parseOptionalDate("required_by", req.RequiredBy)
	if err != nil {
		return err
	}
	r.ClientID = req.ClientID
	r.Brand = req.Brand
	r.Model = req.Model
	r.Configuration = req.Configuration
	r.Quantity = req.Quantity
	r.Budget = req.Budget
	r.RequiredBy = requiredBy
	r.Notes = req.Notes
	if req.Status != "" {
		r.Status = req.Status
	}
	if r.Status == "" {
		r.Status = model.RequirementOpen
	}
	return nil
}

func (s *requirementService) CreateRequirement(ctx context.Context, req *RequirementRequest, actor string) (*model.ClientRequirement, error) {
	r := &model.ClientRequirement{}
	if err := s.apply(ctx, r, req); err != nil {
		return nil, err
	}
	r.CreatedBy = actor
	r.UpdatedBy = actor
	if err := s.reqRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *requirementService) UpdateRequirement(ctx context.Context, id uint, req *RequirementRequest, actor string) (*model.ClientRequirement, error) {
	r, err := s.GetRequirement(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, r, req); err != nil {
		return nil, err
	}
	r.Client = nil
	r.UpdatedBy = actor
	if err := s.reqRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *requirementService) DeleteRequirement(ctx context.Context, id uint, actor string) error {
	if err := s.reqRepo.SoftDelete(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrRequirementNotFound)
	}
	return nil
}
