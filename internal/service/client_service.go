package service

import (
	"context"
	"errors"
	"strings"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/pkg/validator"

	"gorm.io/gorm"
)

type ClientRequest struct {
	Name             string            `json:"name" validate:"required,max=150"`
	Email            string            `json:"email" validate:"required,email,max=255"`
	Phone            string            `json:"phone" validate:"omitempty,max=20"`
	AlternatePhone   string            `json:"alternate_phone" validate:"omitempty,max=20"`
	Address          string            `json:"address"`
	City             string            `json:"city" validate:"omitempty,max=100"`
	State            string            `json:"state" validate:"omitempty,max=100"`
	Pincode          string            `json:"pincode" validate:"omitempty,max=10"`
	ContactPerson    string            `json:"contact_person" validate:"omitempty,max=150"`
	OrganizationName string            `json:"organization_name" validate:"omitempty,max=200"`
	GSTNumber        string            `json:"gst_number" validate:"omitempty,len=15"`
	IDProofType      model.IDProofType `json:"id_proof_type" validate:"omitempty,oneof=aadhaar pan passport driving-license voter-id gst-certificate other"`
	IDProofNumber    string            `json:"id_proof_number" validate:"omitempty,max=50"`
	IsActive         *bool             `json:"is_active"`
	Notes            string            `json:"notes"`
}

type ClientService interface {
	GetAllClients(ctx context.Context, filter repository.ClientFilter) ([]model.Client, error)
	GetClient(ctx context.Context, id uint) (*model.Client, error)
	CreateClient(ctx context.Context, req *ClientRequest, actor string) (*model.Client, error)
	UpdateClient(ctx context.Context, id uint, req *ClientRequest, actor string) (*model.Client, error)
	DeleteClient(ctx context.Context, id uint, actor string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(cRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: cRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *clientService) GetAllClients(ctx context.Context, filter repository.ClientFilter) ([]model.Client, error) {
	return s.clientRepo.FindAll(ctx, filter)
}

func (s *clientService) GetClient(ctx context.Context, id uint) (*model.Client, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrClientNotFound)
	}
	return c, nil
}

// ensureEmailFree rejects an email held by any client other than selfID, deleted or not.
func (s *clientService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.clientRepo.FindByEmailUnscoped(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}

func applyClient(c *model.Client, req *ClientRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Email = normalizeEmail(req.Email)
	c.Phone = req.Phone
	c.AlternatePhone = req.AlternatePhone
	c.Address = req.Address
	c.City = req.City
	c.State = req.State
	c.Pincode = req.Pincode
	c.ContactPerson = req.ContactPerson
	c.OrganizationName = req.OrganizationName
	c.GSTNumber = strings.ToUpper(req.GSTNumber)
	c.IDProofType = req.IDProofType
	c.IDProofNumber = req.IDProofNumber
	c.Notes = req.Notes
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
}

func (s *clientService) CreateClient(ctx context.Context, req *ClientRequest, actor string) (*model.Client, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	client := &model.Client{IsActive: true}
	applyClient(client, req)
	if err := s.ensureEmailFree(ctx, client.Email, 0); err != nil {
		return nil, err
	}
	client.CreatedBy = actor
	client.UpdatedBy = actor
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id uint, req *ClientRequest, actor string) (*model.Client, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if email := normalizeEmail(req.Email); email != client.Email {
		if err := s.ensureEmailFree(ctx, email, client.ID); err != nil {
			return nil, err
		}
	}
	applyClient(client, req)
	client.UpdatedBy = actor
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id uint, actor string) error {
	if err := s.clientRepo.SoftDelete(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrClientNotFound)
	}
	return nil
}
