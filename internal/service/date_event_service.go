package service

import (
	"context"
	"fmt"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/validator"
)

// DateEventRequest has no created_at: the server stamps it.
type DateEventRequest struct {
	AdsID     string          `json:"ads_id" validate:"required,ads_id"`
	ClientID  *uint           `json:"client_id"`
	EventType model.EventType `json:"event_type" validate:"required"`
	EventDate *string         `json:"event_date"`
	Note      string          `json:"note"`
}

type DateEventService interface {
	GetAllEvents(ctx context.Context, filter repository.DateEventFilter) ([]model.ProductDateEvent, error)
	GetEvent(ctx context.Context, id uint) (*model.ProductDateEvent, error)
	CreateEvent(ctx context.Context, req *DateEventRequest, actor string) (*model.ProductDateEvent, error)
}

type dateEventService struct {
	eventRepo   repository.DateEventRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	wsHub       *ws.Hub
}

func NewDateEventService(eRepo repository.DateEventRepository, pRepo repository.ProductRepository, cRepo repository.ClientRepository, hub *ws.Hub) DateEventService {
	return &dateEventService{
		eventRepo:   eRepo,
		productRepo: pRepo,
		clientRepo:  cRepo,
		wsHub:       hub,
	}
}

func (s *dateEventService) GetAllEvents(ctx context.Context, filter repository.DateEventFilter) ([]model.ProductDateEvent, error) {
	return s.eventRepo.FindAll(ctx, filter)
}

func (s *dateEventService) GetEvent(ctx context.Context, id uint) (*model.ProductDateEvent, error) {
	e, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrEventNotFound)
	}
	return e, nil
}

// CreateEvent appends to the timeline only; it never changes the product's status.
func (s *dateEventService) CreateEvent(ctx context.Context, req *DateEventRequest, actor string) (*model.ProductDateEvent, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if !req.EventType.Valid() {
		return nil, invalid("unknown event type %q", req.EventType)
	}
	eventDate, err := dateOrToday("event_date", req.EventDate, clock())
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByAdsID(ctx, req.AdsID); err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByID(ctx, *req.ClientID); err != nil {
			return nil, mapNotFound(err, ErrClientNotFound)
		}
	}

	event := &model.ProductDateEvent{
		AdsID:     req.AdsID,
		ClientID:  req.ClientID,
		EventType: req.EventType,
		EventDate: eventDate,
		Note:      req.Note,
		CreatedBy: actor,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "event",
		Action:  "created",
		Data:    event,
		User:    actor,
		Message: fmt.Sprintf("%s logged %s for %s", actor, event.EventType, event.AdsID),
	})
	return event, nil
}
