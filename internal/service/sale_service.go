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

type CreateBuyRequest struct {
	AdsID         string           `json:"ads_id" validate:"required,ads_id"`
	ClientID      uint             `json:"client_id" validate:"required"`
	OrderID       *string          `json:"order_id"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal  `json:"selling_price"`
	SaleDate      *string          `json:"sale_date"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,max=30"`
	Notes         string           `json:"notes"`
}

// UpdateBuyRequest edits the financial fields. Unit, client and order stay fixed once sold.
type UpdateBuyRequest struct {
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	SaleDate      *string         `json:"sale_date"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,max=30"`
	Notes         string          `json:"notes"`
}

type CreateRentRequest struct {
	AdsID            string                  `json:"ads_id" validate:"required,ads_id"`
	ClientID         uint                    `json:"client_id" validate:"required"`
	OrderID          *string                 `json:"order_id"`
	LeaseAmount      decimal.Decimal         `json:"lease_amount"`
	PaymentFrequency model.PaymentFrequency  `json:"payment_frequency" validate:"required,oneof=Monthly Quarterly Half-Yearly Yearly"`
	PaymentStatus    model.RentPaymentStatus `json:"payment_status" validate:"omitempty,oneof=Pending Incoming Complete"`
	StartDate        *string                 `json:"start_date"`
	EndDate          *string                 `json:"end_date"`
	Notes            string                  `json:"notes"`
}

type UpdateRentRequest struct {
	LeaseAmount      decimal.Decimal         `json:"lease_amount"`
	PaymentFrequency model.PaymentFrequency  `json:"payment_frequency" validate:"required,oneof=Monthly Quarterly Half-Yearly Yearly"`
	PaymentStatus    model.RentPaymentStatus `json:"payment_status" validate:"required,oneof=Pending Incoming Complete"`
	StartDate        *string                 `json:"start_date"`
	EndDate          *string                 `json:"end_date"`
	Notes            string                  `json:"notes"`
}

type RentPaymentStatusRequest struct {
	PaymentStatus model.RentPaymentStatus `json:"payment_status" validate:"required,oneof=Pending Incoming Complete"`
}

type SaleService interface {
	GetAllBuys(ctx context.Context, filter repository.SaleFilter) ([]model.SalesBuy, error)
	GetBuy(ctx context.Context, id uint) (*model.SalesBuy, error)
	CreateBuy(ctx context.Context, req *CreateBuyRequest, actor string) (*model.SalesBuy, error)
	UpdateBuy(ctx context.Context, id uint, req *UpdateBuyRequest, actor string) (*model.SalesBuy, error)
	DeleteBuy(ctx context.Context, id uint, actor string) error

	GetAllRents(ctx context.Context, filter repository.SaleFilter) ([]model.SalesRent, error)
	GetRent(ctx context.Context, id uint) (*model.SalesRent, error)
	CreateRent(ctx context.Context, req *CreateRentRequest, actor string) (*model.SalesRent, error)
	UpdateRent(ctx context.Context, id uint, req *UpdateRentRequest, actor string) (*model.SalesRent, error)
	UpdateRentPaymentStatus(ctx context.Context, id uint, req *RentPaymentStatusRequest, actor string) (*model.SalesRent, error)
	DeleteRent(ctx context.Context, id uint, actor string) error
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	orderRepo   repository.OrderRepository
	eventRepo   repository.DateEventRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSaleService(
	sRepo repository.SaleRepository,
	pRepo repository.ProductRepository,
	cRepo repository.ClientRepository,
	oRepo repository.OrderRepository,
	eRepo repository.DateEventRepository,
	db *gorm.DB,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		clientRepo:  cRepo,
		orderRepo:   oRepo,
		eventRepo:   eRepo,
		db:          db,
		wsHub:       hub,
	}
}

// saleLink describes the unit, client and optional order a new sale attaches to.
type saleLink struct {
	adsID     string
	clientID  uint
	orderID   *string
	orderType model.OrderType
}

// reserve locks the unit and the order, checks the linkage and counts the delivered piece.
// It must run inside tx.
func (s *saleService) reserve(ctx context.Context, tx *gorm.DB, link saleLink) (*model.Product, error) {
	product, err := s.productRepo.WithTx(tx).FindByAdsIDForUpdate(ctx, link.adsID)
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	if !product.Status.Sellable() {
		return nil, ErrProductNotSellable
	}
	if _, err := s.clientRepo.WithTx(tx).FindByID(ctx, link.clientID); err != nil {
		return nil, mapNotFound(err, ErrClientNotFound)
	}
	if link.orderID == nil {
		return product, nil
	}

	orders := s.orderRepo.WithTx(tx)
	order, err := orders.FindByOrderIDForUpdate(ctx, *link.orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}
	if order.ClientID != link.clientID {
		return nil, ErrOrderClientMismatch
	}
	if order.OrderType != link.orderType {
		return nil, invalid("order %s is a %s order", order.OrderID, order.OrderType)
	}
	listed := false
	for _, id := range order.AdsIDs {
		if id == link.adsID {
			listed = true
			break
		}
	}
	if !listed {
		return nil, invalid("product %s is not part of order %s", link.adsID, order.OrderID)
	}
	counted, err := orders.IncrementDelivered(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !counted {
		return nil, invalid("order %s is already fully delivered", order.OrderID)
	}
	return product, nil
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (s *saleService) GetAllBuys(ctx context.Context, filter repository.SaleFilter) ([]model.SalesBuy, error) {
	return s.saleRepo.FindAllBuy(ctx, filter)
}

func (s *saleService) GetBuy(ctx context.Context, id uint) (*model.SalesBuy, error) {
	sale, err := s.saleRepo.FindBuyByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrSaleNotFound)
	}
	return sale, nil
}

// CreateBuy records a purchase, marks the unit sold and logs SOLD in one transaction.
func (s *saleService) CreateBuy(ctx context.Context, req *CreateBuyRequest, actor string) (*model.SalesBuy, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("selling_price", req.SellingPrice); err != nil {
		return nil, err
	}
	if req.CostPrice != nil {
		if err := validateMoney("cost_price", *req.CostPrice); err != nil {
			return nil, err
		}
	}
	saleDate, err := dateOrToday("sale_date", req.SaleDate, clock())
	if err != nil {
		return nil, err
	}

	sale := &model.SalesBuy{
		AdsID:         req.AdsID,
		ClientID:      req.ClientID,
		OrderID:       blankToNil(req.OrderID),
		SellingPrice:  req.SellingPrice,
		SaleDate:      saleDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	sale.CreatedBy = actor
	sale.UpdatedBy = actor

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.reserve(ctx, tx, saleLink{
			adsID:     sale.AdsID,
			clientID:  sale.ClientID,
			orderID:   sale.OrderID,
			orderType: model.OrderPurchase,
		})
		if err != nil {
			return err
		}
		sale.CostPrice = product.CostPrice
		if req.CostPrice != nil {
			sale.CostPrice = *req.CostPrice
		}
		if err := s.saleRepo.WithTx(tx).CreateBuy(ctx, sale); err != nil {
			return err
		}
		if err := s.productRepo.WithTx(tx).UpdateStatus(ctx, sale.AdsID, model.StatusSold, actor); err != nil {
			return err
		}
		clientID := sale.ClientID
		return s.eventRepo.WithTx(tx).Create(ctx, &model.ProductDateEvent{
			AdsID:     sale.AdsID,
			ClientID:  &clientID,
			EventType: model.EventSold,
			EventDate: saleDate,
			Note:      fmt.Sprintf("Sold for %s", sale.SellingPrice.StringFixed(2)),
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "sale",
		Action:  "buy_created",
		Data:    sale,
		User:    actor,
		Message: fmt.Sprintf("%s sold product %s", actor, sale.AdsID),
	})
	return sale, nil
}

func (s *saleService) UpdateBuy(ctx context.Context, id uint, req *UpdateBuyRequest, actor string) (*model.SalesBuy, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("cost_price", req.CostPrice); err != nil {
		return nil, err
	}
	if err := validateMoney("selling_price", req.SellingPrice); err != nil {
		return nil, err
	}
	sale, err := s.GetBuy(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SaleDate != nil {
		if sale.SaleDate, err = parseDate("sale_date", *req.SaleDate); err != nil {
			return nil, err
		}
	}
	sale.CostPrice = req.CostPrice
	sale.SellingPrice = req.SellingPrice
	sale.PaymentMethod = req.PaymentMethod
	sale.Notes = req.Notes
	sale.UpdatedBy = actor
	if err := s.saleRepo.UpdateBuy(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) DeleteBuy(ctx context.Context, id uint, actor string) error {
	if err := s.saleRepo.SoftDeleteBuy(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrSaleNotFound)
	}
	s.wsHub.Publish(ws.Event{Type: "sale", Action: "buy_deleted", Data: map[string]uint{"id": id}, User: actor})
	return nil
}

func (s *saleService) GetAllRents(ctx context.Context, filter repository.SaleFilter) ([]model.SalesRent, error) {
	return s.saleRepo.FindAllRent(ctx, filter)
}

func (s *saleService) GetRent(ctx context.Context, id uint) (*model.SalesRent, error) {
	sale, err := s.saleRepo.FindRentByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrSaleNotFound)
	}
	return sale, nil
}

func leasePeriod(start, end *string) (startDate time.Time, endDate *time.Time, err error) {
	if startDate, err = dateOrToday("start_date", start, clock()); err != nil {
		return
	}
	if endDate, err = parseOptionalDate("end_date", end); err != nil {
		return
	}
	if endDate != nil && endDate.Before(startDate) {
		err = invalid("end_date cannot be before start_date")
	}
	return
}

// CreateRent records a lease, marks the unit leased and logs LEASED in one transaction.
func (s *saleService) CreateRent(ctx context.Context, req *CreateRentRequest, actor string) (*model.SalesRent, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("lease_amount", req.LeaseAmount); err != nil {
		return nil, err
	}
	startDate, endDate, err := leasePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	sale := &model.SalesRent{
		AdsID:            req.AdsID,
		ClientID:         req.ClientID,
		OrderID:          blankToNil(req.OrderID),
		LeaseAmount:      req.LeaseAmount,
		PaymentFrequency: req.PaymentFrequency,
		PaymentStatus:    req.PaymentStatus,
		StartDate:        startDate,
		EndDate:          endDate,
		Notes:            req.Notes,
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = model.RentPending
	}
	sale.CreatedBy = actor
	sale.UpdatedBy = actor

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.reserve(ctx, tx, saleLink{
			adsID:     sale.AdsID,
			clientID:  sale.ClientID,
			orderID:   sale.OrderID,
			orderType: model.OrderRent,
		}); err != nil {
			return err
		}
		if err := s.saleRepo.WithTx(tx).CreateRent(ctx, sale); err != nil {
			return err
		}
		if err := s.productRepo.WithTx(tx).UpdateStatus(ctx, sale.AdsID, model.StatusLeased, actor); err != nil {
			return err
		}
		clientID := sale.ClientID
		return s.eventRepo.WithTx(tx).Create(ctx, &model.ProductDateEvent{
			AdsID:     sale.AdsID,
			ClientID:  &clientID,
			EventType: model.EventLeased,
			EventDate: startDate,
			Note:      fmt.Sprintf("Leased at %s %s", sale.LeaseAmount.StringFixed(2), sale.PaymentFrequency),
			CreatedBy: actor,
		})
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "sale",
		Action:  "rent_created",
		Data:    sale,
		User:    actor,
		Message: fmt.Sprintf("%s leased product %s", actor, sale.AdsID),
	})
	return sale, nil
}

func (s *saleService) UpdateRent(ctx context.Context, id uint, req *UpdateRentRequest, actor string) (*model.SalesRent, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := validateMoney("lease_amount", req.LeaseAmount); err != nil {
		return nil, err
	}
	sale, err := s.GetRent(ctx, id)
	if err != nil {
		return nil, err
	}
	start := sale.StartDate.Format(dateLayout)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	startDate, endDate, err := leasePeriod(&start, req.EndDate)
	if err != nil {
		return nil, err
	}
	sale.LeaseAmount = req.LeaseAmount
	sale.PaymentFrequency = req.PaymentFrequency
	sale.PaymentStatus = req.PaymentStatus
	sale.StartDate = startDate
	sale.EndDate = endDate
	sale.Notes = req.Notes
	sale.UpdatedBy = actor
	if err := s.saleRepo.UpdateRent(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) UpdateRentPaymentStatus(ctx context.Context, id uint, req *RentPaymentStatusRequest, actor string) (*model.SalesRent, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, validationError(msg)
	}
	if err := s.saleRepo.UpdateRentPaymentStatus(ctx, id, req.PaymentStatus, actor); err != nil {
		return nil, mapNotFound(err, ErrSaleNotFound)
	}
	sale, err := s.GetRent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.wsHub.Publish(ws.Event{
		Type:    "sale",
		Action:  "rent_payment_updated",
		Data:    map[string]any{"id": sale.ID, "ads_id": sale.AdsID, "payment_status": sale.PaymentStatus},
		User:    actor,
		Message: fmt.Sprintf("%s marked lease %d as %s", actor, sale.ID, sale.PaymentStatus),
	})
	return sale, nil
}

func (s *saleService) DeleteRent(ctx context.Context, id uint, actor string) error {
	if err := s.saleRepo.SoftDeleteRent(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrSaleNotFound)
	}
	s.wsHub.Publish(ws.Event{Type: "sale", Action: "rent_deleted", Data: map[string]uint{"id": id}, User: actor})
	return nil
}
