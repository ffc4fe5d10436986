package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRequest struct {
	ClientID        uint                     `json:"client_id" validate:"required"`
	AdsIDs          []string                 `json:"ads_ids" validate:"dive,ads_id"`
	Items           []model.OrderItem        `json:"items"`
	OrderType       model.OrderType          `json:"order_type" validate:"required,oneof=RENT PURCHASE"`
	RequiredPieces  int                      `json:"required_pieces" validate:"required,gt=0"`
	DeliveredPieces int                      `json:"delivered_pieces" validate:"gte=0"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	PaidAmount      decimal.Decimal          `json:"paid_amount"`
	PaymentStatus   model.OrderPaymentStatus `json:"payment_status" validate:"omitempty,oneof=Pending Partial Paid"`
	PaymentMethod   string                   `json:"payment_method" validate:"omitempty,max=30"`
	OrderDate       *string                  `json:"order_date"`
	Notes           string                   `json:"notes"`
}

// OrderSales groups the sale rows recorded against one order.
type OrderSales struct {
	Order *model.Order      `json:"order"`
	Buys  []model.SalesBuy  `json:"buys"`
	Rents []model.SalesRent `json:"rents"`
}

type OrderService interface {
	GetAllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	GetOrder(ctx context.Context, id uint) (*model.Order, error)
	GetOrderByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderSales(ctx context.Context, id uint) (*OrderSales, error)
	CreateOrder(ctx context.Context, req *OrderRequest, actor string) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uint, req *OrderRequest, actor string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uint, actor string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewOrderService(oRepo repository.OrderRepository, cRepo repository.ClientRepository, pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		clientRepo:  cRepo,
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		wsHub:       hub,
	}
}

// NormalizeOrderLines reconciles ads_ids and items. A bare ads_ids list counts one piece per id.
func NormalizeOrderLines(adsIDs []string, items []model.OrderItem) ([]string, []model.OrderItem, error) {
	if len(items) == 0 {
		for _, id := range adsIDs {
			items = append(items, model.OrderItem{AdsID: id, Quantity: 1})
		}
	}
	if len(items) == 0 {
		return nil, nil, invalid("order must reference at least one product")
	}

	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !validator.IsAdsID(it.AdsID) {
			return nil, nil, invalid("ads_id %q must be 11 digits", it.AdsID)
		}
		if it.Quantity <= 0 {
			return nil, nil, invalid("quantity for %s must be positive", it.AdsID)
		}
		if seen[it.AdsID] {
			return nil, nil, invalid("ads_id %s is listed more than once", it.AdsID)
		}
		seen[it.AdsID] = true
		ids = append(ids, it.AdsID)
	}

	if len(adsIDs) > 0 {
		if len(adsIDs) != len(ids) {
			return nil, nil, invalid("ads_ids and items must list the same products")
		}
		for _, id := range adsIDs {
			if !seen[id] {
				return nil, nil, invalid("ads_ids and items must list the same products")
			}
		}
	}
	return ids, items, nil
}

// DerivePaymentStatus infers the order payment state from the amounts.
func DerivePaymentStatus(total, paid decimal.Decimal) model.OrderPaymentStatus {
	switch {
	case paid.IsZero():
		return model.OrderPaymentPending
	case paid.LessThan(total):
		return model.OrderPaymentPartial
	default:
		return model.OrderPaymentPaid
	}
}

// NextOrderID returns base, or base-N with the smallest free N >= 2.
func NextOrderID(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, id := range taken {
		used[id] = true
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !used[candidate] {
			return candidate
		}
	}
}

func (s *orderService) GetAllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindAll(ctx, filter)
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}
	return o, nil
}

func (s *orderService) GetOrderByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	o, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}
	return o, nil
}

func (s *orderService) GetOrderSales(ctx context.Context, id uint) (*OrderSales, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	filter := repository.SaleFilter{OrderID: o.OrderID}
	buys, err := s.saleRepo.FindAllBuy(ctx, filter)
	if err != nil {
		return nil, err
	}
	rents, err := s.saleRepo.FindAllRent(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &OrderSales{Order: o, Buys: buys, Rents: rents}, nil
}

// validate checks the request against the database and fills o with the normalized values.
func (s *orderService) validate(ctx context.Context, tx *gorm.DB, o *model.Order, req *OrderRequest) error {
	if msg := validator.FirstError(req); msg != "" {
		return validationError(msg)
	}
	ids, items, err := NormalizeOrderLines(req.AdsIDs, req.Items)
	if err != nil {
		return err
	}
	if total := model.TotalQuantity(items); total != req.RequiredPieces {
		return invalid("sum of item quantities (%d) must equal required_pieces (%d)", total, req.RequiredPieces)
	}
	if req.DeliveredPieces > req.RequiredPieces {
		return invalid("delivered_pieces (%d) cannot exceed required_pieces (%d)", req.DeliveredPieces, req.RequiredPieces)
	}
	if err := validateMoney("total_amount", req.TotalAmount); err != nil {
		return err
	}
	if err := validateMoney("paid_amount", req.PaidAmount); err != nil {
		return err
	}
	if req.PaidAmount.GreaterThan(req.TotalAmount) {
		return invalid("paid_amount cannot exceed total_amount")
	}
	orderDate, err := dateOrToday("order_date", req.OrderDate, clock())
	if err != nil {
		return err
	}

	if _, err := s.clientRepo.WithTx(tx).FindByID(ctx, req.ClientID); err != nil {
		return mapNotFound(err, ErrClientNotFound)
	}
	live, err := s.productRepo.WithTx(tx).FindLiveAdsIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(live) != len(ids) {
		found := make(map[string]bool, len(live))
		for _, id := range live {
			found[id] = true
		}
		var missing []string
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		sort.Strings(missing)
		return invalid("unknown products: %s", strings.Join(missing, ", "))
	}

	o.ClientID = req.ClientID
	o.AdsIDs = ids
	o.Items = items
	o.OrderType = req.OrderType
	o.RequiredPieces = req.RequiredPieces
	o.DeliveredPieces = req.DeliveredPieces
	o.TotalAmount = req.TotalAmount
	o.PaidAmount = req.PaidAmount
	o.PaymentStatus = req.PaymentStatus
	if o.PaymentStatus == "" {
		o.PaymentStatus = DerivePaymentStatus(req.TotalAmount, req.PaidAmount)
	}
	o.PaymentMethod = req.PaymentMethod
	o.OrderDate = orderDate
	o.Notes = req.Notes
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, req *OrderRequest, actor string) (*model.Order, error) {
	order := &model.Order{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validate(ctx, tx, order, req); err != nil {
			return err
		}
		orders := s.orderRepo.WithTx(tx)
		base := model.OrderIDFor(order.ClientID, order.OrderDate)
		taken, err := orders.FindOrderIDsWithPrefix(ctx, base)
		if err != nil {
			return err
		}
		order.OrderID = NextOrderID(base, taken)
		order.CreatedBy = actor
		order.UpdatedBy = actor
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "order",
		Action:  "created",
		Data:    order,
		User:    actor,
		Message: fmt.Sprintf("%s created order %s", actor, order.OrderID),
	})
	return order, nil
}

// UpdateOrder revalidates the whole order. The order_id is never regenerated and delivered_pieces is kept.
func (s *orderService) UpdateOrder(ctx context.Context, id uint, req *OrderRequest, actor string) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		existing, err := orders.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapNotFound(err, ErrOrderNotFound)
		}
		delivered := existing.DeliveredPieces
		if err := s.validate(ctx, tx, existing, req); err != nil {
			return err
		}
		if existing.RequiredPieces < delivered {
			return invalid("required_pieces (%d) cannot drop below the %d pieces already delivered", existing.RequiredPieces, delivered)
		}
		// sales own the delivery counter
		existing.DeliveredPieces = delivered
		existing.UpdatedBy = actor
		if err := orders.Update(ctx, existing); err != nil {
			return err
		}
		order = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "order",
		Action:  "updated",
		Data:    order,
		User:    actor,
		Message: fmt.Sprintf("%s updated order %s", actor, order.OrderID),
	})
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uint, actor string) error {
	if err := s.orderRepo.SoftDelete(ctx, id, actor); err != nil {
		return mapNotFound(err, ErrOrderNotFound)
	}
	s.wsHub.Publish(ws.Event{
		Type:   "order",
		Action: "deleted",
		Data:   map[string]uint{"id": id},
		User:   actor,
	})
	return nil
}
