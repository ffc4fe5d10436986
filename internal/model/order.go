package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderType string

const (
	OrderRent     OrderType = "RENT"
	OrderPurchase OrderType = "PURCHASE"
)

type OrderPaymentStatus string

const (
	OrderPaymentPending OrderPaymentStatus = "Pending"
	OrderPaymentPartial OrderPaymentStatus = "Partial"
	OrderPaymentPaid    OrderPaymentStatus = "Paid"
)

// OrderItem is one product line of an order.
type OrderItem struct {
	AdsID    string `json:"ads_id"`
	Quantity int    `json:"quantity"`
}

// Order is a rental or purchase contract between a client and one or more products.
type Order struct {
	BaseModel
	OrderID         string                         `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_id"`
	ClientID        uint                           `gorm:"not null;index" json:"client_id"`
	Client          *Client                        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AdsIDs          datatypes.JSONSlice[string]    `gorm:"not null" json:"ads_ids"`
	Items           datatypes.JSONSlice[OrderItem] `json:"items"`
	OrderType       OrderType                      `gorm:"type:varchar(10);not null;index" json:"order_type"`
	RequiredPieces  int                            `gorm:"not null" json:"required_pieces"`
	DeliveredPieces int                            `gorm:"not null;default:0" json:"delivered_pieces"`
	TotalAmount     decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	PaidAmount      decimal.Decimal                `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	PaymentStatus   OrderPaymentStatus             `gorm:"type:varchar(10);not null" json:"payment_status"`
	PaymentMethod   string                         `gorm:"type:varchar(30)" json:"payment_method"`
	OrderDate       time.Time                      `gorm:"type:date;not null" json:"order_date"`
	Notes           string                         `gorm:"type:text" json:"notes"`
}

// OrderIDFor builds the base order number: ORD + zero padded client id + order date.
func OrderIDFor(clientID uint, date time.Time) string {
	return fmt.Sprintf("ORD%04d%s", clientID, date.Format("20060102"))
}

// TotalQuantity sums the per-line quantities.
func TotalQuantity(items []OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
