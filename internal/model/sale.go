package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesBuy is a one-time sale of a unit.
type SalesBuy struct {
	BaseModel
	AdsID         string          `gorm:"type:varchar(11);not null;index" json:"ads_id"`
	Product       *Product        `gorm:"foreignKey:AdsID;references:AdsID" json:"product,omitempty"`
	ClientID      uint            `gorm:"not null;index" json:"client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	OrderID       *string         `gorm:"type:varchar(32);index" json:"order_id,omitempty"`
	CostPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost_price"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"selling_price"`
	Profit        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"profit"`
	SaleDate      time.Time       `gorm:"type:date;not null;index" json:"sale_date"`
	PaymentMethod string          `gorm:"type:varchar(30)" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
}

func (SalesBuy) TableName() string {
	return "sales_buy"
}

func (s *SalesBuy) BeforeSave(tx *gorm.DB) error {
	s.Profit = s.SellingPrice.Sub(s.CostPrice)
	return nil
}

type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "Monthly"
	FrequencyQuarterly  PaymentFrequency = "Quarterly"
	FrequencyHalfYearly PaymentFrequency = "Half-Yearly"
	FrequencyYearly     PaymentFrequency = "Yearly"
)

// Months is the number of months covered by one payment.
func (f PaymentFrequency) Months() int64 {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencyHalfYearly:
		return 6
	case FrequencyYearly:
		return 12
	default:
		return 1
	}
}

type RentPaymentStatus string

const (
	RentPending  RentPaymentStatus = "Pending"
	RentIncoming RentPaymentStatus = "Incoming"
	RentComplete RentPaymentStatus = "Complete"
)

// SalesRent is a recurring lease of a unit.
type SalesRent struct {
	BaseModel
	AdsID            string            `gorm:"type:varchar(11);not null;index" json:"ads_id"`
	Product          *Product          `gorm:"foreignKey:AdsID;references:AdsID" json:"product,omitempty"`
	ClientID         uint              `gorm:"not null;index" json:"client_id"`
	Client           *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	OrderID          *string           `gorm:"type:varchar(32);index" json:"order_id,omitempty"`
	LeaseAmount      decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"lease_amount"`
	PaymentFrequency PaymentFrequency  `gorm:"type:varchar(20);not null" json:"payment_frequency"`
	PaymentStatus    RentPaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	StartDate        time.Time         `gorm:"type:date;not null;index" json:"start_date"`
	EndDate          *time.Time        `gorm:"type:date" json:"end_date,omitempty"`
	Notes            string            `gorm:"type:text" json:"notes"`
}

func (SalesRent) TableName() string {
	return "sales_rent"
}

// MonthlyValue normalizes the lease amount to a per-month figure.
func (s *SalesRent) MonthlyValue() decimal.Decimal {
	return s.LeaseAmount.Div(decimal.NewFromInt(s.PaymentFrequency.Months()))
}
