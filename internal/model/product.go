package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const ReferencePrefix = "ADS"

type ProductCondition string

const (
	ConditionNew         ProductCondition = "new"
	ConditionRefurbished ProductCondition = "refurbished"
	ConditionUsed        ProductCondition = "used"
)

type ProductHealth string

const (
	HealthWorking     ProductHealth = "working"
	HealthMaintenance ProductHealth = "maintenance"
	HealthExpired     ProductHealth = "expired"
)

type ProductStatus string

const (
	StatusAvailable           ProductStatus = "available"
	StatusLeased              ProductStatus = "leased"
	StatusSold                ProductStatus = "sold"
	StatusReturned            ProductStatus = "returned"
	StatusLeasedNotWorking    ProductStatus = "leased-but-not-working"
	StatusLeasedInMaintenance ProductStatus = "leased-but-maintenance"
)

// Sellable reports whether a unit can be attached to a new buy or rent sale.
func (s ProductStatus) Sellable() bool {
	return s == StatusAvailable || s == StatusReturned
}

// Product is a single physical unit keyed by its 11-digit ads id.
type Product struct {
	AdsID           string           `gorm:"primaryKey;type:varchar(11)" json:"ads_id"`
	ReferenceNumber string           `gorm:"type:varchar(14);uniqueIndex;not null" json:"reference_number"`
	Brand           string           `gorm:"type:varchar(100);not null;index" json:"brand"`
	Model           string           `gorm:"type:varchar(150);not null" json:"model"`
	Condition       ProductCondition `gorm:"type:varchar(20);not null" json:"condition"`
	CostPrice       decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"cost_price"`
	Specifications  string           `gorm:"type:text" json:"specifications"`
	Health          ProductHealth    `gorm:"type:varchar(20);not null;default:'working'" json:"health"`
	Status          ProductStatus    `gorm:"type:varchar(30);not null;default:'available';index" json:"status"`

	AuditDate           *time.Time `gorm:"type:date" json:"audit_date,omitempty"`
	LastMaintenanceDate *time.Time `gorm:"type:date" json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time `gorm:"type:date" json:"next_maintenance_date,omitempty"`

	AuditFields
}

// ReferenceFor derives the printed reference number of a unit.
func ReferenceFor(adsID string) string {
	return ReferencePrefix + adsID
}

// BeforeSave keeps the reference number in lock-step with the ads id.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.ReferenceNumber = ReferenceFor(p.AdsID)
	return nil
}
