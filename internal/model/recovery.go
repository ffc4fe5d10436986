package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecoveryStatus string

const (
	RecoveryReceived  RecoveryStatus = "received"
	RecoveryRepairing RecoveryStatus = "repairing"
	RecoveryReady     RecoveryStatus = "ready"
	RecoverySold      RecoveryStatus = "sold"
)

// RecoveryItem tracks the refurbishment of a returned or recovered unit.
type RecoveryItem struct {
	BaseModel
	OriginalAdsID *string         `gorm:"type:varchar(11);index" json:"original_ads_id,omitempty"`
	ClientID      *uint           `gorm:"index" json:"client_id,omitempty"`
	Brand         string          `gorm:"type:varchar(100);not null" json:"brand"`
	Model         string          `gorm:"type:varchar(150);not null" json:"model"`
	SerialNumber  string          `gorm:"type:varchar(100)" json:"serial_number"`
	Problem       string          `gorm:"type:text" json:"problem"`
	RepairCost    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"repair_cost"`
	Status        RecoveryStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ReceivedDate  time.Time       `gorm:"type:date;not null" json:"received_date"`
	Notes         string          `gorm:"type:text" json:"notes"`
}
