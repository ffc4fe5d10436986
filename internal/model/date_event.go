package model

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventProductAdded     EventType = "PRODUCT_ADDED"
	EventSold             EventType = "SOLD"
	EventLeased           EventType = "LEASED"
	EventLeaseRenewed     EventType = "LEASE_RENEWED"
	EventReturned         EventType = "RETURNED"
	EventRepairStarted    EventType = "REPAIR_STARTED"
	EventRepaired         EventType = "REPAIRED"
	EventResold           EventType = "RESOLD"
	EventAudited          EventType = "AUDITED"
	EventMaintenance      EventType = "MAINTENANCE"
	EventRecoveryReceived EventType = "RECOVERY_RECEIVED"
	EventRecoveryReady    EventType = "RECOVERY_READY"
	EventExpired          EventType = "EXPIRED"
)

var EventTypes = []EventType{
	EventProductAdded, EventSold, EventLeased, EventLeaseRenewed, EventReturned,
	EventRepairStarted, EventRepaired, EventResold, EventAudited, EventMaintenance,
	EventRecoveryReceived, EventRecoveryReady, EventExpired,
}

func (e EventType) Valid() bool {
	for _, t := range EventTypes {
		if t == e {
			return true
		}
	}
	return false
}

// ProductDateEvent is one entry of a unit's lifecycle timeline. Rows are never updated.
type ProductDateEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdsID     string    `gorm:"type:varchar(11);not null;index" json:"ads_id"`
	Product   *Product  `gorm:"foreignKey:AdsID;references:AdsID" json:"product,omitempty"`
	ClientID  *uint     `gorm:"index" json:"client_id,omitempty"`
	EventType EventType `gorm:"type:varchar(30);not null;index" json:"event_type"`
	EventDate time.Time `gorm:"type:date;not null" json:"event_date"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedBy string    `gorm:"type:varchar(64)" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate stamps created_at with server time, ignoring any caller supplied value.
func (e *ProductDateEvent) BeforeCreate(tx *gorm.DB) error {
	e.CreatedAt = time.Now()
	return nil
}
