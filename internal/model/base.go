package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditFields carries timestamps, soft delete and user tracking for every mutable table.
type AuditFields struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Soft Delete support

	CreatedBy string `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"updated_by"`
	DeletedBy string `gorm:"type:varchar(64)" json:"-"`
}

// BaseModel is the auto-increment keyed variant used by business tables.
type BaseModel struct {
	ID uint `gorm:"primaryKey" json:"id"`
	AuditFields
}

// UUIDModel is used for users and sessions.
type UUIDModel struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	AuditFields
}

// Hook Before Create untuk generate UUID otomatis
func (base *UUIDModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Session{},
		&Product{},
		&Client{},
		&ClientRequirement{},
		&Order{},
		&SalesBuy{},
		&SalesRent{},
		&RecoveryItem{},
		&ProductDateEvent{},
	)
}
