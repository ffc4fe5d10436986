package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequirementStatus string

const (
	RequirementOpen      RequirementStatus = "open"
	RequirementFulfilled RequirementStatus = "fulfilled"
	RequirementCancelled RequirementStatus = "cancelled"
)

// ClientRequirement records hardware a client has asked the reseller to source.
type ClientRequirement struct {
	BaseModel
	ClientID      uint              `gorm:"not null;index" json:"client_id"`
	Client        *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Brand         string            `gorm:"type:varchar(100)" json:"brand"`
	Model         string            `gorm:"type:varchar(150)" json:"model"`
	Configuration string            `gorm:"type:text" json:"configuration"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	Budget        decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"budget"`
	RequiredBy    *time.Time        `gorm:"type:date" json:"required_by,omitempty"`
	Status        RequirementStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes         string            `gorm:"type:text" json:"notes"`
}
