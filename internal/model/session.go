package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a server-side login session with a fixed expiry.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	IP        string    `gorm:"type:varchar(64)" json:"ip"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
