package model

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User is an employee account used for session authentication.
type User struct {
	UUIDModel
	Username    string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName    string     `gorm:"type:varchar(255)" json:"full_name"`
	Role        UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	EmployeeID  string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_id"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// BeforeCreate assigns the uuid and the next sequential employee id.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.UUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if u.EmployeeID != "" {
		return nil
	}
	var count int64
	if err := tx.Session(&gorm.Session{NewDB: true}).Unscoped().Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	u.EmployeeID = EmployeeIDFor(count + 1)
	return nil
}

// EmployeeIDFor formats a sequence number as EMP0001.
func EmployeeIDFor(seq int64) string {
	return fmt.Sprintf("EMP%04d", seq)
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
