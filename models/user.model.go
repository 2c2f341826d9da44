package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold. Role is the single canonical location for
// authorization decisions; nothing else is consulted.
const (
	RoleUser   = "USER"
	RoleMentor = "MENTOR"
	RoleAdmin  = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage      string    `gorm:"default:''" json:"profile_image"`
	Name              string    `gorm:"default:''" json:"name"`
	Email             string    `gorm:"unique;not null" json:"email"`
	Mobile            string    `gorm:"default:''" json:"mobile"`
	Role              string    `gorm:"default:'USER'" json:"role"` // USER, MENTOR, ADMIN
	Password          string    `gorm:"not null" json:"-"`
	IsEmailVerified   bool      `gorm:"default:false" json:"is_email_verified"`
	PaymentCustomerID string    `gorm:"default:''" json:"-"` // id at the payment provider, created lazily
	IsBanned          bool      `gorm:"default:false" json:"is_banned"`
	LastLogin         time.Time `gorm:"default:NULL" json:"last_login"`
	IsDeleted         bool      `gorm:"default:false" json:"-"`
}
