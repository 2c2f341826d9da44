package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment transaction statuses
const (
	TransactionStatusCreated = "CREATED"
	TransactionStatusPaid    = "PAID"
	TransactionStatusFailed  = "FAILED"
)

// PaymentTransaction records one hosted-checkout session opened for an
// enrollment. The provider session id is unique so a replayed webhook or a
// re-verified session can never book revenue twice.
type PaymentTransaction struct {
	gorm.Model
	UserID             uint      `json:"user_id" gorm:"index;not null"`
	CourseID           uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID       uint      `json:"enrollment_id" gorm:"index;not null"`
	Amount             int       `json:"amount"` // cents
	Currency           string    `json:"currency" gorm:"default:'USD'"`
	CheckoutSessionID  string    `json:"checkout_session_id" gorm:"uniqueIndex;not null"`
	Status             string    `json:"status" gorm:"default:'CREATED'"` // CREATED, PAID, FAILED
	PaymentResponseRaw string    `json:"-" gorm:"type:text"`
	TransactionDate    time.Time `json:"transaction_date"`
	IsDeleted          bool      `gorm:"default:false"`
}
