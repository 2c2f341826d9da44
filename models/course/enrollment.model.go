package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentPending   = "PENDING"
	EnrollmentActive    = "ACTIVE"
	EnrollmentCancelled = "CANCELLED"
)

// Enrollment links a user to a course. It is created PENDING when checkout
// starts and flipped to ACTIVE once the payment provider confirms the
// session. At most one non-cancelled enrollment may exist per (user, course);
// the unique index backs the conditional insert in the enroll handler.
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID          uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status            string     `json:"status" gorm:"default:'PENDING'"` // PENDING, ACTIVE, CANCELLED
	CheckoutSessionID string     `json:"checkout_session_id" gorm:"index"`
	Progress          float64    `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	CompletedLessons  int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons      int        `json:"total_lessons" gorm:"default:0"`
	ActivatedAt       *time.Time `json:"activated_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsDeleted         bool       `gorm:"default:false"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}
