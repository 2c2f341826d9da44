package course

import (
	"time"

	"gorm.io/gorm"
)

// Activity types
const (
	ActivityAssignment = "assignment"
	ActivityQuiz       = "quiz"
	ActivityProject    = "project"
	ActivityReading    = "reading"
	ActivityVideo      = "video"
)

// Activity is an ungraded (or quiz-linked) course activity shown on the
// user's dashboard
type Activity struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type" gorm:"default:'assignment'"` // assignment, quiz, project, reading, video
	QuizID      *uint  `json:"quiz_id" gorm:"index"`             // set when Type is quiz
	IsDeleted   bool   `gorm:"default:false"`
}

// ActivityCompletion marks an activity done for a user. The composite unique
// index makes the completion upsert an insert-if-absent; completing twice
// leaves exactly one row.
type ActivityCompletion struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_activity;not null"`
	ActivityID  uint       `json:"activity_id" gorm:"uniqueIndex:idx_user_activity;not null"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
