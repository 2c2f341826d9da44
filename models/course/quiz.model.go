package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionMultipleChoice  = "multiple_choice"
	QuestionTrueFalse       = "true_false"
	QuestionFillBlank       = "fill_blank"
	QuestionOneChoiceAnswer = "one_choice_answer"
)

// Quiz attempt statuses
const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptSubmitted  = "SUBMITTED"
)

// Quiz represents a graded quiz attached to a course
type Quiz struct {
	gorm.Model
	CourseID           uint   `json:"course_id" gorm:"index;not null"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	TimeLimit          int    `json:"time_limit" gorm:"default:0"`       // minutes, 0 = no limit
	PassingScore       int    `json:"passing_score" gorm:"default:70"`   // percentage
	AllowedAttempts    int    `json:"allowed_attempts" gorm:"default:0"` // 0 = unlimited
	ShuffleQuestions   bool   `json:"shuffle_questions" gorm:"default:false"`
	ShowCorrectAnswers bool   `json:"show_correct_answers" gorm:"default:true"`
	IsPublished        bool   `json:"is_published" gorm:"default:false"`
	IsDeleted          bool   `gorm:"default:false"`
}

// Question belongs to a quiz. Options holds the choice texts for
// multiple_choice / one_choice_answer questions as a JSON array.
// CorrectAnswer is the canonical answer; "true"/"false" for true_false.
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Position      int            `json:"position" gorm:"default:0"`
	Type          string         `json:"type" gorm:"default:'multiple_choice'"`
	Prompt        string         `json:"prompt" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"-"`
	Points        int            `json:"points" gorm:"default:1"`
	IsDeleted     bool           `gorm:"default:false"`
}

// QuizAttempt is one user's run at a quiz. Answers is the submitted
// questionId -> answer map; Results the per-question grading. Both are JSON
// columns written once at submit time; a SUBMITTED attempt is immutable.
// The unique index on (user, quiz, attempt number) turns two racing starts
// into one row instead of an over-limit duplicate.
type QuizAttempt struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"uniqueIndex:idx_attempt_seq;not null"`
	QuizID          uint           `json:"quiz_id" gorm:"uniqueIndex:idx_attempt_seq;not null"`
	AttemptNumber   int            `json:"attempt_number" gorm:"uniqueIndex:idx_attempt_seq;default:1"`
	Status          string         `json:"status" gorm:"default:'IN_PROGRESS'"` // IN_PROGRESS, SUBMITTED
	Answers         datatypes.JSON `json:"answers"`
	Results         datatypes.JSON `json:"results"`
	Score           int            `json:"score" gorm:"default:0"`
	TotalPoints     int            `json:"total_points" gorm:"default:0"`
	Percentage      int            `json:"percentage" gorm:"default:0"`
	Passed          bool           `json:"passed" gorm:"default:false"`
	IsAutoSubmitted bool           `json:"is_auto_submitted" gorm:"default:false"`
	StartedAt       time.Time      `json:"started_at"`
	ExpiresAt       *time.Time     `json:"expires_at"` // nil when the quiz has no time limit
	SubmittedAt     *time.Time     `json:"submitted_at"`
	IsDeleted       bool           `gorm:"default:false"`
}
