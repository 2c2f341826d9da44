package course

import "gorm.io/gorm"

// Course statuses
const (
	CourseStatusDraft     = "DRAFT"
	CourseStatusPublished = "PUBLISHED"
)

// Course represents a learning course made of ordered chapters and lessons
type Course struct {
	gorm.Model
	Title         string `json:"title"`
	Slug          string `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string `json:"description" gorm:"type:text"`
	Price         int    `json:"price" gorm:"default:0"` // cents
	Level         string `json:"level" gorm:"default:'BEGINNER'"`
	Category      string `json:"category"`
	Status        string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED
	ThumbnailURL  string `json:"thumbnail_url"`
	PaymentPlanID string `json:"payment_plan_id"` // price reference at the payment provider
	CreatedBy     uint   `json:"created_by" gorm:"index"`
	IsDeleted     bool   `gorm:"default:false"`
}

// Chapter represents an ordered section within a course
type Chapter struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Position  int    `json:"position" gorm:"default:0"`
	IsDeleted bool   `gorm:"default:false"`
}

// Lesson represents an ordered lesson within a chapter
type Lesson struct {
	gorm.Model
	ChapterID     uint   `json:"chapter_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Title         string `json:"title"`
	Position      int    `json:"position" gorm:"default:0"`
	VideoURL      string `json:"video_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	IsFreePreview bool   `json:"is_free_preview" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}
