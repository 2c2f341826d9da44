package course

import (
	"time"

	"gorm.io/gorm"
)

// Live session statuses
const (
	LiveSessionScheduled = "SCHEDULED"
	LiveSessionLive      = "LIVE"
	LiveSessionEnded     = "ENDED"
)

// LiveSession is a scheduled video call for a course. The actual call runs on
// the conferencing provider; this row mirrors its lifecycle so "End session"
// can flip local status even if the provider webhook is lost.
type LiveSession struct {
	gorm.Model
	CourseID  uint       `json:"course_id" gorm:"index;not null"`
	HostID    uint       `json:"host_id" gorm:"index;not null"`
	Title     string     `json:"title"`
	RoomCode  string     `json:"room_code" gorm:"uniqueIndex;not null"`
	StartsAt  time.Time  `json:"starts_at"`
	Status    string     `json:"status" gorm:"default:'SCHEDULED'"` // SCHEDULED, LIVE, ENDED
	EndedAt   *time.Time `json:"ended_at"`
	IsDeleted bool       `gorm:"default:false"`
}
