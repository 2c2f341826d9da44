package utils

import (
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeEnrollmentScheduler starts the daily sweep that cancels
// enrollments whose checkout was never completed
func InitializeEnrollmentScheduler() {
	log.Println("[ENROLLMENT-SCHEDULER] Initializing enrollment scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[ENROLLMENT-SCHEDULER] Running daily pending-enrollment sweep...")
		CancelStalePendingEnrollments()
	})

	c.Start()
	log.Println("[ENROLLMENT-SCHEDULER] Enrollment scheduler started - runs daily at 3 AM")
}

// CancelStalePendingEnrollments cancels PENDING enrollments older than the
// configured abandonment window and fails their checkout transactions. A
// late verify on a cancelled enrollment simply finds nothing to activate.
func CancelStalePendingEnrollments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.PendingEnrollTTL) * time.Hour)

	var stale []courseModels.Enrollment
	if err := db.
		Where("status = ? AND is_deleted = false AND created_at < ?", courseModels.EnrollmentPending, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("[ENROLLMENT-SCHEDULER] Error fetching stale enrollments: %v", err)
		return
	}

	log.Printf("[ENROLLMENT-SCHEDULER] Found %d stale pending enrollments", len(stale))

	for _, enrollment := range stale {
		if err := db.Model(&courseModels.Enrollment{}).
			Where("id = ? AND status = ?", enrollment.ID, courseModels.EnrollmentPending).
			Update("status", courseModels.EnrollmentCancelled).Error; err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] Error cancelling enrollment %d: %v", enrollment.ID, err)
			continue
		}

		if err := db.Model(&models.PaymentTransaction{}).
			Where("enrollment_id = ? AND status = ?", enrollment.ID, models.TransactionStatusCreated).
			Update("status", models.TransactionStatusFailed).Error; err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] Error failing transaction for enrollment %d: %v", enrollment.ID, err)
		}

		log.Printf("[ENROLLMENT-SCHEDULER] Cancelled stale enrollment %d (user %d, course %d)", enrollment.ID, enrollment.UserID, enrollment.CourseID)
	}
}
