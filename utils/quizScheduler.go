package utils

import (
	"encoding/json"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeQuizScheduler starts the sweep that enforces quiz time limits
// server-side. The browser countdown is advisory; an abandoned tab must not
// leave an attempt open forever.
func InitializeQuizScheduler() {
	log.Println("[QUIZ-SCHEDULER] Initializing quiz attempt scheduler...")

	c := cron.New()

	c.AddFunc("@every 1m", func() {
		AutoSubmitExpiredAttempts()
	})

	c.Start()
	log.Println("[QUIZ-SCHEDULER] Quiz attempt scheduler started - sweeps every minute")
}

// AutoSubmitExpiredAttempts submits every in-progress attempt whose deadline
// has passed, scoring whatever answers were stored (usually none for an
// abandoned attempt). The guarded update inside FinalizeQuizAttempt means an
// attempt racing with a manual submit is finalized exactly once.
func AutoSubmitExpiredAttempts() {
	db := database.Database.Db
	now := time.Now()

	var expired []courseModels.QuizAttempt
	if err := db.
		Where("status = ? AND is_deleted = false", courseModels.AttemptInProgress).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Find(&expired).Error; err != nil {
		log.Printf("[QUIZ-SCHEDULER] Error fetching expired attempts: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("[QUIZ-SCHEDULER] Found %d expired attempts", len(expired))

	for i := range expired {
		attempt := &expired[i]

		var quiz courseModels.Quiz
		if err := db.Where("id = ? AND is_deleted = false", attempt.QuizID).First(&quiz).Error; err != nil {
			log.Printf("[QUIZ-SCHEDULER] Error fetching quiz %d: %v", attempt.QuizID, err)
			continue
		}

		answers := AnswerMap{}
		if len(attempt.Answers) > 0 {
			if err := json.Unmarshal(attempt.Answers, &answers); err != nil {
				log.Printf("[QUIZ-SCHEDULER] Unreadable answers on attempt %d, scoring as empty: %v", attempt.ID, err)
				answers = AnswerMap{}
			}
		}

		submitted, err := FinalizeQuizAttempt(db, attempt, quiz, answers, true)
		if err != nil {
			log.Printf("[QUIZ-SCHEDULER] Error auto-submitting attempt %d: %v", attempt.ID, err)
			continue
		}
		if submitted {
			log.Printf("[QUIZ-SCHEDULER] Auto-submitted attempt %d for user %d (%d%%)", attempt.ID, attempt.UserID, attempt.Percentage)
		}
	}
}
