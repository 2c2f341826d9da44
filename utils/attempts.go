package utils

import (
	"encoding/json"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinalizeQuizAttempt scores and submits an in-progress attempt. Both the
// submit handler and the expiry sweeper funnel through here; the guarded
// update (status must still be IN_PROGRESS) makes the race between a manual
// submit and the timer loser a clean no-op instead of a rescoring.
//
// Returns false when the attempt was already submitted by the other path.
func FinalizeQuizAttempt(db *gorm.DB, attempt *courseModels.QuizAttempt, quiz courseModels.Quiz, answers AnswerMap, isAutoSubmitted bool) (bool, error) {
	var questions []courseModels.Question
	if err := db.Where("quiz_id = ? AND is_deleted = false", quiz.ID).Order("position asc").Find(&questions).Error; err != nil {
		return false, err
	}

	results, score, totalPoints := ScoreAttempt(questions, answers)
	percentage := Percentage(score, totalPoints)
	passed := percentage >= quiz.PassingScore

	answersJSON, _ := json.Marshal(answers)
	resultsJSON, _ := json.Marshal(results)

	// A manual submit that lands after the deadline counts as auto-submitted
	now := time.Now()
	if attempt.ExpiresAt != nil && now.After(*attempt.ExpiresAt) {
		isAutoSubmitted = true
	}

	update := db.Model(&courseModels.QuizAttempt{}).
		Where("id = ? AND status = ?", attempt.ID, courseModels.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":            courseModels.AttemptSubmitted,
			"answers":           answersJSON,
			"results":           resultsJSON,
			"score":             score,
			"total_points":      totalPoints,
			"percentage":        percentage,
			"passed":            passed,
			"is_auto_submitted": isAutoSubmitted,
			"submitted_at":      now,
		})
	if update.Error != nil {
		return false, update.Error
	}
	if update.RowsAffected == 0 {
		// Lost the race: the attempt is already submitted and immutable
		return false, nil
	}

	attempt.Status = courseModels.AttemptSubmitted
	attempt.Score = score
	attempt.TotalPoints = totalPoints
	attempt.Percentage = percentage
	attempt.Passed = passed
	attempt.IsAutoSubmitted = isAutoSubmitted
	attempt.Answers = answersJSON
	attempt.Results = resultsJSON
	attempt.SubmittedAt = &now

	if passed {
		markQuizActivityCompleted(db, attempt.UserID, quiz, percentage)
	}

	return true, nil
}

// markQuizActivityCompleted completes the course activity linked to a passed
// quiz. Insert-if-absent: passing the quiz twice leaves one completion row.
func markQuizActivityCompleted(db *gorm.DB, userID uint, quiz courseModels.Quiz, percentage int) {
	var activity courseModels.Activity
	err := db.Where("quiz_id = ? AND type = ? AND is_deleted = false", quiz.ID, courseModels.ActivityQuiz).First(&activity).Error
	if err != nil {
		// No activity wired to this quiz; nothing to complete
		return
	}

	now := time.Now()
	completion := courseModels.ActivityCompletion{
		UserID:      userID,
		ActivityID:  activity.ID,
		CompletedAt: &now,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
		log.Printf("[QUIZ] Failed to record activity completion for user %d: %v", userID, err)
	}

	// Congratulate asynchronously; email failures never affect the submit
	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err == nil {
		go func(email, name, title string, pct int) {
			if err := SendQuizPassedEmail(email, name, title, pct); err != nil {
				log.Printf("[QUIZ] Pass notification to %s failed: %v", email, err)
			}
		}(user.Email, user.Name, quiz.Title, percentage)
	}
}
