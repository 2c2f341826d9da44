package controllers

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// quizEligibility is the canTakeQuiz result: whether a new attempt may
// start, and why not when it may not
type quizEligibility struct {
	Allowed      bool   `json:"allowed"`
	Reason       string `json:"reason,omitempty"`
	AttemptCount int    `json:"attemptCount"`
}

// canTakeQuiz checks attempt eligibility. Called by the eligibility endpoint
// for the UI and re-run inside StartQuizAttempt: the client-side check is
// advisory, only the server-side one is authoritative.
func canTakeQuiz(userID uint, quiz courseModels.Quiz) quizEligibility {
	db := database.Database.Db

	var attemptCount int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = false", userID, quiz.ID).
		Count(&attemptCount)

	result := quizEligibility{AttemptCount: int(attemptCount)}

	if !isActivelyEnrolled(userID, quiz.CourseID) {
		result.Reason = "You must be enrolled in this course to take the quiz."
		return result
	}

	if quiz.AllowedAttempts > 0 && int(attemptCount) >= quiz.AllowedAttempts {
		result.Reason = "You have used all allowed attempts for this quiz."
		return result
	}

	result.Allowed = true
	return result
}

// GetQuizEligibility tells the client whether it may start a new attempt
func GetQuizEligibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND is_published = true", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility checked!", canTakeQuiz(userID, quiz))
}

// StartQuizAttempt transitions NotStarted -> InProgress: re-validates
// eligibility server-side, creates the attempt with the next sequential
// attempt number and returns the questions (shuffled when configured,
// correct answers stripped).
func StartQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = false AND is_published = true", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// A still-open attempt is resumed, never duplicated
	var open courseModels.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ? AND status = ? AND is_deleted = false", userID, quizID, courseModels.AttemptInProgress).First(&open).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt already in progress!", fiber.Map{
			"attempt":   open,
			"questions": presentQuestions(quiz),
		})
	}

	eligibility := canTakeQuiz(userID, quiz)
	if !eligibility.Allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, eligibility.Reason, eligibility)
	}

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		QuizID:        uint(quizID),
		AttemptNumber: eligibility.AttemptCount + 1,
		Status:        courseModels.AttemptInProgress,
		StartedAt:     time.Now(),
	}

	if quiz.TimeLimit > 0 {
		expiresAt := attempt.StartedAt.Add(time.Duration(quiz.TimeLimit) * time.Minute)
		attempt.ExpiresAt = &expiresAt
	}

	// The unique index on (user, quiz, attempt number) catches a concurrent
	// start that slipped past the eligibility read
	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt already in progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz attempt started!", fiber.Map{
		"attempt":   attempt,
		"questions": presentQuestions(quiz),
	})
}

// presentQuestions loads a quiz's questions for the client: correct answers
// stripped (the Question json tag hides them), order shuffled per request
// when the quiz asks for it. The shuffle is derived, never persisted;
// answers stay keyed by question id so presentation order cannot corrupt
// scoring.
func presentQuestions(quiz courseModels.Quiz) []courseModels.Question {
	var questions []courseModels.Question
	database.Database.Db.
		Where("quiz_id = ? AND is_deleted = false", quiz.ID).
		Order("position asc").
		Find(&questions)

	if quiz.ShuffleQuestions && len(questions) > 1 {
		shuffled := make([]courseModels.Question, len(questions))
		for i, j := range utils.ShuffledIndexes(len(questions)) {
			shuffled[i] = questions[j]
		}
		return shuffled
	}

	return questions
}

// SubmitQuizAttempt transitions InProgress -> Submitted and scores the
// attempt. Answers arrive as a questionId -> answer map; missing answers
// score zero. A second submit is rejected with a conflict and never
// rescores the attempt.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(int)

	reqData, ok := c.Locals("validatedSubmit").(*struct {
		Answers         map[string]interface{} `json:"answers"`
		IsAutoSubmitted bool                   `json:"isAutoSubmitted"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false", attemptID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	if attempt.Status == courseModels.AttemptSubmitted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt has already been submitted!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = false", attempt.QuizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	answers := utils.AnswerMap{}
	if reqData.Answers != nil {
		answers = reqData.Answers
	}

	submitted, err := utils.FinalizeQuizAttempt(db, &attempt, quiz, answers, reqData.IsAutoSubmitted)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}
	if !submitted {
		// The auto-submit sweeper won the race
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt has already been submitted!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted successfully!", attemptResultView(attempt, quiz))
}

// GetQuizAttempt returns an attempt. Submitted attempts include per-question
// results (correct answers withheld unless the quiz reveals them);
// in-progress attempts report remaining time plus the five-minute warning
// signal.
func GetQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID := c.Locals("attemptID").(int)

	db := database.Database.Db

	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = false", attemptID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = false", attempt.QuizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if attempt.Status == courseModels.AttemptInProgress {
		remaining := 0
		if attempt.ExpiresAt != nil {
			remaining = int(time.Until(*attempt.ExpiresAt).Seconds())
			if remaining < 0 {
				remaining = 0
			}
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", fiber.Map{
			"attempt":           attempt,
			"remaining_seconds": remaining,
			"time_warning":      attempt.ExpiresAt != nil && remaining <= 300,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attemptResultView(attempt, quiz))
}

// attemptResultView shapes a submitted attempt for the client, withholding
// canonical answers when the quiz keeps them hidden
func attemptResultView(attempt courseModels.QuizAttempt, quiz courseModels.Quiz) fiber.Map {
	var results []utils.QuestionResult
	if len(attempt.Results) > 0 {
		_ = json.Unmarshal(attempt.Results, &results)
	}

	if !quiz.ShowCorrectAnswers {
		for i := range results {
			results[i].CorrectAnswer = ""
		}
	}

	return fiber.Map{
		"attempt": fiber.Map{
			"id":                attempt.ID,
			"quiz_id":           attempt.QuizID,
			"attempt_number":    attempt.AttemptNumber,
			"status":            attempt.Status,
			"score":             attempt.Score,
			"total_points":      attempt.TotalPoints,
			"percentage":        attempt.Percentage,
			"passed":            attempt.Passed,
			"is_auto_submitted": attempt.IsAutoSubmitted,
			"submitted_at":      attempt.SubmittedAt,
		},
		"results": results,
	}
}
