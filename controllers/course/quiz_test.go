package controllers_test

import (
	"fmt"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuiz(t *testing.T, db *gorm.DB, courseID uint, allowedAttempts int) (courseModels.Quiz, []courseModels.Question) {
	quiz := courseModels.Quiz{
		CourseID:        courseID,
		Title:           "Concurrency Basics",
		TimeLimit:       30,
		PassingScore:    70,
		AllowedAttempts: allowedAttempts,
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	mc := courseModels.Question{
		QuizID:        quiz.ID,
		Position:      1,
		Type:          courseModels.QuestionMultipleChoice,
		Prompt:        "Which keyword starts a goroutine?",
		CorrectAnswer: "go",
		Points:        5,
	}
	require.NoError(t, db.Create(&mc).Error)

	tf := courseModels.Question{
		QuizID:        quiz.ID,
		Position:      2,
		Type:          courseModels.QuestionTrueFalse,
		Prompt:        "Channels are safe for concurrent use.",
		CorrectAnswer: "true",
		Points:        5,
	}
	require.NoError(t, db.Create(&tf).Error)

	return quiz, []courseModels.Question{mc, tf}
}

func TestQuizAttemptFlow(t *testing.T) {
	app, db := setupTestApp(t)

	user, token := createUser(t, db, "student@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	enrollActive(t, db, user.ID, course.ID)
	quiz, questions := createQuiz(t, db, course.ID, 0)

	// Eligible before any attempt
	status, payload := doRequest(t, app, "GET", fmt.Sprintf("/quiz/%d/eligibility", quiz.ID), token, nil)
	require.Equal(t, 200, status)
	eligibility := dataMap(t, payload)
	assert.Equal(t, true, eligibility["allowed"])
	assert.Equal(t, float64(0), eligibility["attemptCount"])

	// Start an attempt: questions come back without canonical answers
	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 201, status)
	data := dataMap(t, payload)

	served, ok := data["questions"].([]interface{})
	require.True(t, ok)
	require.Len(t, served, 2)
	for _, raw := range served {
		q := raw.(map[string]interface{})
		_, leaked := q["CorrectAnswer"]
		assert.False(t, leaked)
	}

	attempt := data["attempt"].(map[string]interface{})
	attemptID := uint(attempt["ID"].(float64))
	assert.Equal(t, courseModels.AttemptInProgress, attempt["status"])
	assert.Equal(t, float64(1), attempt["attempt_number"])
	assert.NotNil(t, attempt["expires_at"])

	// Starting again resumes the open attempt instead of creating another
	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 200, status)
	resumed := dataMap(t, payload)["attempt"].(map[string]interface{})
	assert.Equal(t, float64(attemptID), resumed["ID"])

	// Submit with one of two answers correct: 5/10 points, 50%, not passed
	answers := map[string]interface{}{
		fmt.Sprintf("%d", questions[0].ID): "go",
		fmt.Sprintf("%d", questions[1].ID): false,
	}
	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/quiz/attempts/%d/submit", attemptID), token, map[string]interface{}{"answers": answers})
	require.Equal(t, 200, status)

	result := dataMap(t, payload)["attempt"].(map[string]interface{})
	assert.Equal(t, courseModels.AttemptSubmitted, result["status"])
	assert.Equal(t, float64(5), result["score"])
	assert.Equal(t, float64(10), result["total_points"])
	assert.Equal(t, float64(50), result["percentage"])
	assert.Equal(t, false, result["passed"])
	assert.Equal(t, false, result["is_auto_submitted"])

	// A second submit conflicts and never rescores
	perfect := map[string]interface{}{
		fmt.Sprintf("%d", questions[0].ID): "go",
		fmt.Sprintf("%d", questions[1].ID): true,
	}
	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/quiz/attempts/%d/submit", attemptID), token, map[string]interface{}{"answers": perfect})
	require.Equal(t, 409, status)

	var stored courseModels.QuizAttempt
	require.NoError(t, db.First(&stored, attemptID).Error)
	assert.Equal(t, 5, stored.Score)
	assert.Equal(t, 50, stored.Percentage)

	// Submitted attempt is served as a result view
	status, payload = doRequest(t, app, "GET", fmt.Sprintf("/quiz/attempts/%d", attemptID), token, nil)
	require.Equal(t, 200, status)
	view := dataMap(t, payload)
	assert.NotNil(t, view["results"])
}

func TestQuizAttemptLimit(t *testing.T) {
	app, db := setupTestApp(t)

	user, token := createUser(t, db, "student@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	enrollActive(t, db, user.ID, course.ID)
	quiz, _ := createQuiz(t, db, course.ID, 1)

	// Use up the single allowed attempt
	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 201, status)
	attempt := dataMap(t, payload)["attempt"].(map[string]interface{})
	attemptID := uint(attempt["ID"].(float64))

	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/quiz/attempts/%d/submit", attemptID), token, map[string]interface{}{"answers": map[string]interface{}{}})
	require.Equal(t, 200, status)

	// Exhausted: eligibility says no, starting is forbidden
	status, payload = doRequest(t, app, "GET", fmt.Sprintf("/quiz/%d/eligibility", quiz.ID), token, nil)
	require.Equal(t, 200, status)
	eligibility := dataMap(t, payload)
	assert.Equal(t, false, eligibility["allowed"])
	assert.Equal(t, float64(1), eligibility["attemptCount"])

	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 403, status)
}

func TestQuizRequiresEnrollment(t *testing.T) {
	app, db := setupTestApp(t)

	_, token := createUser(t, db, "outsider@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	quiz, _ := createQuiz(t, db, course.ID, 0)

	status, payload := doRequest(t, app, "GET", fmt.Sprintf("/quiz/%d/eligibility", quiz.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, false, dataMap(t, payload)["allowed"])

	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 403, status)
}

func TestShuffledQuizScoring(t *testing.T) {
	app, db := setupTestApp(t)

	user, token := createUser(t, db, "student@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	enrollActive(t, db, user.ID, course.ID)

	quiz := courseModels.Quiz{
		CourseID:         course.ID,
		Title:            "Vocabulary",
		PassingScore:     70,
		ShuffleQuestions: true,
		IsPublished:      true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	correctByID := map[uint]string{}
	for i, answer := range []string{"goroutine", "channel", "select", "defer"} {
		question := courseModels.Question{
			QuizID:        quiz.ID,
			Position:      i + 1,
			Type:          courseModels.QuestionFillBlank,
			Prompt:        "Name the construct",
			CorrectAnswer: answer,
			Points:        2,
		}
		require.NoError(t, db.Create(&question).Error)
		correctByID[question.ID] = answer
	}

	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 201, status)
	data := dataMap(t, payload)
	attemptID := uint(data["attempt"].(map[string]interface{})["ID"].(float64))

	// Answer in whatever order the questions were served, keyed by their
	// stable ids; the serving order must not influence grading
	served, ok := data["questions"].([]interface{})
	require.True(t, ok)
	require.Len(t, served, 4)

	answers := map[string]interface{}{}
	for _, raw := range served {
		id := uint(raw.(map[string]interface{})["ID"].(float64))
		answers[fmt.Sprintf("%d", id)] = correctByID[id]
	}

	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/quiz/attempts/%d/submit", attemptID), token, map[string]interface{}{"answers": answers})
	require.Equal(t, 200, status)

	result := dataMap(t, payload)["attempt"].(map[string]interface{})
	assert.Equal(t, float64(8), result["score"])
	assert.Equal(t, float64(8), result["total_points"])
	assert.Equal(t, float64(100), result["percentage"])
	assert.Equal(t, true, result["passed"])
}

func TestAttemptSequenceUnique(t *testing.T) {
	_, db := setupTestApp(t)

	first := courseModels.QuizAttempt{UserID: 1, QuizID: 1, AttemptNumber: 1, Status: courseModels.AttemptInProgress}
	require.NoError(t, db.Create(&first).Error)

	// A racing second start with the same sequence number hits the index
	duplicate := courseModels.QuizAttempt{UserID: 1, QuizID: 1, AttemptNumber: 1, Status: courseModels.AttemptInProgress}
	require.Error(t, db.Create(&duplicate).Error)

	next := courseModels.QuizAttempt{UserID: 1, QuizID: 1, AttemptNumber: 2, Status: courseModels.AttemptInProgress}
	require.NoError(t, db.Create(&next).Error)
}

func TestQuizEmptySubmission(t *testing.T) {
	app, db := setupTestApp(t)

	user, token := createUser(t, db, "student@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")
	enrollActive(t, db, user.ID, course.ID)
	quiz, _ := createQuiz(t, db, course.ID, 0)

	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, 201, status)
	attempt := dataMap(t, payload)["attempt"].(map[string]interface{})
	attemptID := uint(attempt["ID"].(float64))

	// Nothing answered still submits cleanly at 0%
	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/quiz/attempts/%d/submit", attemptID), token, map[string]interface{}{})
	require.Equal(t, 200, status)

	result := dataMap(t, payload)["attempt"].(map[string]interface{})
	assert.Equal(t, float64(0), result["score"])
	assert.Equal(t, float64(0), result["percentage"])
	assert.Equal(t, false, result["passed"])
}
