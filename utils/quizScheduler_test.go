package utils

import (
	"lms/database"
	courseModels "lms/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchedulerDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.QuizAttempt{},
		&courseModels.Activity{},
		&courseModels.ActivityCompletion{},
	))

	database.Database = database.DbInstance{Db: db}
	return db
}

func TestAutoSubmitExpiredAttempts(t *testing.T) {
	db := setupSchedulerDb(t)

	quiz := courseModels.Quiz{CourseID: 1, Title: "Deadlines", TimeLimit: 30, PassingScore: 70, IsPublished: true}
	require.NoError(t, db.Create(&quiz).Error)

	question := courseModels.Question{QuizID: quiz.ID, Type: courseModels.QuestionTrueFalse, CorrectAnswer: "true", Points: 5}
	require.NoError(t, db.Create(&question).Error)

	started := time.Now().Add(-45 * time.Minute)
	expired := started.Add(30 * time.Minute)
	stale := courseModels.QuizAttempt{
		UserID:    1,
		QuizID:    quiz.ID,
		Status:    courseModels.AttemptInProgress,
		StartedAt: started,
		ExpiresAt: &expired,
	}
	require.NoError(t, db.Create(&stale).Error)

	// An open attempt still inside its window must be left alone
	openDeadline := time.Now().Add(20 * time.Minute)
	open := courseModels.QuizAttempt{
		UserID:    2,
		QuizID:    quiz.ID,
		Status:    courseModels.AttemptInProgress,
		StartedAt: time.Now(),
		ExpiresAt: &openDeadline,
	}
	require.NoError(t, db.Create(&open).Error)

	AutoSubmitExpiredAttempts()

	var swept courseModels.QuizAttempt
	require.NoError(t, db.First(&swept, stale.ID).Error)
	assert.Equal(t, courseModels.AttemptSubmitted, swept.Status)
	assert.True(t, swept.IsAutoSubmitted)
	assert.Equal(t, 0, swept.Score)
	assert.Equal(t, 5, swept.TotalPoints)
	assert.Equal(t, 0, swept.Percentage)
	assert.False(t, swept.Passed)
	require.NotNil(t, swept.SubmittedAt)

	var untouched courseModels.QuizAttempt
	require.NoError(t, db.First(&untouched, open.ID).Error)
	assert.Equal(t, courseModels.AttemptInProgress, untouched.Status)

	// A second sweep is a no-op: the submit time must not move
	firstSubmit := *swept.SubmittedAt
	AutoSubmitExpiredAttempts()

	require.NoError(t, db.First(&swept, stale.ID).Error)
	assert.True(t, swept.SubmittedAt.Equal(firstSubmit))
}

func TestFinalizeQuizAttemptOnlyOnce(t *testing.T) {
	db := setupSchedulerDb(t)

	quiz := courseModels.Quiz{CourseID: 1, Title: "Race", PassingScore: 50, IsPublished: true}
	require.NoError(t, db.Create(&quiz).Error)

	question := courseModels.Question{QuizID: quiz.ID, Type: courseModels.QuestionFillBlank, CorrectAnswer: "channel", Points: 4}
	require.NoError(t, db.Create(&question).Error)

	attempt := courseModels.QuizAttempt{
		UserID:    1,
		QuizID:    quiz.ID,
		Status:    courseModels.AttemptInProgress,
		StartedAt: time.Now(),
	}
	require.NoError(t, db.Create(&attempt).Error)

	answers := AnswerMap{"1": "channel"}

	submitted, err := FinalizeQuizAttempt(db, &attempt, quiz, answers, false)
	require.NoError(t, err)
	assert.True(t, submitted)
	assert.Equal(t, 4, attempt.Score)
	assert.Equal(t, 100, attempt.Percentage)
	assert.True(t, attempt.Passed)
	assert.False(t, attempt.IsAutoSubmitted)

	// The losing side of the race sees false, nil and changes nothing
	again := attempt
	submitted, err = FinalizeQuizAttempt(db, &again, quiz, AnswerMap{}, true)
	require.NoError(t, err)
	assert.False(t, submitted)

	var stored courseModels.QuizAttempt
	require.NoError(t, db.First(&stored, attempt.ID).Error)
	assert.Equal(t, 4, stored.Score)
	assert.False(t, stored.IsAutoSubmitted)
}
