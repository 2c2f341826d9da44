package utils

import (
	courseModels "lms/models/course"
	"math"
	"strconv"
)

// AnswerMap is the submitted questionId -> answer payload. Keys are decimal
// question ids; values are strings, except true_false which submits a bool.
type AnswerMap map[string]interface{}

// QuestionResult is the grading outcome for a single question. CorrectAnswer
// is only populated when the quiz allows revealing it.
type QuestionResult struct {
	QuestionID    uint        `json:"question_id"`
	IsCorrect     bool        `json:"is_correct"`
	UserAnswer    interface{} `json:"user_answer"`
	CorrectAnswer string      `json:"correct_answer,omitempty"`
	Points        int         `json:"points"`
	MaxPoints     int         `json:"max_points"`
}

// QuestionPoints returns the point value of a question, defaulting to 1
func QuestionPoints(q courseModels.Question) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// ScoreAttempt grades an answer map against the quiz questions. Unanswered
// or wrongly-typed answers score 0 points and are never an error: scoring
// must always succeed so the auto-submit path cannot block on missing input.
func ScoreAttempt(questions []courseModels.Question, answers AnswerMap) (results []QuestionResult, score int, totalPoints int) {
	results = make([]QuestionResult, 0, len(questions))

	for _, q := range questions {
		maxPoints := QuestionPoints(q)
		totalPoints += maxPoints

		userAnswer, answered := answers[strconv.FormatUint(uint64(q.ID), 10)]

		correct := false
		if answered {
			correct = isCorrectAnswer(q, userAnswer)
		}

		points := 0
		if correct {
			points = maxPoints
			score += maxPoints
		}

		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			IsCorrect:     correct,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			MaxPoints:     maxPoints,
		})
	}

	return results, score, totalPoints
}

// isCorrectAnswer applies type-specific equality: boolean comparison for
// true_false, string comparison for everything else. Answers are keyed by
// stable question id, so a shuffled presentation order never affects grading.
func isCorrectAnswer(q courseModels.Question, answer interface{}) bool {
	switch q.Type {
	case courseModels.QuestionTrueFalse:
		value, ok := answer.(bool)
		if !ok {
			return false
		}
		return value == (q.CorrectAnswer == "true")
	default:
		value, ok := answer.(string)
		if !ok {
			return false
		}
		return value == q.CorrectAnswer
	}
}

// Percentage converts a score to a rounded 0-100 percentage, 0 when the quiz
// carries no points
func Percentage(score, totalPoints int) int {
	if totalPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalPoints) * 100))
}
