package adminController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	_, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedQuiz").(*struct {
		Title              string `json:"title"`
		Description        string `json:"description"`
		TimeLimit          int    `json:"time_limit"`
		PassingScore       int    `json:"passing_score"`
		AllowedAttempts    int    `json:"allowed_attempts"`
		ShuffleQuestions   bool   `json:"shuffle_questions"`
		ShowCorrectAnswers bool   `json:"show_correct_answers"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz := courseModels.Quiz{
		CourseID:           uint(courseID),
		Title:              reqData.Title,
		Description:        reqData.Description,
		TimeLimit:          reqData.TimeLimit,
		PassingScore:       reqData.PassingScore,
		AllowedAttempts:    reqData.AllowedAttempts,
		ShuffleQuestions:   reqData.ShuffleQuestions,
		ShowCorrectAnswers: reqData.ShowCorrectAnswers,
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

func AddQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(quiz.CourseID))
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedQuestion").(*struct {
		Position      int      `json:"position"`
		Type          string   `json:"type"`
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Points        int      `json:"points"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	optionsJSON, _ := json.Marshal(reqData.Options)

	question := courseModels.Question{
		QuizID:        uint(quizID),
		Position:      reqData.Position,
		Type:          reqData.Type,
		Prompt:        reqData.Prompt,
		Options:       optionsJSON,
		CorrectAnswer: reqData.CorrectAnswer,
		Points:        reqData.Points,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UpdateQuiz edits quiz settings. Changing the time limit only affects
// attempts started afterwards; open attempts keep the deadline they were
// issued with.
func UpdateQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(quiz.CourseID))
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedQuizUpdate").(*struct {
		Title              string `json:"title"`
		Description        string `json:"description"`
		TimeLimit          int    `json:"time_limit"`
		PassingScore       int    `json:"passing_score"`
		AllowedAttempts    int    `json:"allowed_attempts"`
		ShuffleQuestions   bool   `json:"shuffle_questions"`
		ShowCorrectAnswers bool   `json:"show_correct_answers"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz.Title = reqData.Title
	quiz.Description = reqData.Description
	quiz.TimeLimit = reqData.TimeLimit
	quiz.PassingScore = reqData.PassingScore
	quiz.AllowedAttempts = reqData.AllowedAttempts
	quiz.ShuffleQuestions = reqData.ShuffleQuestions
	quiz.ShowCorrectAnswers = reqData.ShowCorrectAnswers

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// DeleteQuestion soft-deletes a question. Submitted attempts keep their
// stored results; only future attempts stop seeing it.
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", questionID).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", question.QuizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(quiz.CourseID))
	if !ok {
		return nil
	}

	if err := database.Database.Db.Model(&question).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// PublishQuiz makes a quiz visible to enrolled users. It must have at least
// one question.
func PublishQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", quizID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(quiz.CourseID))
	if !ok {
		return nil
	}

	var questionCount int64
	database.Database.Db.Model(&courseModels.Question{}).Where("quiz_id = ? AND is_deleted = false", quizID).Count(&questionCount)
	if questionCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz needs at least one question before publishing!", nil)
	}

	quiz.IsPublished = true
	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully!", quiz)
}
