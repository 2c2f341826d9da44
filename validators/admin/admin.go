package adminValidator

import (
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseIDParam(c *fiber.Ctx, param, localsKey string) bool {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing route parameter: "+param, nil)
		return false
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid route parameter: "+param, nil)
		return false
	}

	c.Locals(localsKey, id)
	return true
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string `json:"title"`
			Description   string `json:"description"`
			Price         int    `json:"price"`
			Level         string `json:"level"`
			Category      string `json:"category"`
			ThumbnailURL  string `json:"thumbnail_url"`
			PaymentPlanID string `json:"payment_plan_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func ChapterBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(struct {
			Title    string `json:"title"`
			Position int    `json:"position"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(struct {
			ChapterID     uint   `json:"chapter_id"`
			Title         string `json:"title"`
			Position      int    `json:"position"`
			VideoURL      string `json:"video_url"`
			ThumbnailURL  string `json:"thumbnail_url"`
			IsFreePreview bool   `json:"is_free_preview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ChapterID == 0 {
			errors["chapter_id"] = "Chapter ID is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func ActivityBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Type        string `json:"type"`
			QuizID      *uint  `json:"quiz_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		switch reqData.Type {
		case courseModels.ActivityAssignment, courseModels.ActivityQuiz, courseModels.ActivityProject,
			courseModels.ActivityReading, courseModels.ActivityVideo:
		default:
			errors["type"] = "Invalid activity type!"
		}
		if reqData.Type == courseModels.ActivityQuiz && reqData.QuizID == nil {
			errors["quiz_id"] = "Quiz ID is required for quiz activities!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedActivity", reqData)
		return c.Next()
	}
}

func QuizBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}

		reqData := new(struct {
			Title              string `json:"title"`
			Description        string `json:"description"`
			TimeLimit          int    `json:"time_limit"`
			PassingScore       int    `json:"passing_score"`
			AllowedAttempts    int    `json:"allowed_attempts"`
			ShuffleQuestions   bool   `json:"shuffle_questions"`
			ShowCorrectAnswers bool   `json:"show_correct_answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.TimeLimit < 0 {
			errors["time_limit"] = "Time limit cannot be negative!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if reqData.AllowedAttempts < 0 {
			errors["allowed_attempts"] = "Allowed attempts cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func QuestionBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "quizID") {
			return nil
		}

		reqData := new(struct {
			Position      int      `json:"position"`
			Type          string   `json:"type"`
			Prompt        string   `json:"prompt"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correct_answer"`
			Points        int      `json:"points"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Prompt) == "" {
			errors["prompt"] = "Prompt is required!"
		}

		switch reqData.Type {
		case courseModels.QuestionMultipleChoice, courseModels.QuestionOneChoiceAnswer:
			if len(reqData.Options) < 2 {
				errors["options"] = "At least two options are required!"
			}
			if reqData.CorrectAnswer == "" {
				errors["correct_answer"] = "Correct answer is required!"
			}
		case courseModels.QuestionTrueFalse:
			if reqData.CorrectAnswer != "true" && reqData.CorrectAnswer != "false" {
				errors["correct_answer"] = "Correct answer must be true or false!"
			}
		case courseModels.QuestionFillBlank:
			if reqData.CorrectAnswer == "" {
				errors["correct_answer"] = "Correct answer is required!"
			}
		default:
			errors["type"] = "Invalid question type!"
		}

		if reqData.Points < 0 {
			errors["points"] = "Points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func ChapterUpdateBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "chapterID") {
			return nil
		}

		reqData := new(struct {
			Title    string `json:"title"`
			Position int    `json:"position"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}

func ChapterID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "chapterID") {
			return nil
		}
		return c.Next()
	}
}

func LessonUpdateBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "lessonID") {
			return nil
		}

		reqData := new(struct {
			Title         string `json:"title"`
			Position      int    `json:"position"`
			VideoURL      string `json:"video_url"`
			ThumbnailURL  string `json:"thumbnail_url"`
			IsFreePreview bool   `json:"is_free_preview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

func ActivityID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "activityID") {
			return nil
		}
		return c.Next()
	}
}

func QuizUpdateBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "quizID") {
			return nil
		}

		reqData := new(struct {
			Title              string `json:"title"`
			Description        string `json:"description"`
			TimeLimit          int    `json:"time_limit"`
			PassingScore       int    `json:"passing_score"`
			AllowedAttempts    int    `json:"allowed_attempts"`
			ShuffleQuestions   bool   `json:"shuffle_questions"`
			ShowCorrectAnswers bool   `json:"show_correct_answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.TimeLimit < 0 {
			errors["time_limit"] = "Time limit cannot be negative!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if reqData.AllowedAttempts < 0 {
			errors["allowed_attempts"] = "Allowed attempts cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "questionID") {
			return nil
		}
		return c.Next()
	}
}

func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "quizID") {
			return nil
		}
		return c.Next()
	}
}

func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page == nil || *reqData.Page < 1 {
			page := 1
			reqData.Page = &page
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			limit := 20
			reqData.Limit = &limit
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

func BanBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "targetUserID") {
			return nil
		}

		reqData := new(struct {
			Banned bool `json:"banned"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedBan", reqData)
		return c.Next()
	}
}

func RoleBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "targetUserID") {
			return nil
		}

		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Role {
		case models.RoleUser, models.RoleMentor, models.RoleAdmin:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role must be USER, MENTOR or ADMIN!"})
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}
