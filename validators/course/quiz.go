package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "quizID") {
			return nil
		}
		return c.Next()
	}
}

func AttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "attemptID") {
			return nil
		}
		return c.Next()
	}
}

// SubmitAttempt validates the submission body. An empty or missing answers
// map is valid: submission must always succeed once triggered, even with
// nothing answered.
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "attemptID") {
			return nil
		}

		reqData := new(struct {
			Answers         map[string]interface{} `json:"answers"`
			IsAutoSubmitted bool                   `json:"isAutoSubmitted"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

func LiveSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "sessionID") {
			return nil
		}
		return c.Next()
	}
}

func CreateLiveSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id"`
			Title    string `json:"title"`
			StartsAt string `json:"starts_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.StartsAt == "" {
			errors["starts_at"] = "Start time is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLiveSession", reqData)
		return c.Next()
	}
}
