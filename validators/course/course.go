package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam validates a positive integer route parameter and stores it
// under the given locals key. Returns false with the response already
// written when the parameter is missing or malformed.
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

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `query:"page"`
			Limit    *int    `query:"limit"`
			Category *string `query:"category"`
			Level    *string `query:"level"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Default pagination
		if reqData.Page == nil || *reqData.Page < 1 {
			page := 1
			reqData.Page = &page
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			limit := 20
			reqData.Limit = &limit
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func VerifyEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionID string `json:"sessionId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.SessionID) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"sessionId": "Session ID is required!"})
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "course_id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "course_id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func CompleteActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "activityID") {
			return nil
		}
		return c.Next()
	}
}
