package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with optional category/level filters
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Category *string `query:"category"`
		Level    *string `query:"level"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = false", courseModels.CourseStatusPublished)

	if reqData.Category != nil && *reqData.Category != "" {
		db = db.Where("category = ?", *reqData.Category)
	}
	if reqData.Level != nil && *reqData.Level != "" {
		db = db.Where("level = ?", *reqData.Level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a published course with its chapter/lesson tree.
// Lesson video URLs are hidden unless the viewer is actively enrolled or the
// lesson is a free preview.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND status = ?", courseID, courseModels.CourseStatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrolled := isActivelyEnrolled(userID, uint(courseID))

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = false", courseID).Order("position asc").Find(&chapters)

	type lessonView struct {
		courseModels.Lesson
		Locked bool `json:"locked"`
	}

	tree := make([]fiber.Map, 0, len(chapters))
	for _, chapter := range chapters {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapter.ID).Order("position asc").Find(&lessons)

		lessonViews := make([]lessonView, 0, len(lessons))
		for _, lesson := range lessons {
			locked := !enrolled && !lesson.IsFreePreview
			if locked {
				lesson.VideoURL = ""
			}
			lessonViews = append(lessonViews, lessonView{Lesson: lesson, Locked: locked})
		}

		tree = append(tree, fiber.Map{
			"chapter": chapter,
			"lessons": lessonViews,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"chapters":    tree,
		"is_enrolled": enrolled,
	})
}

// isActivelyEnrolled reports whether a user holds an ACTIVE enrollment
func isActivelyEnrolled(userID, courseID uint) bool {
	if userID == 0 {
		return false
	}
	var enrollment courseModels.Enrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = false", userID, courseID, courseModels.EnrollmentActive).
		First(&enrollment).Error
	return err == nil
}
