package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// CompleteLesson records that the caller finished a lesson. Keyed by
// (user, lesson): completing the same lesson twice is a no-op, not an error.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	if !isActivelyEnrolled(userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = false", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	now := time.Now()
	progress := courseModels.LessonProgress{
		UserID:      userID,
		LessonID:    uint(lessonID),
		CourseID:    uint(courseID),
		Completed:   true,
		CompletedAt: &now,
	}

	// Insert-if-absent on (user_id, lesson_id); a repeat completion leaves
	// the original row and timestamp untouched
	if err := database.Database.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson completion!", nil)
	}

	updateEnrollmentProgress(userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", progress)
}

// GetCourseProgress returns the caller's aggregated progress for a course
// with a per-chapter breakdown
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	if !isActivelyEnrolled(userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	db := database.Database.Db

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = false", courseID).Count(&totalLessons)

	var completedLessons int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND course_id = ? AND completed = true AND is_deleted = false", userID, courseID).Count(&completedLessons)

	// Per-chapter breakdown
	var chapters []courseModels.Chapter
	db.Where("course_id = ? AND is_deleted = false", courseID).Order("position asc").Find(&chapters)

	chapterProgress := make([]fiber.Map, 0, len(chapters))
	for _, chapter := range chapters {
		var chapterTotal int64
		db.Model(&courseModels.Lesson{}).Where("chapter_id = ? AND is_deleted = false", chapter.ID).Count(&chapterTotal)

		var chapterDone int64
		db.Model(&courseModels.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
			Where("lesson_progresses.user_id = ? AND lessons.chapter_id = ? AND lesson_progresses.completed = true AND lesson_progresses.is_deleted = false", userID, chapter.ID).
			Count(&chapterDone)

		chapterProgress = append(chapterProgress, fiber.Map{
			"chapter_id":          chapter.ID,
			"title":               chapter.Title,
			"total_lessons":       chapterTotal,
			"completed_lessons":   chapterDone,
			"progress_percentage": utils.AggregateProgress(int(chapterTotal), int(chapterDone)),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"total_lessons":       totalLessons,
		"completed_lessons":   completedLessons,
		"progress_percentage": utils.AggregateProgress(int(totalLessons), int(completedLessons)),
		"chapters":            chapterProgress,
	})
}

// updateEnrollmentProgress refreshes the denormalized counters on the
// enrollment row after a completion lands
func updateEnrollmentProgress(userID uint, courseID uint) {
	db := database.Database.Db

	var totalLessons int64
	var completedLessons int64

	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = false", courseID).Count(&totalLessons)
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND course_id = ? AND completed = true AND is_deleted = false", userID, courseID).Count(&completedLessons)

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = false", userID, courseID, courseModels.EnrollmentActive).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)
	enrollment.Progress = float64(utils.AggregateProgress(int(totalLessons), int(completedLessons)))

	if enrollment.Progress >= 100 {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	db.Save(&enrollment)
}
