package adminController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// UpdateChapter renames or repositions a chapter
func UpdateChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(chapter.CourseID))
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedChapterUpdate").(*struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter.Title = reqData.Title
	chapter.Position = reqData.Position

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter soft-deletes a chapter and its lessons
func DeleteChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(chapter.CourseID))
	if !ok {
		return nil
	}

	db := database.Database.Db

	if err := db.Model(&chapter).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	db.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapterID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

// UpdateLesson edits a lesson's metadata or position
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(lesson.CourseID))
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedLessonUpdate").(*struct {
		Title         string `json:"title"`
		Position      int    `json:"position"`
		VideoURL      string `json:"video_url"`
		ThumbnailURL  string `json:"thumbnail_url"`
		IsFreePreview bool   `json:"is_free_preview"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Position = reqData.Position
	lesson.VideoURL = reqData.VideoURL
	lesson.ThumbnailURL = reqData.ThumbnailURL
	lesson.IsFreePreview = reqData.IsFreePreview

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson. Progress rows referencing it are kept
// for history; aggregation only counts non-deleted lessons.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(lesson.CourseID))
	if !ok {
		return nil
	}

	if err := database.Database.Db.Model(&lesson).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// DeleteActivity soft-deletes an activity
func DeleteActivity(c *fiber.Ctx) error {
	activityID := c.Locals("activityID").(int)

	var activity courseModels.Activity
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", activityID).First(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Activity not found!", nil)
	}

	_, ok := loadManagedCourse(c, int(activity.CourseID))
	if !ok {
		return nil
	}

	if err := database.Database.Db.Model(&activity).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity deleted successfully!", nil)
}
