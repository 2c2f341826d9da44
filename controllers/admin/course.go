package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// canManageCourse is the single ownership rule for mentor-facing CRUD:
// admins manage everything, mentors only their own courses
func canManageCourse(role string, userID uint, course courseModels.Course) bool {
	if role == models.RoleAdmin {
		return true
	}
	return course.CreatedBy == userID
}

// loadManagedCourse fetches a course and enforces the ownership rule,
// replying for the caller when it fails
func loadManagedCourse(c *fiber.Ctx, courseID int) (courseModels.Course, bool) {
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return course, false
	}

	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)
	if !canManageCourse(role, userID, course) {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
		return course, false
	}

	return course, true
}

func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Price         int    `json:"price"`
		Level         string `json:"level"`
		Category      string `json:"category"`
		ThumbnailURL  string `json:"thumbnail_url"`
		PaymentPlanID string `json:"payment_plan_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:         reqData.Title,
		Slug:          utils.Slugify(reqData.Title),
		Description:   reqData.Description,
		Price:         reqData.Price,
		Level:         reqData.Level,
		Category:      reqData.Category,
		ThumbnailURL:  reqData.ThumbnailURL,
		PaymentPlanID: reqData.PaymentPlanID,
		Status:        courseModels.CourseStatusDraft,
		CreatedBy:     userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this title already exists!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedCourse").(*struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Price         int    `json:"price"`
		Level         string `json:"level"`
		Category      string `json:"category"`
		ThumbnailURL  string `json:"thumbnail_url"`
		PaymentPlanID string `json:"payment_plan_id"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = reqData.Price
	course.Level = reqData.Level
	course.Category = reqData.Category
	course.ThumbnailURL = reqData.ThumbnailURL
	course.PaymentPlanID = reqData.PaymentPlanID

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse transitions DRAFT -> PUBLISHED. A course needs at least one
// chapter with at least one lesson before it can go live.
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	if course.Status == courseModels.CourseStatusPublished {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course is already published!", course)
	}

	db := database.Database.Db

	var chapterCount int64
	db.Model(&courseModels.Chapter{}).Where("course_id = ? AND is_deleted = false", courseID).Count(&chapterCount)
	if chapterCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course needs at least one chapter before publishing!", nil)
	}

	var lessonCount int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = false", courseID).Count(&lessonCount)
	if lessonCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course needs at least one lesson before publishing!", nil)
	}

	course.Status = courseModels.CourseStatusPublished
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

func AddChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	_, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedChapter").(*struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter := courseModels.Chapter{
		CourseID: uint(courseID),
		Title:    reqData.Title,
		Position: reqData.Position,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter added successfully!", chapter)
}

func AddLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	_, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedLesson").(*struct {
		ChapterID     uint   `json:"chapter_id"`
		Title         string `json:"title"`
		Position      int    `json:"position"`
		VideoURL      string `json:"video_url"`
		ThumbnailURL  string `json:"thumbnail_url"`
		IsFreePreview bool   `json:"is_free_preview"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = false", reqData.ChapterID, courseID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	lesson := courseModels.Lesson{
		ChapterID:     reqData.ChapterID,
		CourseID:      uint(courseID),
		Title:         reqData.Title,
		Position:      reqData.Position,
		VideoURL:      reqData.VideoURL,
		ThumbnailURL:  reqData.ThumbnailURL,
		IsFreePreview: reqData.IsFreePreview,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

func AddActivity(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	_, ok := loadManagedCourse(c, courseID)
	if !ok {
		return nil
	}

	reqData, okData := c.Locals("validatedActivity").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		QuizID      *uint  `json:"quiz_id"`
	})
	if !okData {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	activity := courseModels.Activity{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Type:        reqData.Type,
		QuizID:      reqData.QuizID,
	}

	if err := database.Database.Db.Create(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Activity added successfully!", activity)
}
