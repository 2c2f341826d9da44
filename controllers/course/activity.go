package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GetUserActivities lists the activities of every course the caller is
// actively enrolled in, annotated with completion state from a left join
// against activity completions.
func GetUserActivities(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var enrolledCourseIDs []uint
	if err := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, courseModels.EnrollmentActive).
		Pluck("course_id", &enrolledCourseIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activities!", nil)
	}

	if len(enrolledCourseIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Activities fetched successfully!", []fiber.Map{})
	}

	type activityRow struct {
		courseModels.Activity
		IsCompleted bool       `json:"is_completed"`
		CompletedAt *time.Time `json:"completed_at"`
	}

	var rows []activityRow
	if err := db.Model(&courseModels.Activity{}).
		Select("activities.*, activity_completions.id IS NOT NULL AS is_completed, activity_completions.completed_at").
		Joins("LEFT JOIN activity_completions ON activity_completions.activity_id = activities.id AND activity_completions.user_id = ? AND activity_completions.is_deleted = false", userID).
		Where("activities.course_id IN ? AND activities.is_deleted = false", enrolledCourseIDs).
		Order("activities.created_at desc").
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activities!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activities fetched successfully!", rows)
}

// CompleteActivity upserts a completion marker for (user, activity). The
// second call hits the unique index and does nothing; both calls succeed.
func CompleteActivity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	activityID := c.Locals("activityID").(int)

	var activity courseModels.Activity
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", activityID).First(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Activity not found!", nil)
	}

	if !isActivelyEnrolled(userID, activity.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	now := time.Now()
	completion := courseModels.ActivityCompletion{
		UserID:      userID,
		ActivityID:  uint(activityID),
		CompletedAt: &now,
	}

	if err := database.Database.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity completed!", fiber.Map{
		"success":    true,
		"completion": completion,
	})
}
