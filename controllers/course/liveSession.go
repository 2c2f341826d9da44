package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateLiveSession schedules a live video session for a course. Mentors may
// only host sessions on their own courses; admins on any.
func CreateLiveSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	role, _ := c.Locals("userRole").(string)

	reqData, ok := c.Locals("validatedLiveSession").(*struct {
		CourseID uint   `json:"course_id"`
		Title    string `json:"title"`
		StartsAt string `json:"starts_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if role != models.RoleAdmin && course.CreatedBy != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only host sessions for your own courses!", nil)
	}

	startsAt, err := time.Parse(time.RFC3339, reqData.StartsAt)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"starts_at": "Must be an RFC3339 timestamp!"})
	}

	session := courseModels.LiveSession{
		CourseID: reqData.CourseID,
		HostID:   userID,
		Title:    reqData.Title,
		RoomCode: uuid.NewString(),
		StartsAt: startsAt,
		Status:   courseModels.LiveSessionScheduled,
	}

	if err := database.Database.Db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create live session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Live session scheduled!", session)
}

// JoinLiveSession issues a conferencing token. The host gets a host token;
// everyone else must hold an active enrollment in the session's course.
func JoinLiveSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	var session courseModels.LiveSession
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sessionID).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Live session not found!", nil)
	}

	if session.Status == courseModels.LiveSessionEnded {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Live session has already ended!", nil)
	}

	isHost := session.HostID == userID
	if !isHost && !isActivelyEnrolled(userID, session.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	token, err := utils.CreateVideoRoomToken(session.RoomCode, user.Name, isHost)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Video service unavailable. Please try again later!", nil)
	}

	// First join by the host flips the session live
	if isHost && session.Status == courseModels.LiveSessionScheduled {
		database.Database.Db.Model(&session).Update("status", courseModels.LiveSessionLive)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Join token issued!", fiber.Map{
		"session": session,
		"token":   token,
	})
}

// EndLiveSession flips the local session status to ENDED. The provider call
// ends the hosted room; the local flip happens regardless so the session
// never appears live after the host ends it.
func EndLiveSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	role, _ := c.Locals("userRole").(string)

	sessionID := c.Locals("sessionID").(int)

	var session courseModels.LiveSession
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", sessionID).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Live session not found!", nil)
	}

	if role != models.RoleAdmin && session.HostID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the host can end this session!", nil)
	}

	if session.Status == courseModels.LiveSessionEnded {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Live session already ended!", session)
	}

	now := time.Now()
	if err := database.Database.Db.Model(&session).Updates(map[string]interface{}{
		"status":   courseModels.LiveSessionEnded,
		"ended_at": now,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to end live session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Live session ended!", session)
}
