package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse starts the paid enrollment flow: creates a PENDING
// enrollment plus its transaction record, opens a hosted checkout session at
// the payment provider and returns the redirect URL.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND status = ?", courseID, courseModels.CourseStatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// One enrollment row per (user, course), backed by the unique index.
	// ACTIVE rejects outright; a still-live PENDING checkout is resumed; a
	// cancelled or dead-session row is reused for the fresh checkout.
	var existing courseModels.Enrollment
	reuseRow := false
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		switch existing.Status {
		case courseModels.EnrollmentActive:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		case courseModels.EnrollmentPending:
			session, err := utils.GetCheckoutSession(existing.CheckoutSessionID)
			if err == nil && session.PaymentStatus == "paid" {
				// The user paid but never came back through verify. Opening a
				// fresh checkout here would overwrite the session id and make
				// the paid session unverifiable; activate instead.
				if activateEnrollment(&existing) {
					return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment activated successfully!", existing)
				}
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
			}
			if err == nil && session.URL != "" {
				return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout already in progress!", fiber.Map{
					"enrollment":   existing,
					"checkout_url": session.URL,
				})
			}
			reuseRow = true
		case courseModels.EnrollmentCancelled:
			// The sweep may have cancelled a checkout that did get paid
			if existing.CheckoutSessionID != "" {
				session, err := utils.GetCheckoutSession(existing.CheckoutSessionID)
				if err == nil && session.PaymentStatus == "paid" {
					if activateEnrollment(&existing) {
						return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment activated successfully!", existing)
					}
					return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
				}
			}
			reuseRow = true
		}
	}

	// The course must carry a payment-plan reference and a payable price
	if course.PaymentPlanID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not configured for purchase!", nil)
	}
	if course.Price < config.AppConfig.MinCoursePrice {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course price is below the platform minimum!", nil)
	}

	// Resolve the payment-provider customer, creating it on first purchase
	if user.PaymentCustomerID == "" {
		customerID, err := utils.CreatePaymentCustomer(user.Name, user.Email)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment service unavailable. Please try again later!", nil)
		}
		user.PaymentCustomerID = customerID
		database.Database.Db.Save(&user)
	}

	tx := database.Database.Db.Begin()

	var enrollment courseModels.Enrollment
	if reuseRow {
		enrollment = existing
		enrollment.Status = courseModels.EnrollmentPending
	} else {
		enrollment = courseModels.Enrollment{
			UserID:   userID,
			CourseID: uint(courseID),
			Status:   courseModels.EnrollmentPending,
		}
		// The unique index turns a concurrent double-enroll into an error
		// here rather than a second row
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
	}

	session, err := utils.CreateCheckoutSession(user.PaymentCustomerID, course.PaymentPlanID, course.Price, map[string]string{
		"userId":       strconv.FormatUint(uint64(userID), 10),
		"courseId":     strconv.Itoa(courseID),
		"enrollmentId": strconv.FormatUint(uint64(enrollment.ID), 10),
		"coursePrice":  strconv.Itoa(course.Price),
	})
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment service unavailable. Please try again later!", nil)
	}

	enrollment.CheckoutSessionID = session.ID
	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	transaction := models.PaymentTransaction{
		UserID:            userID,
		CourseID:          uint(courseID),
		EnrollmentID:      enrollment.ID,
		Amount:            course.Price,
		CheckoutSessionID: session.ID,
		Status:            models.TransactionStatusCreated,
		TransactionDate:   time.Now(),
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"enrollment":   enrollment,
		"checkout_url": session.URL,
	})
}

// VerifyEnrollment is called after the checkout redirect. It confirms the
// session with the provider and activates the pending enrollment. Safe to
// call repeatedly: a refresh on the success page re-verifies and finds the
// enrollment already active.
func VerifyEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVerify").(*struct {
		SessionID string `json:"sessionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("checkout_session_id = ? AND user_id = ? AND is_deleted = false", reqData.SessionID, userID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found for this checkout session!", nil)
	}

	// Already verified on an earlier call
	if enrollment.Status == courseModels.EnrollmentActive {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment already active!", enrollment)
	}

	session, err := utils.GetCheckoutSession(reqData.SessionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment service unavailable. Please try again later!", nil)
	}

	if session.PaymentStatus != "paid" {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment not completed yet!", nil)
	}

	if !activateEnrollment(&enrollment) {
		// The activatable row is gone: a racing verify already flipped it
		var current courseModels.Enrollment
		if err := db.First(&current, enrollment.ID).Error; err == nil && current.Status == courseModels.EnrollmentActive {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment already active!", current)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate enrollment!", nil)
	}

	var user models.User
	var course courseModels.Course
	if db.First(&user, enrollment.UserID).Error == nil && db.First(&course, enrollment.CourseID).Error == nil {
		go func(email, name, title string) {
			if err := utils.SendEnrollmentConfirmation(email, name, title); err != nil {
				log.Printf("[ENROLLMENT] Confirmation email to %s failed: %v", email, err)
			}
		}(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment activated successfully!", enrollment)
}

// activateEnrollment flips a confirmed-paid enrollment to ACTIVE and books
// its transaction as PAID. A PENDING row is the normal case; a CANCELLED row
// means the stale sweep gave up on the checkout before the confirmation
// arrived, and since the payment is confirmed the row is revived. The
// conditional update makes racing callers activate exactly once, and the
// transaction only flips to PAID when this call actually activates.
func activateEnrollment(enrollment *courseModels.Enrollment) bool {
	db := database.Database.Db
	now := time.Now()

	update := db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND status IN ?", enrollment.ID, []string{courseModels.EnrollmentPending, courseModels.EnrollmentCancelled}).
		Updates(map[string]interface{}{
			"status":       courseModels.EnrollmentActive,
			"activated_at": now,
		})
	if update.Error != nil || update.RowsAffected == 0 {
		return false
	}

	// CREATED on the normal path, FAILED when the sweep already wrote the
	// checkout off
	db.Model(&models.PaymentTransaction{}).
		Where("checkout_session_id = ? AND status IN ?", enrollment.CheckoutSessionID, []string{models.TransactionStatusCreated, models.TransactionStatusFailed}).
		Updates(map[string]interface{}{
			"status":           models.TransactionStatusPaid,
			"transaction_date": now,
		})

	enrollment.Status = courseModels.EnrollmentActive
	enrollment.ActivatedAt = &now

	return true
}

// GetEnrollments returns the caller's enrollments with course details
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userID).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
