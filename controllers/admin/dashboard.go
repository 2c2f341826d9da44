package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetDashboardStats returns platform totals for the admin dashboard
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)

	var totalCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = false AND status = ?", courseModels.CourseStatusPublished).Count(&totalCourses)

	var activeEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = false", courseModels.EnrollmentActive).Count(&activeEnrollments)

	// Enrollments activated since the start of the current month
	monthStart := now.BeginningOfMonth()
	var enrollmentsThisMonth int64
	db.Model(&courseModels.Enrollment{}).
		Where("status = ? AND is_deleted = false AND activated_at >= ?", courseModels.EnrollmentActive, monthStart).
		Count(&enrollmentsThisMonth)

	// Revenue from confirmed checkouts, in cents
	var totalRevenue int64
	db.Model(&models.PaymentTransaction{}).
		Where("status = ? AND is_deleted = false", models.TransactionStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	// Quiz pass rate over submitted attempts
	var submittedAttempts int64
	var passedAttempts int64
	db.Model(&courseModels.QuizAttempt{}).Where("status = ? AND is_deleted = false", courseModels.AttemptSubmitted).Count(&submittedAttempts)
	db.Model(&courseModels.QuizAttempt{}).Where("status = ? AND passed = true AND is_deleted = false", courseModels.AttemptSubmitted).Count(&passedAttempts)

	passRate := 0
	if submittedAttempts > 0 {
		passRate = int(passedAttempts * 100 / submittedAttempts)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":            totalUsers,
		"published_courses":      totalCourses,
		"active_enrollments":     activeEnrollments,
		"enrollments_this_month": enrollmentsThisMonth,
		"total_revenue":          totalRevenue,
		"quiz_pass_rate":         passRate,
	})
}
