package controllers_test

import (
	"fmt"
	"testing"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollAndVerifyFlow(t *testing.T) {
	app, db := setupTestApp(t)
	stub := newPaymentStub(t)

	user, token := createUser(t, db, "buyer@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")

	// Enrolling opens a checkout session and leaves a PENDING enrollment
	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 200, status)
	data := dataMap(t, payload)
	assert.NotEmpty(t, data["checkout_url"])

	var enrollments []courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	assert.Equal(t, courseModels.EnrollmentPending, enrollments[0].Status)
	assert.Equal(t, "cs_test_1", enrollments[0].CheckoutSessionID)

	var transaction models.PaymentTransaction
	require.NoError(t, db.Where("checkout_session_id = ?", "cs_test_1").First(&transaction).Error)
	assert.Equal(t, models.TransactionStatusCreated, transaction.Status)
	assert.Equal(t, course.Price, transaction.Amount)

	// Enrolling again while the checkout is live resumes it, no second row
	status, payload = doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "Checkout already in progress!", payload["message"])

	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)

	// Verification before the provider confirms payment is rejected
	status, _ = doRequest(t, app, "POST", "/course/enroll/verify", token, map[string]string{"sessionId": "cs_test_1"})
	require.Equal(t, 402, status)

	// Once paid, verification activates the enrollment
	stub.paid = true
	status, _ = doRequest(t, app, "POST", "/course/enroll/verify", token, map[string]string{"sessionId": "cs_test_1"})
	require.Equal(t, 200, status)

	var active courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&active).Error)
	assert.Equal(t, courseModels.EnrollmentActive, active.Status)
	require.NotNil(t, active.ActivatedAt)

	require.NoError(t, db.Where("checkout_session_id = ?", "cs_test_1").First(&transaction).Error)
	assert.Equal(t, models.TransactionStatusPaid, transaction.Status)

	// A refresh on the success page re-verifies harmlessly
	status, payload = doRequest(t, app, "POST", "/course/enroll/verify", token, map[string]string{"sessionId": "cs_test_1"})
	require.Equal(t, 200, status)
	assert.Equal(t, "Enrollment already active!", payload["message"])

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND status = ?", user.ID, courseModels.EnrollmentActive).Count(&count)
	assert.Equal(t, int64(1), count)

	// Re-enrolling in an owned course conflicts
	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 409, status)
}

func TestVerifyRevivesSweptEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	stub := newPaymentStub(t)
	stub.paid = true

	user, token := createUser(t, db, "latecomer@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")

	// The stale sweep wrote this checkout off before the user came back
	swept := courseModels.Enrollment{
		UserID:            user.ID,
		CourseID:          course.ID,
		Status:            courseModels.EnrollmentCancelled,
		CheckoutSessionID: "cs_test_1",
	}
	require.NoError(t, db.Create(&swept).Error)
	require.NoError(t, db.Create(&models.PaymentTransaction{
		UserID:            user.ID,
		CourseID:          course.ID,
		EnrollmentID:      swept.ID,
		Amount:            course.Price,
		CheckoutSessionID: "cs_test_1",
		Status:            models.TransactionStatusFailed,
	}).Error)

	// The payment is confirmed, so verify revives the cancelled row
	status, payload := doRequest(t, app, "POST", "/course/enroll/verify", token, map[string]string{"sessionId": "cs_test_1"})
	require.Equal(t, 200, status)
	assert.Equal(t, "Enrollment activated successfully!", payload["message"])

	var enrollment courseModels.Enrollment
	require.NoError(t, db.First(&enrollment, swept.ID).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	require.NotNil(t, enrollment.ActivatedAt)

	var transaction models.PaymentTransaction
	require.NoError(t, db.Where("checkout_session_id = ?", "cs_test_1").First(&transaction).Error)
	assert.Equal(t, models.TransactionStatusPaid, transaction.Status)
}

func TestEnrollActivatesPaidUnverifiedSession(t *testing.T) {
	app, db := setupTestApp(t)
	stub := newPaymentStub(t)

	user, token := createUser(t, db, "payer@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")

	status, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 200, status)

	// Payment lands, but the user never reaches the verify step
	stub.paid = true

	// Re-enrolling must not open a new checkout over the paid session
	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "Enrollment activated successfully!", payload["message"])

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, "cs_test_1", enrollment.CheckoutSessionID)

	var transaction models.PaymentTransaction
	require.NoError(t, db.Where("checkout_session_id = ?", "cs_test_1").First(&transaction).Error)
	assert.Equal(t, models.TransactionStatusPaid, transaction.Status)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	app, db := setupTestApp(t)
	newPaymentStub(t)

	_, token := createUser(t, db, "buyer@example.com", "USER")

	draft := courseModels.Course{
		Title:         "Hidden Course",
		Slug:          "hidden-course",
		Price:         4999,
		Status:        courseModels.CourseStatusDraft,
		PaymentPlanID: "plan_standard",
	}
	require.NoError(t, db.Create(&draft).Error)

	status, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", draft.ID), token, nil)
	require.Equal(t, 404, status)
}

func TestEnrollCourseWithoutPaymentPlan(t *testing.T) {
	app, db := setupTestApp(t)
	newPaymentStub(t)

	_, token := createUser(t, db, "buyer@example.com", "USER")

	course := courseModels.Course{
		Title:  "Unpriced Course",
		Slug:   "unpriced-course",
		Price:  4999,
		Status: courseModels.CourseStatusPublished,
	}
	require.NoError(t, db.Create(&course).Error)

	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 400, status)
	assert.Equal(t, "Course is not configured for purchase!", payload["message"])
}

func TestEnrollRateLimit(t *testing.T) {
	app, db := setupTestApp(t)
	newPaymentStub(t)

	_, token := createUser(t, db, "eager@example.com", "USER")
	course := createPublishedCourse(t, db, "go-fundamentals")

	limit := config.AppConfig.EnrollRateLimit
	for i := 0; i < limit; i++ {
		status, _ := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
		require.Equal(t, 200, status)
	}

	status, payload := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, 429, status)
	assert.Equal(t, false, payload["status"])
}
