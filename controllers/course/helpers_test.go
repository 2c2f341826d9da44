package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/routers/courseRoutes"
	"lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp builds a fiber app wired to a per-test in-memory database
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Role:     role,
		Password: string(hashed),
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func createPublishedCourse(t *testing.T, db *gorm.DB, slug string) courseModels.Course {
	course := courseModels.Course{
		Title:         "Go Fundamentals",
		Slug:          slug,
		Description:   "From zero to goroutines",
		Price:         4999,
		Status:        courseModels.CourseStatusPublished,
		PaymentPlanID: "plan_standard",
		CreatedBy:     99,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

// addLessons creates one chapter holding n lessons
func addLessons(t *testing.T, db *gorm.DB, course courseModels.Course, n int) []courseModels.Lesson {
	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Chapter 1", Position: 1}
	require.NoError(t, db.Create(&chapter).Error)

	lessons := make([]courseModels.Lesson, 0, n)
	for i := 0; i < n; i++ {
		lesson := courseModels.Lesson{
			ChapterID: chapter.ID,
			CourseID:  course.ID,
			Title:     "Lesson",
			Position:  i + 1,
			VideoURL:  "https://videos.example.com/lesson.mp4",
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return lessons
}

func enrollActive(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		Status:      courseModels.EnrollmentActive,
		ActivatedAt: &now,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// doRequest performs a JSON request against the app and decodes the
// response envelope
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}

	return resp.StatusCode, payload
}

func dataMap(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok, "expected data object in response: %v", payload)
	return data
}

// paymentStub is a fake payment provider backing the checkout flow
type paymentStub struct {
	server *httptest.Server
	paid   bool
}

func newPaymentStub(t *testing.T) *paymentStub {
	stub := &paymentStub{}

	mux := http.NewServeMux()
	mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "cus_test_1"})
	})
	mux.HandleFunc("/checkout/sessions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_test_1",
			"url":            stub.server.URL + "/pay/cs_test_1",
			"payment_status": "unpaid",
		})
	})
	mux.HandleFunc("/checkout/sessions/cs_test_1", func(w http.ResponseWriter, r *http.Request) {
		status := "unpaid"
		if stub.paid {
			status = "paid"
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_test_1",
			"url":            stub.server.URL + "/pay/cs_test_1",
			"payment_status": status,
		})
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)

	config.AppConfig.PaymentApiURL = stub.server.URL
	return stub
}
