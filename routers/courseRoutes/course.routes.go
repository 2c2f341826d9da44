package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course, quiz, activity and live
// session routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalogue
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)

	// Enrollment + payment verification. Verify is registered before /:id so
	// the static segment wins.
	courseGroup.Post("/enroll/verify", middleware.JWTMiddleware, validators.VerifyEnrollment(), controllers.VerifyEnrollment)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.EnrollRateLimiter(), validators.EnrollCourse(), controllers.EnrollInCourse)

	// Course detail with chapter/lesson tree
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Lesson completion and progress
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.CompleteLesson)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseProgress)

	// Activities
	activityGroup := app.Group("/activity")
	activityGroup.Post("/:id/complete", middleware.JWTMiddleware, validators.CompleteActivity(), controllers.CompleteActivity)

	// Quiz attempt lifecycle. Attempt routes come first so /attempts never
	// binds as a quiz id.
	quizGroup := app.Group("/quiz")
	quizGroup.Post("/attempts/:id/submit", middleware.JWTMiddleware, validators.SubmitAttempt(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/attempts/:id", middleware.JWTMiddleware, validators.AttemptID(), controllers.GetQuizAttempt)
	quizGroup.Get("/:id/eligibility", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizEligibility)
	quizGroup.Post("/:id/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.StartQuizAttempt)

	// Live sessions
	liveGroup := app.Group("/live-session")
	liveGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor, models.RoleAdmin), validators.CreateLiveSession(), controllers.CreateLiveSession)
	liveGroup.Post("/:id/join", middleware.JWTMiddleware, validators.LiveSessionID(), controllers.JoinLiveSession)
	liveGroup.Post("/:id/end", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser, models.RoleMentor, models.RoleAdmin), validators.LiveSessionID(), controllers.EndLiveSession)
}
