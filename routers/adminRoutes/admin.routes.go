package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up course-management routes for mentors/admins and
// platform-management routes for admins only
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	manage := adminGroup.Group("", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor, models.RoleAdmin))

	// Course authoring
	manage.Post("/course", validators.CourseBody(), adminController.CreateCourse)
	manage.Put("/course/:id", validators.CourseID(), validators.CourseBody(), adminController.UpdateCourse)
	manage.Post("/course/:id/publish", validators.CourseID(), adminController.PublishCourse)
	manage.Post("/course/:id/chapter", validators.ChapterBody(), adminController.AddChapter)
	manage.Post("/course/:id/lesson", validators.LessonBody(), adminController.AddLesson)
	manage.Post("/course/:id/activity", validators.ActivityBody(), adminController.AddActivity)
	manage.Post("/course/:id/quiz", validators.QuizBody(), adminController.CreateQuiz)
	manage.Post("/quiz/:id/question", validators.QuestionBody(), adminController.AddQuestion)
	manage.Post("/quiz/:id/publish", validators.QuizID(), adminController.PublishQuiz)
	manage.Put("/quiz/:id", validators.QuizUpdateBody(), adminController.UpdateQuiz)

	// Content editing and removal
	manage.Put("/chapter/:id", validators.ChapterUpdateBody(), adminController.UpdateChapter)
	manage.Delete("/chapter/:id", validators.ChapterID(), adminController.DeleteChapter)
	manage.Put("/lesson/:id", validators.LessonUpdateBody(), adminController.UpdateLesson)
	manage.Delete("/lesson/:id", validators.LessonID(), adminController.DeleteLesson)
	manage.Delete("/activity/:id", validators.ActivityID(), adminController.DeleteActivity)
	manage.Delete("/question/:id", validators.QuestionID(), adminController.DeleteQuestion)

	adminOnly := adminGroup.Group("", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Platform management
	adminOnly.Get("/dashboard", adminController.GetDashboardStats)
	adminOnly.Get("/users", validators.UserList(), adminController.ListUsers)
	adminOnly.Put("/users/:id/ban", validators.BanBody(), adminController.SetUserBan)
	adminOnly.Put("/users/:id/role", validators.RoleBody(), adminController.SetUserRole)
}
