package userRoutes

import (
	authController "lms/controllers/auth"
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile and dashboard routes for the logged-in user
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, validators.UpdateProfile(), authController.UpdateProfile)

	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userGroup.Get("/activities", middleware.JWTMiddleware, controllers.GetUserActivities)
}
