package route

import (
	ctrl "quanlysinhvien_backend/internals/features/users/auth/controller"
	"quanlysinhvien_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthPublicRoutes mounts the endpoints reachable without a token. Login is
// rate limited separately from the global limiter.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	authController := ctrl.NewAuthController(db)

	group := r.Group("/auth")
	group.Post("/login", middlewares.LoginRateLimiter(), authController.Login)
	group.Post("/refresh-token", authController.RefreshToken)
}

// AuthProtectedRoutes mounts the endpoints that require a valid access token.
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	authController := ctrl.NewAuthController(db)

	group := r.Group("/auth")
	group.Post("/logout", authController.Logout)
	group.Get("/me", authController.Me)
	group.Post("/change-password", authController.ChangePassword)
}
