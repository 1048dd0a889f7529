package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "autoescola_backend/internals/features/users/auth/controller"
	"autoescola_backend/internals/middlewares"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

// AuthRoutes registra as rotas públicas e as de sessão autenticada
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	// exigem access token válido
	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
	protected.Post("/change-password", ctrl.ChangePassword)
}
