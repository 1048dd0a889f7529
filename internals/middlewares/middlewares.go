package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"autoescola_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra a cadeia base de middlewares do app
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
