package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeRoute "autoescola_backend/internals/features/cfc/employees/route"
	financeRoute "autoescola_backend/internals/features/cfc/finance/route"
	lessonRoute "autoescola_backend/internals/features/cfc/lessons/route"
	studentRoute "autoescola_backend/internals/features/cfc/students/route"
	authRoute "autoescola_backend/internals/features/users/auth/route"
	"autoescola_backend/internals/middlewares"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

// SetupRoutes monta a árvore completa:
//   /api/auth — público (login com rate limit próprio)
//   /api/a    — equipe autenticada (admin, secretaria, instrutor)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", middlewares.GlobalRateLimiter())

	authRoute.AuthRoutes(api, db)

	protected := api.Group("/a", authMiddleware.AuthMiddleware(db))
	studentRoute.StudentRoutes(protected, db)
	employeeRoute.EmployeeRoutes(protected, db)
	lessonRoute.LessonRoutes(protected, db)
	financeRoute.FinanceRoutes(protected, db)
}
