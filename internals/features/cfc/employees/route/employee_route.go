package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeController "autoescola_backend/internals/features/cfc/employees/controller"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

func EmployeeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := employeeController.NewEmployeeController(db)

	employees := api.Group("/employees")

	// lista de instrutores ativos abastece o formulário de aulas
	employees.Get("/instructors", ctrl.Instructors)

	adminOnly := authMiddleware.OnlyRoles(
		"Apenas administradores podem gerir funcionários",
		"admin",
	)
	employees.Get("/", adminOnly, ctrl.List)
	employees.Get("/:id", adminOnly, ctrl.GetByID)
	employees.Post("/", adminOnly, ctrl.Create)
	employees.Put("/:id", adminOnly, ctrl.Update)
	employees.Delete("/:id", adminOnly, ctrl.Delete)
	employees.Post("/:id/photo", adminOnly, ctrl.UploadPhoto)
}
