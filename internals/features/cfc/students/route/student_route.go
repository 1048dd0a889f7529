package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "autoescola_backend/internals/features/cfc/students/controller"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	students := api.Group("/students")

	// leitura liberada para toda a equipe (instrutor consulta o aluno da aula)
	students.Get("/", ctrl.List)
	students.Get("/:id", ctrl.GetByID)

	// escrita restrita à secretaria e administração
	staffOnly := authMiddleware.OnlyRoles(
		"Apenas administradores e secretaria podem alterar alunos",
		"admin", "secretaria",
	)
	students.Post("/", staffOnly, ctrl.Create)
	students.Put("/:id", staffOnly, ctrl.Update)
	students.Delete("/:id", staffOnly, ctrl.Delete)
	students.Post("/:id/photo", staffOnly, ctrl.UploadPhoto)
}
