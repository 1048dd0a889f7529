package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "autoescola_backend/internals/features/cfc/lessons/controller"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

func LessonRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)

	lessons := api.Group("/lessons")

	// instrutor consulta a própria agenda; escrita fica com a equipe toda
	lessons.Get("/", ctrl.List)
	lessons.Get("/agenda", ctrl.WeeklyAgenda)
	lessons.Post("/", ctrl.Create)
	lessons.Put("/:id", ctrl.Update)
	lessons.Patch("/:id/status", ctrl.UpdateStatus)
	lessons.Delete("/:id", ctrl.Delete)

	// relatório de pagamento é assunto da administração
	reportOnly := authMiddleware.OnlyRoles(
		"Relatórios restritos à administração",
		"admin", "secretaria",
	)
	lessons.Get("/instructor-report", reportOnly, ctrl.InstructorReport)
}
