package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	financeController "autoescola_backend/internals/features/cfc/finance/controller"
	authMiddleware "autoescola_backend/internals/middlewares/auth"
)

// FinanceRoutes: parcelas e lançamentos são restritos a admin/secretaria;
// instrutores não acessam o módulo financeiro.
func FinanceRoutes(api fiber.Router, db *gorm.DB) {
	installmentCtrl := financeController.NewInstallmentController(db)
	transactionCtrl := financeController.NewTransactionController(db)
	dashboardCtrl := financeController.NewDashboardController(db)
	exportCtrl := financeController.NewExportController(db)

	staffOnly := authMiddleware.OnlyRoles(
		"Acesso restrito ao financeiro",
		"admin", "secretaria",
	)

	installments := api.Group("/installments", staffOnly)
	installments.Get("/", installmentCtrl.List)
	installments.Put("/:id", installmentCtrl.Update)
	installments.Post("/:id/pay", installmentCtrl.MarkPaid)
	installments.Post("/:id/reopen", installmentCtrl.Reopen)
	installments.Delete("/:id", installmentCtrl.Delete)

	transactions := api.Group("/transactions", staffOnly)
	transactions.Get("/", transactionCtrl.List)
	transactions.Post("/", transactionCtrl.Create)
	transactions.Put("/:id", transactionCtrl.Update)
	transactions.Delete("/:id", transactionCtrl.Delete)

	finance := api.Group("/finance", staffOnly)
	finance.Get("/dashboard", dashboardCtrl.Finance)
	finance.Get("/export", exportCtrl.Export)

	// cards da home ficam visíveis para toda a equipe
	api.Get("/dashboard", dashboardCtrl.Home)
}
