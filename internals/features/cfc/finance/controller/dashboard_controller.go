package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	financeService "autoescola_backend/internals/features/cfc/finance/service"
	helper "autoescola_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Finance devolve o painel financeiro completo
func (ctrl *DashboardController) Finance(c *fiber.Ctx) error {
	summary, err := financeService.LoadDashboard(ctrl.DB, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao calcular painel financeiro")
	}
	return helper.JsonOK(c, "Painel financeiro", summary)
}

// Home devolve os cards da tela inicial
func (ctrl *DashboardController) Home(c *fiber.Ctx) error {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalStudents int64
	if err := ctrl.DB.Table("students").Where("is_active = ?", true).Count(&totalStudents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar alunos")
	}

	var activeInstructors int64
	if err := ctrl.DB.Table("employees").
		Where("role = ? AND is_active = ?", "instrutor", true).
		Count(&activeInstructors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar instrutores")
	}

	var scheduledLessons int64
	if err := ctrl.DB.Table("lessons").
		Where("status = ? AND date >= ?", "agendada", now.Format("2006-01-02")).
		Count(&scheduledLessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar aulas")
	}

	var paidThisMonth int64
	row := ctrl.DB.Table("student_payments").
		Where("status = ? AND paid_date >= ?", "paga", monthStart).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&paidThisMonth); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao somar receitas")
	}

	var revenueThisMonth int64
	row = ctrl.DB.Table("transactions").
		Where("type = ? AND date >= ?", "receita", monthStart).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&revenueThisMonth); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao somar receitas")
	}

	return helper.JsonOK(c, "Painel inicial", fiber.Map{
		"total_students":     totalStudents,
		"active_instructors": activeInstructors,
		"aulas_agendadas":    scheduledLessons,
		"receita_mes":        paidThisMonth + revenueThisMonth,
	})
}
