package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financeDTO "autoescola_backend/internals/features/cfc/finance/dto"
	financeModel "autoescola_backend/internals/features/cfc/finance/model"
	helper "autoescola_backend/internals/helpers"
	helperAuth "autoescola_backend/internals/helpers/auth"
)

type InstallmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewInstallmentController(db *gorm.DB) *InstallmentController {
	return &InstallmentController{DB: db, Validate: validator.New()}
}

type installmentRow struct {
	financeModel.InstallmentModel
	StudentName string `gorm:"column:student_name"`
}

func toInstallmentResponse(row installmentRow, now time.Time) financeDTO.InstallmentResponse {
	return financeDTO.InstallmentResponse{
		ID:                row.ID.String(),
		StudentID:         row.StudentID.String(),
		StudentName:       row.StudentName,
		InstallmentNumber: row.InstallmentNumber,
		Amount:            row.Amount,
		AmountFormatted:   helper.FormatCentavosBRL(row.Amount),
		DueDate:           row.DueDate,
		Status:            row.EffectiveStatus(now),
		PaidDate:          row.PaidDate,
		PaymentMethod:     row.PaymentMethod,
	}
}

// List lista parcelas com nome do aluno. O filtro "atrasada" é resolvido
// na consulta (pendente + vencida), mas o status gravado continua pendente.
func (ctrl *InstallmentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	now := time.Now()

	q := ctrl.DB.Table("student_payments").
		Select("student_payments.*, students.full_name AS student_name").
		Joins("JOIN students ON students.id = student_payments.student_id")

	if studentID := c.Query("student_id"); studentID != "" {
		q = q.Where("student_payments.student_id = ?", studentID)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("students.full_name ILIKE ?", "%"+search+"%")
	}
	switch status := c.Query("status"); status {
	case "":
	case financeModel.InstallmentAtrasada:
		q = q.Where("student_payments.status = ? AND student_payments.due_date < ?",
			financeModel.InstallmentPendente, now.Format("2006-01-02"))
	case financeModel.InstallmentPendente:
		q = q.Where("student_payments.status = ? AND student_payments.due_date >= ?",
			financeModel.InstallmentPendente, now.Format("2006-01-02"))
	default:
		q = q.Where("student_payments.status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar parcelas")
	}

	var rows []installmentRow
	if err := q.Order("student_payments.due_date ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar parcelas")
	}

	out := make([]financeDTO.InstallmentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInstallmentResponse(row, now))
	}
	return helper.JsonList(c, "Parcelas listadas", out, helper.BuildPagination(paging, total, len(out)))
}

// MarkPaid registra o recebimento manual de uma parcela
func (ctrl *InstallmentController) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req financeDTO.MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !financeModel.ValidPaymentMethod(req.PaymentMethod) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Forma de pagamento inválida")
	}

	var inst financeModel.InstallmentModel
	if err := ctrl.DB.First(&inst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parcela não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar parcela")
	}
	if inst.Status == financeModel.InstallmentPaga {
		return helper.JsonError(c, fiber.StatusConflict, "Parcela já está paga")
	}

	paidDate := time.Now()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}
	updates := map[string]interface{}{
		"status":         financeModel.InstallmentPaga,
		"paid_date":      paidDate,
		"payment_method": req.PaymentMethod,
	}
	if err := ctrl.DB.Model(&inst).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao registrar pagamento")
	}
	return helper.JsonUpdated(c, "Pagamento registrado", inst)
}

// Reopen volta a parcela para pendente (pagamento lançado por engano)
func (ctrl *InstallmentController) Reopen(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var inst financeModel.InstallmentModel
	if err := ctrl.DB.First(&inst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parcela não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar parcela")
	}
	if inst.Status != financeModel.InstallmentPaga {
		return helper.JsonError(c, fiber.StatusConflict, "Apenas parcelas pagas podem ser reabertas")
	}

	updates := map[string]interface{}{
		"status":         financeModel.InstallmentPendente,
		"paid_date":      nil,
		"payment_method": "",
	}
	if err := ctrl.DB.Model(&inst).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao reabrir parcela")
	}
	return helper.JsonUpdated(c, "Parcela reaberta", inst)
}

func (ctrl *InstallmentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req financeDTO.UpdateInstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var inst financeModel.InstallmentModel
	if err := ctrl.DB.First(&inst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parcela não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar parcela")
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nada a atualizar", inst)
	}
	if err := ctrl.DB.Model(&inst).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar parcela")
	}
	return helper.JsonUpdated(c, "Parcela atualizada", inst)
}

// Delete remove uma parcela. Exige step-up de administrador.
func (ctrl *InstallmentController) Delete(c *fiber.Ctx) error {
	if handled, err := helperAuth.RequireAdminReauth(c, ctrl.DB); handled {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctrl.DB.Delete(&financeModel.InstallmentModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao excluir parcela")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Parcela não encontrada")
	}
	return helper.JsonDeleted(c, "Parcela excluída", nil)
}
