package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financeDTO "autoescola_backend/internals/features/cfc/finance/dto"
	financeModel "autoescola_backend/internals/features/cfc/finance/model"
	helper "autoescola_backend/internals/helpers"
	helperAuth "autoescola_backend/internals/helpers/auth"
)

type TransactionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db, Validate: validator.New()}
}

func (ctrl *TransactionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&financeModel.TransactionModel{})
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("description ILIKE ?", "%"+search+"%")
	}
	if from := c.Query("date_from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar lançamentos")
	}

	var transactions []financeModel.TransactionModel
	if err := q.Order("date DESC, created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&transactions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar lançamentos")
	}

	return helper.JsonList(c, "Lançamentos listados", transactions, helper.BuildPagination(paging, total, len(transactions)))
}

func (ctrl *TransactionController) Create(c *fiber.Ctx) error {
	var req financeDTO.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tx := financeModel.TransactionModel{
		Type:          req.Type,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	}
	if err := ctrl.DB.Create(&tx).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar lançamento")
	}
	return helper.JsonCreated(c, "Lançamento criado", tx)
}

func (ctrl *TransactionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req financeDTO.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var tx financeModel.TransactionModel
	if err := ctrl.DB.First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lançamento não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar lançamento")
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nada a atualizar", tx)
	}
	if err := ctrl.DB.Model(&tx).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar lançamento")
	}
	return helper.JsonUpdated(c, "Lançamento atualizado", tx)
}

func (ctrl *TransactionController) Delete(c *fiber.Ctx) error {
	if handled, err := helperAuth.RequireAdminReauth(c, ctrl.DB); handled {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctrl.DB.Delete(&financeModel.TransactionModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao excluir lançamento")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lançamento não encontrado")
	}
	return helper.JsonDeleted(c, "Lançamento excluído", nil)
}
