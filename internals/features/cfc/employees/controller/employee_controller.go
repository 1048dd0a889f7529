package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeDTO "autoescola_backend/internals/features/cfc/employees/dto"
	employeeModel "autoescola_backend/internals/features/cfc/employees/model"
	helper "autoescola_backend/internals/helpers"
	helperAuth "autoescola_backend/internals/helpers/auth"
	storage "autoescola_backend/internals/helpers/storage"
)

type EmployeeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db, Validate: validator.New()}
}

func (ctrl *EmployeeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&employeeModel.EmployeeModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar funcionários")
	}

	var employees []employeeModel.EmployeeModel
	if err := q.Order("full_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&employees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar funcionários")
	}

	return helper.JsonList(c, "Funcionários listados", employees, helper.BuildPagination(paging, total, len(employees)))
}

// Instructors alimenta o formulário de aulas: só instrutores ativos
func (ctrl *EmployeeController) Instructors(c *fiber.Ctx) error {
	var instructors []employeeModel.EmployeeModel
	if err := ctrl.DB.Where("role = ? AND is_active = ?", "instrutor", true).
		Order("full_name ASC").
		Find(&instructors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar instrutores")
	}
	return helper.JsonOK(c, "Instrutores ativos", instructors)
}

func (ctrl *EmployeeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var employee employeeModel.EmployeeModel
	if err := ctrl.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar funcionário")
	}
	return helper.JsonOK(c, "OK", employee)
}

func (ctrl *EmployeeController) Create(c *fiber.Ctx) error {
	var req employeeDTO.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cpf := helper.UnmaskDigits(req.CPF)
	if !helper.ValidateCPF(cpf) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "CPF inválido")
	}

	employee := employeeModel.EmployeeModel{
		FullName:            strings.TrimSpace(req.FullName),
		RG:                  req.RG,
		CPF:                 cpf,
		BirthDate:           req.BirthDate,
		Phone:               helper.UnmaskDigits(req.Phone),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		AddressStreet:       req.AddressStreet,
		AddressNumber:       req.AddressNumber,
		AddressNeighborhood: req.AddressNeighborhood,
		AddressCity:         req.AddressCity,
		AddressState:        strings.ToUpper(req.AddressState),
		AddressZip:          helper.UnmaskDigits(req.AddressZip),
		Role:                req.Role,
		HireDate:            req.HireDate,
		IsActive:            true,
	}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id inválido")
		}
		employee.UserID = &userID
	}

	if err := ctrl.DB.Create(&employee).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um funcionário com este CPF")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar funcionário")
	}
	return helper.JsonCreated(c, "Funcionário criado", employee)
}

func (ctrl *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req employeeDTO.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var employee employeeModel.EmployeeModel
	if err := ctrl.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar funcionário")
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.RG != nil {
		updates["rg"] = *req.RG
	}
	if req.CPF != nil {
		cpf := helper.UnmaskDigits(*req.CPF)
		if !helper.ValidateCPF(cpf) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "CPF inválido")
		}
		updates["cpf"] = cpf
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Phone != nil {
		updates["phone"] = helper.UnmaskDigits(*req.Phone)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.AddressStreet != nil {
		updates["address_street"] = *req.AddressStreet
	}
	if req.AddressNumber != nil {
		updates["address_number"] = *req.AddressNumber
	}
	if req.AddressNeighborhood != nil {
		updates["address_neighborhood"] = *req.AddressNeighborhood
	}
	if req.AddressCity != nil {
		updates["address_city"] = *req.AddressCity
	}
	if req.AddressState != nil {
		updates["address_state"] = strings.ToUpper(*req.AddressState)
	}
	if req.AddressZip != nil {
		updates["address_zip"] = helper.UnmaskDigits(*req.AddressZip)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.HireDate != nil {
		updates["hire_date"] = *req.HireDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nada a atualizar", employee)
	}

	if err := ctrl.DB.Model(&employee).Updates(updates).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um funcionário com este CPF")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar funcionário")
	}
	return helper.JsonUpdated(c, "Funcionário atualizado", employee)
}

// Delete exige step-up de administrador
func (ctrl *EmployeeController) Delete(c *fiber.Ctx) error {
	if handled, err := helperAuth.RequireAdminReauth(c, ctrl.DB); handled {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var employee employeeModel.EmployeeModel
	if err := ctrl.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar funcionário")
	}

	// instrutor com aulas vinculadas não pode sumir do histórico
	var lessonCount int64
	if err := ctrl.DB.Table("lessons").Where("instructor_id = ?", id).Count(&lessonCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar aulas vinculadas")
	}
	if lessonCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Funcionário possui aulas registradas; desative em vez de excluir")
	}

	if err := ctrl.DB.Delete(&employee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao excluir funcionário")
	}
	if employee.PhotoURL != "" {
		storage.RemovePhotoByURL(employee.PhotoURL)
	}
	return helper.JsonDeleted(c, "Funcionário excluído", nil)
}

func (ctrl *EmployeeController) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var employee employeeModel.EmployeeModel
	if err := ctrl.DB.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar funcionário")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo de foto ausente")
	}

	url, err := storage.UploadPhoto("employees", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	oldURL := employee.PhotoURL
	if err := ctrl.DB.Model(&employee).Update("photo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao salvar URL da foto")
	}
	if oldURL != "" && oldURL != url {
		storage.RemovePhotoByURL(oldURL)
	}
	return helper.JsonUpdated(c, "Foto atualizada", fiber.Map{"photo_url": url})
}
