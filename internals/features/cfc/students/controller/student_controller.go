package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
	financeService "autoescola_backend/internals/features/cfc/finance/service"
	studentDTO "autoescola_backend/internals/features/cfc/students/dto"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
	helper "autoescola_backend/internals/helpers"
	helperAuth "autoescola_backend/internals/helpers/auth"
	storage "autoescola_backend/internals/helpers/storage"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

func (ctrl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&studentModel.StudentModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ? OR cpf LIKE ?",
			like, like, "%"+helper.UnmaskDigits(search)+"%")
	}
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar alunos")
	}

	var students []studentModel.StudentModel
	if err := q.Order("full_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar alunos")
	}

	return helper.JsonList(c, "Alunos listados", students, helper.BuildPagination(paging, total, len(students)))
}

func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aluno")
	}
	return helper.JsonOK(c, "OK", student)
}

// Create matricula o aluno e gera o plano de parcelas na mesma transação.
// Se o lote de parcelas falhar, a matrícula inteira é revertida.
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
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

	enrollment := time.Now()
	if req.EnrollmentDate != nil {
		enrollment = *req.EnrollmentDate
	}
	status := req.Status
	if status == "" {
		status = studentModel.StatusEmFormacao
	}

	student := studentModel.StudentModel{
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
		Category:            req.Category,
		EnrollmentDate:      enrollment,
		Status:              status,
		CourseValue:         req.CourseValue,
		InstallmentsCount:   req.InstallmentsCount,
		MaxLessonsA:         req.MaxLessonsA,
		MaxLessonsB:         req.MaxLessonsB,
		Notes:               req.Notes,
		IsActive:            true,
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		return financeService.GenerateInstallments(tx, student.ID, student.CourseValue, student.InstallmentsCount, student.EnrollmentDate)
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um aluno com este CPF")
		}
		if errors.Is(err, financeService.ErrInvalidCourseValue) || errors.Is(err, financeService.ErrInvalidInstallmentCount) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		log.Printf("[STUDENTS] ❌ matrícula falhou: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao matricular aluno")
	}

	log.Printf("[STUDENTS] ✅ matrícula: %s (%dx de %s)",
		student.FullName, student.InstallmentsCount, helper.FormatCentavosBRL(student.CourseValue/int64(student.InstallmentsCount)))
	return helper.JsonCreated(c, "Aluno matriculado com sucesso", student)
}

func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aluno")
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
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.MaxLessonsA != nil {
		updates["max_lessons_a"] = *req.MaxLessonsA
	}
	if req.MaxLessonsB != nil {
		updates["max_lessons_b"] = *req.MaxLessonsB
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nada a atualizar", student)
	}

	if err := ctrl.DB.Model(&student).Updates(updates).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um aluno com este CPF")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar aluno")
	}
	return helper.JsonUpdated(c, "Aluno atualizado", student)
}

// Delete exclui o aluno e suas parcelas. Exige step-up de administrador.
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	if handled, err := helperAuth.RequireAdminReauth(c, ctrl.DB); handled {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aluno")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&financeModel.InstallmentModel{}, "student_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&studentModel.StudentModel{}, "id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao excluir aluno")
	}

	// a foto órfã sai do bucket junto com o cadastro
	if student.PhotoURL != "" {
		storage.RemovePhotoByURL(student.PhotoURL)
	}
	return helper.JsonDeleted(c, "Aluno excluído", nil)
}

// UploadPhoto recebe multipart "photo", converte para webp e grava a URL
func (ctrl *StudentController) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aluno")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo de foto ausente")
	}

	url, err := storage.UploadPhoto("students", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	oldURL := student.PhotoURL
	if err := ctrl.DB.Model(&student).Update("photo_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao salvar URL da foto")
	}
	// troca de foto: a anterior não fica órfã no bucket
	if oldURL != "" && oldURL != url {
		storage.RemovePhotoByURL(oldURL)
	}
	return helper.JsonUpdated(c, "Foto atualizada", fiber.Map{"photo_url": url})
}
