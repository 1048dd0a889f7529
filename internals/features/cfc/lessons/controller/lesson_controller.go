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

	lessonDTO "autoescola_backend/internals/features/cfc/lessons/dto"
	lessonModel "autoescola_backend/internals/features/cfc/lessons/model"
	lessonService "autoescola_backend/internals/features/cfc/lessons/service"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
	helper "autoescola_backend/internals/helpers"
	helperAuth "autoescola_backend/internals/helpers/auth"
)

type LessonController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validate: validator.New()}
}

type lessonRow struct {
	lessonModel.LessonModel
	StudentName    string `gorm:"column:student_name"`
	InstructorName string `gorm:"column:instructor_name"`
}

func toLessonResponse(row lessonRow) lessonDTO.LessonResponse {
	return lessonDTO.LessonResponse{
		ID:              row.ID.String(),
		StudentID:       row.StudentID.String(),
		StudentName:     row.StudentName,
		InstructorID:    row.InstructorID.String(),
		InstructorName:  row.InstructorName,
		Date:            row.Date,
		StartTime:       row.StartTime,
		DurationMinutes: row.DurationMinutes,
		Type:            row.Type,
		Status:          row.Status,
		Value:           row.Value,
		Notes:           row.Notes,
	}
}

func (ctrl *LessonController) baseQuery() *gorm.DB {
	return ctrl.DB.Table("lessons").
		Select("lessons.*, students.full_name AS student_name, employees.full_name AS instructor_name").
		Joins("JOIN students ON students.id = lessons.student_id").
		Joins("JOIN employees ON employees.id = lessons.instructor_id")
}

func (ctrl *LessonController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.baseQuery()
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("students.full_name ILIKE ? OR employees.full_name ILIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("lessons.status = ?", status)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		q = q.Where("lessons.student_id = ?", studentID)
	}
	if instructorID := c.Query("instructor_id"); instructorID != "" {
		q = q.Where("lessons.instructor_id = ?", instructorID)
	}
	if from := c.Query("date_from"); from != "" {
		q = q.Where("lessons.date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		q = q.Where("lessons.date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar aulas")
	}

	var rows []lessonRow
	if err := q.Order("lessons.date ASC, lessons.start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao listar aulas")
	}

	out := make([]lessonDTO.LessonResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLessonResponse(row))
	}
	return helper.JsonList(c, "Aulas listadas", out, helper.BuildPagination(paging, total, len(out)))
}

// loadStudent valida o aluno e a elegibilidade do tipo pela categoria
func (ctrl *LessonController) loadStudent(c *fiber.Ctx, studentID uuid.UUID, lessonType string) (*studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Aluno não encontrado")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aluno")
	}
	if !student.IsActive {
		return nil, helper.JsonError(c, fiber.StatusUnprocessableEntity, "Aluno inativo não pode agendar aulas")
	}
	if !lessonModel.TypeEligibleForCategory(lessonType, student.Category) {
		return nil, helper.JsonError(c, fiber.StatusUnprocessableEntity,
			"Tipo de aula incompatível com a categoria do aluno ("+student.Category+")")
	}
	return &student, nil
}

// enforceQuota aplica a cota; excedida vira 409 a menos que o step-up de
// administrador passe (override consciente, não bloqueio duro).
func (ctrl *LessonController) enforceQuota(c *fiber.Ctx, student *studentModel.StudentModel, lessonType string, editingID uuid.UUID) (handled bool, err error) {
	decision, err := lessonService.CheckQuota(ctrl.DB, student, lessonType, editingID)
	if err != nil {
		return true, helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar cota de aulas")
	}
	if !decision.Exceeded {
		return false, nil
	}

	if gateErr := helperAuth.CheckAdminPassword(c, ctrl.DB); gateErr != nil {
		switch {
		case errors.Is(gateErr, helperAuth.ErrReauthWrongPassword):
			return true, helper.JsonError(c, fiber.StatusUnauthorized, "Senha incorreta. Tente novamente.")
		default:
			// sem senha (ou sem ser admin): devolve a cota estourada
			return true, c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":    fiber.StatusConflict,
				"status":  "error",
				"error":   "quota_excedida",
				"message": "Cota de aulas atingida para a categoria " + decision.Group,
				"data":    decision,
			})
		}
	}

	log.Printf("[LESSONS] ⚠️ cota excedida liberada por admin: aluno=%s grupo=%s (%d/%d)",
		student.ID, decision.Group, decision.Used, decision.MaxAllowed)
	return false, nil
}

func (ctrl *LessonController) Create(c *fiber.Ctx) error {
	var req lessonDTO.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id inválido")
	}
	instructorID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "instructor_id inválido")
	}

	student, errResp := ctrl.loadStudent(c, studentID, req.Type)
	if student == nil {
		return errResp
	}

	var instructorCount int64
	if err := ctrl.DB.Table("employees").
		Where("id = ? AND role = ? AND is_active = ?", instructorID, "instrutor", true).
		Count(&instructorCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar instrutor")
	}
	if instructorCount == 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Instrutor inexistente ou inativo")
	}

	if handled, err := ctrl.enforceQuota(c, student, req.Type, uuid.Nil); handled {
		return err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 50
	}
	lesson := lessonModel.LessonModel{
		StudentID:       studentID,
		InstructorID:    instructorID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Type:            req.Type,
		Status:          lessonModel.StatusAgendada,
		Value:           lessonModel.LessonValue(req.Type), // valor do cliente é ignorado
		Notes:           req.Notes,
	}
	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao agendar aula")
	}
	return helper.JsonCreated(c, "Aula agendada", lesson)
}

func (ctrl *LessonController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req lessonDTO.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var lesson lessonModel.LessonModel
	if err := ctrl.DB.First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aula não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aula")
	}

	newType := lesson.Type
	if req.Type != nil {
		newType = *req.Type
	}

	student, errResp := ctrl.loadStudent(c, lesson.StudentID, newType)
	if student == nil {
		return errResp
	}

	// mudança de tipo (ou manutenção) passa pela cota; a própria aula não conta
	if handled, err := ctrl.enforceQuota(c, student, newType, lesson.ID); handled {
		return err
	}

	updates := map[string]interface{}{}
	if req.InstructorID != nil {
		instructorID, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "instructor_id inválido")
		}
		updates["instructor_id"] = instructorID
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Type != nil {
		updates["type"] = *req.Type
		updates["value"] = lessonModel.LessonValue(*req.Type)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nada a atualizar", lesson)
	}

	if err := ctrl.DB.Model(&lesson).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar aula")
	}
	return helper.JsonUpdated(c, "Aula atualizada", lesson)
}

// UpdateStatus aplica as transições agendada → realizada | cancelada | reagendada
func (ctrl *LessonController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req lessonDTO.UpdateLessonStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var lesson lessonModel.LessonModel
	if err := ctrl.DB.First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aula não encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar aula")
	}

	// máquina de status: cancelada/realizada são terminais; voltar para
	// agendada reentraria na cota sem passar pelo gate
	if !lessonModel.CanTransition(lesson.Status, req.Status) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity,
			"Transição de status inválida: "+lesson.Status+" para "+req.Status)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == lessonModel.StatusReagendada {
		// reagendar exige a nova data e horário
		if req.Date == nil || req.StartTime == nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Reagendamento exige nova data e horário")
		}
		updates["date"] = *req.Date
		updates["start_time"] = *req.StartTime
	}

	if err := ctrl.DB.Model(&lesson).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar status da aula")
	}
	return helper.JsonUpdated(c, "Status da aula atualizado", lesson)
}

func (ctrl *LessonController) Delete(c *fiber.Ctx) error {
	if handled, err := helperAuth.RequireAdminReauth(c, ctrl.DB); handled {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctrl.DB.Delete(&lessonModel.LessonModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao excluir aula")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Aula não encontrada")
	}
	return helper.JsonDeleted(c, "Aula excluída", nil)
}

// WeeklyAgenda devolve a semana agrupada por dia. ?start=YYYY-MM-DD define
// o início; sem parâmetro, a segunda-feira da semana corrente.
func (ctrl *LessonController) WeeklyAgenda(c *fiber.Ctx) error {
	start := time.Now()
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Data de início inválida (use YYYY-MM-DD)")
		}
		start = parsed
	} else {
		// recua até a segunda-feira
		for start.Weekday() != time.Monday {
			start = start.AddDate(0, 0, -1)
		}
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end := start.AddDate(0, 0, 7)

	var rows []lessonRow
	if err := ctrl.baseQuery().
		Where("lessons.date >= ? AND lessons.date < ?", start, end).
		Order("lessons.date ASC, lessons.start_time ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar agenda")
	}

	days := make([]fiber.Map, 0, 7)
	byDay := make(map[string][]lessonDTO.LessonResponse, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		byDay[key] = []lessonDTO.LessonResponse{}
		days = append(days, fiber.Map{"date": key})
	}
	for _, row := range rows {
		key := row.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], toLessonResponse(row))
	}
	for i := range days {
		key := days[i]["date"].(string)
		days[i]["lessons"] = byDay[key]
	}

	return helper.JsonOK(c, "Agenda da semana", fiber.Map{
		"week_start": start.Format("2006-01-02"),
		"days":       days,
	})
}

// InstructorReport agrupa aulas realizadas por instrutor no período.
// ?period=semana|quinzena|mes ou custom com date_from/date_to.
func (ctrl *LessonController) InstructorReport(c *fiber.Ctx) error {
	now := time.Now()
	var from, to time.Time

	switch period := c.Query("period", "mes"); period {
	case "semana":
		from = now.AddDate(0, 0, -7)
		to = now
	case "quinzena":
		from = now.AddDate(0, 0, -15)
		to = now
	case "mes":
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = now
	case "custom":
		var err error
		from, err = time.Parse("2006-01-02", c.Query("date_from"))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from inválida (use YYYY-MM-DD)")
		}
		to, err = time.Parse("2006-01-02", c.Query("date_to"))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to inválida (use YYYY-MM-DD)")
		}
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Período inválido (semana, quinzena, mes ou custom)")
	}

	var rows []lessonRow
	if err := ctrl.baseQuery().
		Where("lessons.status = ? AND lessons.date >= ? AND lessons.date <= ?",
			lessonModel.StatusRealizada, from, to).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar relatório")
	}

	byInstructor := make(map[string]*lessonDTO.InstructorReportRow)
	var order []string
	for _, row := range rows {
		key := row.InstructorID.String()
		entry, ok := byInstructor[key]
		if !ok {
			entry = &lessonDTO.InstructorReportRow{
				InstructorID:   key,
				InstructorName: row.InstructorName,
			}
			byInstructor[key] = entry
			order = append(order, key)
		}
		if strings.HasPrefix(row.Type, "exame") {
			entry.ExameCount++
		} else {
			entry.PraticaCount++
		}
		entry.TotalValue += row.Value
	}

	report := make([]lessonDTO.InstructorReportRow, 0, len(order))
	for _, key := range order {
		report = append(report, *byInstructor[key])
	}

	return helper.JsonOK(c, "Relatório de instrutores", fiber.Map{
		"period_start": from.Format("2006-01-02"),
		"period_end":   to.Format("2006-01-02"),
		"rows":         report,
	})
}
