package controller

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	lessonModel "autoescola_backend/internals/features/cfc/lessons/model"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
)

func setupStatusApp(t *testing.T) (*fiber.App, *gorm.DB, studentModel.StudentModel) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentModel.StudentModel{}, &lessonModel.LessonModel{}))

	student := studentModel.StudentModel{
		FullName:          "Aluno Cota",
		CPF:               "11144477735",
		Category:          studentModel.CategoryB,
		EnrollmentDate:    time.Now(),
		CourseValue:       100000,
		InstallmentsCount: 1,
		MaxLessonsB:       5,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&student).Error)

	ctrl := NewLessonController(db)
	app := fiber.New()
	app.Patch("/lessons/:id/status", ctrl.UpdateStatus)
	return app, db, student
}

func newLesson(t *testing.T, db *gorm.DB, studentID uuid.UUID, status string) lessonModel.LessonModel {
	t.Helper()
	lesson := lessonModel.LessonModel{
		StudentID:    studentID,
		InstructorID: uuid.New(),
		Date:         time.Now().AddDate(0, 0, 1),
		StartTime:    "09:00",
		Type:         lessonModel.TypePraticaB,
		Status:       status,
		Value:        lessonModel.LessonValue(lessonModel.TypePraticaB),
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func patchStatus(t *testing.T, app *fiber.App, lessonID uuid.UUID, body string) int {
	t.Helper()
	req := httptest.NewRequest("PATCH", "/lessons/"+lessonID.String()+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpdateStatus_CanceladaNaoVoltaParaAgendada(t *testing.T) {
	app, db, student := setupStatusApp(t)

	// aluno com a cota B cheia: 5 não canceladas + 1 cancelada
	for i := 0; i < 5; i++ {
		newLesson(t, db, student.ID, lessonModel.StatusAgendada)
	}
	cancelada := newLesson(t, db, student.ID, lessonModel.StatusCancelada)

	// reativar a cancelada reentraria na cota sem gate: recusado
	code := patchStatus(t, app, cancelada.ID, `{"status":"agendada"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	var persisted lessonModel.LessonModel
	require.NoError(t, db.First(&persisted, "id = ?", cancelada.ID).Error)
	assert.Equal(t, lessonModel.StatusCancelada, persisted.Status)

	var nonCancelled int64
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).
		Where("student_id = ? AND status <> ?", student.ID, lessonModel.StatusCancelada).
		Count(&nonCancelled).Error)
	assert.Equal(t, int64(5), nonCancelled)
}

func TestUpdateStatus_TransicoesValidasETerminais(t *testing.T) {
	app, db, student := setupStatusApp(t)

	lesson := newLesson(t, db, student.ID, lessonModel.StatusAgendada)

	// agendada → realizada passa
	code := patchStatus(t, app, lesson.ID, `{"status":"realizada"}`)
	assert.Equal(t, fiber.StatusOK, code)

	// realizada é terminal
	code = patchStatus(t, app, lesson.ID, `{"status":"cancelada"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	// reagendada exige nova data e horário
	outra := newLesson(t, db, student.ID, lessonModel.StatusAgendada)
	code = patchStatus(t, app, outra.ID, `{"status":"reagendada"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code = patchStatus(t, app, outra.ID,
		`{"status":"reagendada","date":"2026-09-10T00:00:00Z","start_time":"14:00"}`)
	assert.Equal(t, fiber.StatusOK, code)

	// reagendada ainda pode ser realizada
	code = patchStatus(t, app, outra.ID, `{"status":"realizada"}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestCanTransition_Tabela(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{lessonModel.StatusAgendada, lessonModel.StatusRealizada, true},
		{lessonModel.StatusAgendada, lessonModel.StatusCancelada, true},
		{lessonModel.StatusAgendada, lessonModel.StatusReagendada, true},
		{lessonModel.StatusReagendada, lessonModel.StatusRealizada, true},
		{lessonModel.StatusReagendada, lessonModel.StatusCancelada, true},
		{lessonModel.StatusReagendada, lessonModel.StatusReagendada, true},
		{lessonModel.StatusCancelada, lessonModel.StatusAgendada, false},
		{lessonModel.StatusCancelada, lessonModel.StatusRealizada, false},
		{lessonModel.StatusRealizada, lessonModel.StatusCancelada, false},
		{lessonModel.StatusRealizada, lessonModel.StatusAgendada, false},
		{lessonModel.StatusAgendada, lessonModel.StatusAgendada, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, lessonModel.CanTransition(tc.from, tc.to),
			"%s para %s", tc.from, tc.to)
	}
}
