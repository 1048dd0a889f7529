package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	lessonModel "autoescola_backend/internals/features/cfc/lessons/model"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentModel.StudentModel{}, &lessonModel.LessonModel{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func seedLesson(t *testing.T, db *gorm.DB, studentID uuid.UUID, lessonType, status string) lessonModel.LessonModel {
	t.Helper()
	lesson := lessonModel.LessonModel{
		StudentID:    studentID,
		InstructorID: uuid.New(),
		Date:         time.Now().AddDate(0, 0, 1),
		StartTime:    "08:00",
		Type:         lessonType,
		Status:       status,
		Value:        lessonModel.LessonValue(lessonType),
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func TestCheckQuota_ContagemNoBanco(t *testing.T) {
	db := setupTestDB(t)

	student := studentModel.StudentModel{
		FullName:          "Aluno Teste",
		CPF:               "11144477735",
		Category:          studentModel.CategoryB,
		EnrollmentDate:    time.Now(),
		CourseValue:       100000,
		InstallmentsCount: 1,
		MaxLessonsB:       5,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&student).Error)

	for i := 0; i < 4; i++ {
		seedLesson(t, db, student.ID, lessonModel.TypePraticaB, lessonModel.StatusAgendada)
	}
	quinta := seedLesson(t, db, student.ID, lessonModel.TypeExameB, lessonModel.StatusRealizada)
	// cancelada nunca conta
	seedLesson(t, db, student.ID, lessonModel.TypePraticaB, lessonModel.StatusCancelada)

	// 5 não canceladas de 5 → sexta excede
	decision, err := CheckQuota(db, &student, lessonModel.TypePraticaB, uuid.Nil)
	require.NoError(t, err)
	require.True(t, decision.Exceeded)
	require.Equal(t, 5, decision.Used)

	// editar a quinta aula não conta contra si mesma
	decision, err = CheckQuota(db, &student, lessonModel.TypePraticaB, quinta.ID)
	require.NoError(t, err)
	require.False(t, decision.Exceeded)

	// cancelar uma libera a vaga
	require.NoError(t, db.Model(&lessonModel.LessonModel{}).
		Where("id = ?", quinta.ID).
		Update("status", lessonModel.StatusCancelada).Error)
	decision, err = CheckQuota(db, &student, lessonModel.TypePraticaB, uuid.Nil)
	require.NoError(t, err)
	require.False(t, decision.Exceeded)
}
