package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonModel "autoescola_backend/internals/features/cfc/lessons/model"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
)

// QuotaDecision é o resultado da checagem de cota antes de salvar uma aula
type QuotaDecision struct {
	Exceeded   bool   `json:"exceeded"`
	Group      string `json:"group"`
	Used       int    `json:"used"`
	MaxAllowed int    `json:"max_allowed"` // 0 = ilimitado
}

// DecideQuota aplica a regra de cota sem tocar no banco.
// Aulas canceladas nunca contam; ao editar uma aula do mesmo grupo, ela
// não conta contra si mesma (ajuste de 1).
func DecideQuota(student *studentModel.StudentModel, lessonType string, currentCount int, editingSameGroup bool) QuotaDecision {
	group := lessonModel.LessonGroup(lessonType)

	maxAllowed := student.MaxLessonsA
	if group == "B" {
		maxAllowed = student.MaxLessonsB
	}

	decision := QuotaDecision{
		Group:      group,
		Used:       currentCount,
		MaxAllowed: maxAllowed,
	}
	if maxAllowed <= 0 {
		return decision // ilimitado
	}

	count := currentCount
	if editingSameGroup {
		count--
	}
	decision.Exceeded = count >= maxAllowed
	return decision
}

// CheckQuota conta as aulas não canceladas do grupo no banco e decide.
// editingLessonID aponta a aula sendo editada (uuid.Nil em criação).
func CheckQuota(db *gorm.DB, student *studentModel.StudentModel, lessonType string, editingLessonID uuid.UUID) (QuotaDecision, error) {
	group := lessonModel.LessonGroup(lessonType)
	types := lessonModel.GroupTypes(group)

	var count int64
	err := db.Model(&lessonModel.LessonModel{}).
		Where("student_id = ? AND type IN ? AND status <> ?",
			student.ID, types, lessonModel.StatusCancelada).
		Count(&count).Error
	if err != nil {
		return QuotaDecision{}, err
	}

	editingSameGroup := false
	if editingLessonID != uuid.Nil {
		var existing lessonModel.LessonModel
		if err := db.Select("type", "status").First(&existing, "id = ?", editingLessonID).Error; err != nil {
			return QuotaDecision{}, err
		}
		editingSameGroup = lessonModel.LessonGroup(existing.Type) == group &&
			existing.Status != lessonModel.StatusCancelada
	}

	return DecideQuota(student, lessonType, int(count), editingSameGroup), nil
}
