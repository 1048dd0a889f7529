package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	lessonModel "autoescola_backend/internals/features/cfc/lessons/model"
	studentModel "autoescola_backend/internals/features/cfc/students/model"
)

func TestDecideQuota_LimiteAtingido(t *testing.T) {
	student := &studentModel.StudentModel{MaxLessonsA: 0, MaxLessonsB: 5}

	// 5 de 5 aulas B não canceladas → sexta dispara o gate
	decision := DecideQuota(student, lessonModel.TypePraticaB, 5, false)
	assert.True(t, decision.Exceeded)
	assert.Equal(t, "B", decision.Group)
	assert.Equal(t, 5, decision.MaxAllowed)

	// uma cancelada libera a vaga (contagem cai para 4)
	decision = DecideQuota(student, lessonModel.TypePraticaB, 4, false)
	assert.False(t, decision.Exceeded)

	// exame do mesmo grupo conta na mesma cota
	decision = DecideQuota(student, lessonModel.TypeExameB, 5, false)
	assert.True(t, decision.Exceeded)
}

func TestDecideQuota_EdicaoNaoContaContraSiMesma(t *testing.T) {
	student := &studentModel.StudentModel{MaxLessonsB: 5}

	// editando uma das 5 aulas B: a própria aula não conta
	decision := DecideQuota(student, lessonModel.TypePraticaB, 5, true)
	assert.False(t, decision.Exceeded)

	// editando uma aula de OUTRO grupo para B com a cota cheia: conta tudo
	decision = DecideQuota(student, lessonModel.TypePraticaB, 5, false)
	assert.True(t, decision.Exceeded)
}

func TestDecideQuota_ZeroEhIlimitado(t *testing.T) {
	student := &studentModel.StudentModel{MaxLessonsA: 0, MaxLessonsB: 0}

	decision := DecideQuota(student, lessonModel.TypePraticaA, 200, false)
	assert.False(t, decision.Exceeded)

	decision = DecideQuota(student, lessonModel.TypeExameB, 50, false)
	assert.False(t, decision.Exceeded)
}

func TestLessonGroupEValor(t *testing.T) {
	assert.Equal(t, "A", lessonModel.LessonGroup(lessonModel.TypePraticaA))
	assert.Equal(t, "A", lessonModel.LessonGroup(lessonModel.TypeExameA))
	assert.Equal(t, "B", lessonModel.LessonGroup(lessonModel.TypePraticaB))
	assert.Equal(t, "B", lessonModel.LessonGroup(lessonModel.TypeExameB))

	assert.Equal(t, int64(1000), lessonModel.LessonValue(lessonModel.TypePraticaA))
	assert.Equal(t, int64(1000), lessonModel.LessonValue(lessonModel.TypePraticaB))
	assert.Equal(t, int64(2000), lessonModel.LessonValue(lessonModel.TypeExameA))
	assert.Equal(t, int64(2000), lessonModel.LessonValue(lessonModel.TypeExameB))
}

func TestElegibilidadePorCategoria(t *testing.T) {
	// categoria A não enxerga tipos B, e vice-versa
	assert.True(t, lessonModel.TypeEligibleForCategory(lessonModel.TypePraticaA, "A"))
	assert.True(t, lessonModel.TypeEligibleForCategory(lessonModel.TypeExameA, "A"))
	assert.False(t, lessonModel.TypeEligibleForCategory(lessonModel.TypePraticaB, "A"))
	assert.False(t, lessonModel.TypeEligibleForCategory(lessonModel.TypeExameB, "A"))

	assert.False(t, lessonModel.TypeEligibleForCategory(lessonModel.TypePraticaA, "B"))
	assert.True(t, lessonModel.TypeEligibleForCategory(lessonModel.TypePraticaB, "B"))

	// AB vê os quatro tipos
	assert.Len(t, lessonModel.EligibleTypes("AB"), 4)
	for _, lt := range lessonModel.EligibleTypes("AB") {
		assert.True(t, lessonModel.TypeEligibleForCategory(lt, "AB"))
	}
}
