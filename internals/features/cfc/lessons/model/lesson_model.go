package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de aula. O sufixo indica a categoria do veículo.
const (
	TypePraticaA = "pratica_a"
	TypePraticaB = "pratica_b"
	TypeExameA   = "exame_a"
	TypeExameB   = "exame_b"
)

const (
	StatusAgendada   = "agendada"
	StatusRealizada  = "realizada"
	StatusCancelada  = "cancelada"
	StatusReagendada = "reagendada"
)

// Valores em centavos, sempre derivados do tipo no servidor
const (
	ValuePratica int64 = 1000
	ValueExame   int64 = 2000
)

type LessonModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`

	Date            time.Time `gorm:"not null;index" json:"date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	DurationMinutes int       `gorm:"not null;default:50" json:"duration_minutes"`

	Type   string `gorm:"size:20;not null" json:"type"`
	Status string `gorm:"size:20;not null;default:agendada" json:"status"`
	Value  int64  `gorm:"not null" json:"value"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LessonModel) TableName() string {
	return "lessons"
}

func (l *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func ValidLessonType(t string) bool {
	switch t {
	case TypePraticaA, TypePraticaB, TypeExameA, TypeExameB:
		return true
	}
	return false
}

func ValidLessonStatus(s string) bool {
	switch s {
	case StatusAgendada, StatusRealizada, StatusCancelada, StatusReagendada:
		return true
	}
	return false
}

// CanTransition valida a máquina de status: agendada (e reagendada) podem
// virar realizada, cancelada ou reagendada; realizada e cancelada são
// terminais. Voltar para agendada nunca é permitido — uma aula cancelada
// reentrando na cota teria que passar pelo agendamento normal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusAgendada, StatusReagendada:
		// reagendada aceita reagendar de novo; agendada → agendada é no-op
		return to == StatusRealizada || to == StatusCancelada || to == StatusReagendada
	}
	return false
}

// LessonValue deriva o valor do tipo: exame vale o dobro da prática
func LessonValue(lessonType string) int64 {
	if strings.HasPrefix(lessonType, "exame") {
		return ValueExame
	}
	return ValuePratica
}

// LessonGroup devolve "A" ou "B" pelo sufixo do tipo
func LessonGroup(lessonType string) string {
	if strings.HasSuffix(lessonType, "_a") {
		return "A"
	}
	return "B"
}

// GroupTypes lista os tipos de um grupo, usado nas consultas de cota
func GroupTypes(group string) []string {
	if group == "A" {
		return []string{TypePraticaA, TypeExameA}
	}
	return []string{TypePraticaB, TypeExameB}
}

// EligibleTypes lista os tipos permitidos para a categoria do aluno
func EligibleTypes(category string) []string {
	switch category {
	case "A":
		return []string{TypePraticaA, TypeExameA}
	case "B":
		return []string{TypePraticaB, TypeExameB}
	case "AB":
		return []string{TypePraticaA, TypePraticaB, TypeExameA, TypeExameB}
	}
	return nil
}

// TypeEligibleForCategory: aula _a exige categoria A ou AB; _b exige B ou AB
func TypeEligibleForCategory(lessonType, category string) bool {
	for _, t := range EligibleTypes(category) {
		if t == lessonType {
			return true
		}
	}
	return false
}
