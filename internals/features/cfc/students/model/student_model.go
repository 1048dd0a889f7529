package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categorias de habilitação
const (
	CategoryA  = "A"
	CategoryB  = "B"
	CategoryAB = "AB"
)

// Situação do aluno no curso
const (
	StatusAtivo      = "ativo"
	StatusEmFormacao = "em_formacao"
	StatusFormado    = "formado"
	StatusDesistente = "desistente"
)

type StudentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	RG        string    `gorm:"size:20" json:"rg"`
	CPF       string    `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`

	AddressStreet       string `gorm:"size:150" json:"address_street"`
	AddressNumber       string `gorm:"size:20" json:"address_number"`
	AddressNeighborhood string `gorm:"size:100" json:"address_neighborhood"`
	AddressCity         string `gorm:"size:100" json:"address_city"`
	AddressState        string `gorm:"size:2" json:"address_state"`
	AddressZip          string `gorm:"size:8" json:"address_zip"`

	Category       string    `gorm:"size:2;not null" json:"category"`
	EnrollmentDate time.Time `gorm:"not null" json:"enrollment_date"`
	PhotoURL       string    `gorm:"size:500" json:"photo_url"`
	Status         string    `gorm:"size:20;not null;default:em_formacao" json:"status"`

	// valores em centavos
	CourseValue       int64 `gorm:"not null" json:"course_value"`
	InstallmentsCount int   `gorm:"not null;default:1" json:"installments_count"`

	// 0 = ilimitado
	MaxLessonsA int `gorm:"not null;default:0" json:"max_lessons_a"`
	MaxLessonsB int `gorm:"not null;default:0" json:"max_lessons_b"`

	Notes    string `gorm:"type:text" json:"notes"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func ValidCategory(cat string) bool {
	switch cat {
	case CategoryA, CategoryB, CategoryAB:
		return true
	}
	return false
}

func ValidStudentStatus(status string) bool {
	switch status {
	case StatusAtivo, StatusEmFormacao, StatusFormado, StatusDesistente:
		return true
	}
	return false
}
