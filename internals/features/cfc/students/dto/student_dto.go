package dto

import "time"

type CreateStudentRequest struct {
	FullName  string     `json:"full_name" validate:"required,min=3,max=150"`
	RG        string     `json:"rg" validate:"max=20"`
	CPF       string     `json:"cpf" validate:"required"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     string     `json:"phone" validate:"max=20"`
	Email     string     `json:"email" validate:"omitempty,email"`

	AddressStreet       string `json:"address_street" validate:"max=150"`
	AddressNumber       string `json:"address_number" validate:"max=20"`
	AddressNeighborhood string `json:"address_neighborhood" validate:"max=100"`
	AddressCity         string `json:"address_city" validate:"max=100"`
	AddressState        string `json:"address_state" validate:"omitempty,len=2"`
	AddressZip          string `json:"address_zip"`

	Category       string     `json:"category" validate:"required,oneof=A B AB"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
	Status         string     `json:"status" validate:"omitempty,oneof=ativo em_formacao formado desistente"`

	CourseValue       int64 `json:"course_value" validate:"required,gt=0"`
	InstallmentsCount int   `json:"installments_count" validate:"required,min=1,max=48"`
	MaxLessonsA       int   `json:"max_lessons_a" validate:"min=0"`
	MaxLessonsB       int   `json:"max_lessons_b" validate:"min=0"`

	Notes string `json:"notes"`
}

type UpdateStudentRequest struct {
	FullName  *string    `json:"full_name" validate:"omitempty,min=3,max=150"`
	RG        *string    `json:"rg" validate:"omitempty,max=20"`
	CPF       *string    `json:"cpf"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     *string    `json:"phone" validate:"omitempty,max=20"`
	Email     *string    `json:"email" validate:"omitempty,email"`

	AddressStreet       *string `json:"address_street" validate:"omitempty,max=150"`
	AddressNumber       *string `json:"address_number" validate:"omitempty,max=20"`
	AddressNeighborhood *string `json:"address_neighborhood" validate:"omitempty,max=100"`
	AddressCity         *string `json:"address_city" validate:"omitempty,max=100"`
	AddressState        *string `json:"address_state" validate:"omitempty,len=2"`
	AddressZip          *string `json:"address_zip"`

	Category *string `json:"category" validate:"omitempty,oneof=A B AB"`
	Status   *string `json:"status" validate:"omitempty,oneof=ativo em_formacao formado desistente"`

	MaxLessonsA *int `json:"max_lessons_a" validate:"omitempty,min=0"`
	MaxLessonsB *int `json:"max_lessons_b" validate:"omitempty,min=0"`

	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}
