package dto

import "time"

type CreateEmployeeRequest struct {
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

	Role     string     `json:"role" validate:"required,oneof=admin secretaria instrutor"`
	HireDate *time.Time `json:"hire_date"`
	UserID   *string    `json:"user_id" validate:"omitempty,uuid4"`
}

type UpdateEmployeeRequest struct {
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

	Role     *string    `json:"role" validate:"omitempty,oneof=admin secretaria instrutor"`
	HireDate *time.Time `json:"hire_date"`
	IsActive *bool      `json:"is_active"`
}
