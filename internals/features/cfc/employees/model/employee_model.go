package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string     `gorm:"size:150;not null" json:"full_name"`
	RG        string     `gorm:"size:20" json:"rg"`
	CPF       string     `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email"`

	AddressStreet       string `gorm:"size:150" json:"address_street"`
	AddressNumber       string `gorm:"size:20" json:"address_number"`
	AddressNeighborhood string `gorm:"size:100" json:"address_neighborhood"`
	AddressCity         string `gorm:"size:100" json:"address_city"`
	AddressState        string `gorm:"size:2" json:"address_state"`
	AddressZip          string `gorm:"size:8" json:"address_zip"`

	// mesma tríade de roles do login
	Role     string     `gorm:"size:20;not null" json:"role"`
	HireDate *time.Time `json:"hire_date"`
	PhotoURL string     `gorm:"size:500" json:"photo_url"`
	IsActive bool       `gorm:"default:true" json:"is_active"`

	// vínculo opcional com a conta de acesso
	UserID *uuid.UUID `gorm:"type:uuid" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EmployeeModel) TableName() string {
	return "employees"
}

func (e *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
