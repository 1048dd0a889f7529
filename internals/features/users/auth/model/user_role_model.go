package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papéis de acesso da equipe. A prioridade (admin > secretaria > instrutor)
// decide a role principal quando o usuário tem mais de uma.
const (
	RoleAdmin      = "admin"
	RoleSecretaria = "secretaria"
	RoleInstrutor  = "instrutor"
)

var RolePriority = []string{RoleAdmin, RoleSecretaria, RoleInstrutor}

type UserRole struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_role,priority:1" json:"user_id"`
	Role   string    `gorm:"type:varchar(20);not null;uniqueIndex:uniq_user_role,priority:2" json:"role"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// PrimaryRole escolhe a role de maior prioridade
func PrimaryRole(roles []string) string {
	for _, p := range RolePriority {
		for _, r := range roles {
			if r == p {
				return p
			}
		}
	}
	return ""
}
