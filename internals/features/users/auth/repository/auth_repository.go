package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "autoescola_backend/internals/features/users/auth/model"
)

func FindUserByEmail(db *gorm.DB, email string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserRoles retorna todas as roles do usuário
func GetUserRoles(db *gorm.DB, userID uuid.UUID) ([]string, error) {
	var roles []string
	if err := db.Model(&authModel.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hashed string) error {
	return db.Model(&authModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}
