package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"autoescola_backend/internals/configs"
	authModel "autoescola_backend/internals/features/users/auth/model"
)

// RunAllSeeds garante a conta inicial de administrador em instalação nova.
// Controlado por SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; sem as variáveis,
// nada acontece.
func RunAllSeeds(db *gorm.DB) {
	seedAdminUser(db)
}

func seedAdminUser(db *gorm.DB) {
	email := configs.GetEnv("SEED_ADMIN_EMAIL", "")
	password := configs.GetEnv("SEED_ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&authModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("[SEED] ❌ falha ao verificar admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEED] ❌ falha ao gerar hash: %v", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := authModel.UserModel{
			UserName: configs.GetEnv("SEED_ADMIN_NAME", "Administrador"),
			Email:    email,
			Password: string(hash),
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&authModel.UserRole{
			UserID: user.ID,
			Role:   authModel.RoleAdmin,
		}).Error
	})
	if err != nil {
		log.Printf("[SEED] ❌ falha ao criar admin inicial: %v", err)
		return
	}
	log.Printf("[SEED] ✅ admin inicial criado: %s", email)
}
