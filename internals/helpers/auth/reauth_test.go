package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authModel "autoescola_backend/internals/features/users/auth/model"
)

func setupGate(t *testing.T, role string) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authModel.UserModel{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-certa"), bcrypt.MinCost)
	require.NoError(t, err)
	user := authModel.UserModel{
		UserName: "Gestor",
		Email:    "gestor@cfc.com",
		Password: string(hash),
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Delete("/guarded", func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		c.Locals("user_id", user.ID.String())
		if handled, err := RequireAdminReauth(c, db); handled {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app, db, user.ID
}

func TestRequireAdminReauth_RecusaNaoAdminSemVerificarSenha(t *testing.T) {
	app, _, _ := setupGate(t, "secretaria")

	// mesmo com a senha correta no header, não-admin é recusado direto
	req := httptest.NewRequest("DELETE", "/guarded", nil)
	req.Header.Set("X-Confirm-Password", "senha-certa")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminReauth_SenhaAusente(t *testing.T) {
	app, _, _ := setupGate(t, "admin")

	resp, err := app.Test(httptest.NewRequest("DELETE", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionRequired, resp.StatusCode)
}

func TestRequireAdminReauth_SenhaErradaPermiteNovaTentativa(t *testing.T) {
	app, _, _ := setupGate(t, "admin")

	req := httptest.NewRequest("DELETE", "/guarded", nil)
	req.Header.Set("X-Confirm-Password", "senha-errada")
	resp, err := app.Test(req)
	require.NoError(t, err)
	// 401 retryável, não 403: o cliente mantém o diálogo aberto
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/guarded", nil)
	req.Header.Set("X-Confirm-Password", "senha-certa")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCheckAdminPassword_Sentinelas(t *testing.T) {
	_, db, userID := setupGate(t, "admin")

	fc := fiber.New()
	fc.Post("/probe", func(c *fiber.Ctx) error {
		c.Locals("userRole", "instrutor")
		c.Locals("user_id", userID.String())
		err := CheckAdminPassword(c, db)
		assert.ErrorIs(t, err, ErrReauthNotAdmin)
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("POST", "/probe", nil)
	req.Header.Set("X-Confirm-Password", "senha-certa")
	_, err := fc.Test(req)
	require.NoError(t, err)
}
