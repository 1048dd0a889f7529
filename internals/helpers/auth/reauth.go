package helper

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	helper "autoescola_backend/internals/helpers"
)

// Gate de re-autenticação do administrador: ações destrutivas (e o override
// de cota de aulas) exigem a senha da sessão atual antes de executar.
// A senha chega no header X-Confirm-Password (ou confirm_password no body).

var (
	ErrReauthNotAdmin        = errors.New("apenas administradores podem realizar esta ação")
	ErrReauthMissingPassword = errors.New("confirmação de senha necessária")
	ErrReauthWrongPassword   = errors.New("senha incorreta")
)

func extractConfirmPassword(c *fiber.Ctx) string {
	if pwd := strings.TrimSpace(c.Get("X-Confirm-Password")); pwd != "" {
		return pwd
	}
	// fallback: confirm_password no body JSON
	var body struct {
		ConfirmPassword string `json:"confirm_password"`
	}
	if len(c.Body()) > 0 {
		if err := sonic.Unmarshal(c.Body(), &body); err == nil {
			return strings.TrimSpace(body.ConfirmPassword)
		}
	}
	return ""
}

// CheckAdminPassword valida o step-up sem escrever resposta.
// Se a role não for admin, a senha NUNCA é verificada.
func CheckAdminPassword(c *fiber.Ctx, db *gorm.DB) error {
	role, _ := c.Locals("userRole").(string)
	if role != "admin" {
		return ErrReauthNotAdmin
	}

	password := extractConfirmPassword(c)
	if password == "" {
		return ErrReauthMissingPassword
	}

	userIDStr, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrReauthNotAdmin
	}

	var user struct {
		Password string
	}
	if err := db.Table("users").Select("password").Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrReauthNotAdmin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrReauthWrongPassword
	}
	return nil
}

// RequireAdminReauth aplica o gate e já escreve a resposta de erro.
// handled=true significa que a resposta já foi enviada; o handler deve
// retornar err imediatamente.
func RequireAdminReauth(c *fiber.Ctx, db *gorm.DB) (handled bool, err error) {
	switch gateErr := CheckAdminPassword(c, db); {
	case gateErr == nil:
		return false, nil
	case errors.Is(gateErr, ErrReauthNotAdmin):
		return true, helper.JsonError(c, fiber.StatusForbidden, "Apenas administradores podem realizar esta ação.")
	case errors.Is(gateErr, ErrReauthMissingPassword):
		return true, helper.JsonError(c, fiber.StatusPreconditionRequired, "Confirme sua senha de administrador para continuar.")
	case errors.Is(gateErr, ErrReauthWrongPassword):
		return true, helper.JsonError(c, fiber.StatusUnauthorized, "Senha incorreta. Tente novamente.")
	default:
		return true, helper.JsonError(c, fiber.StatusInternalServerError, gateErr.Error())
	}
}
