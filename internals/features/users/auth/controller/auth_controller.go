package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authDTO "autoescola_backend/internals/features/users/auth/dto"
	authModel "autoescola_backend/internals/features/users/auth/model"
	authRepo "autoescola_backend/internals/features/users/auth/repository"
	authService "autoescola_backend/internals/features/users/auth/service"
	helper "autoescola_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// Login autentica por email+senha e emite o par de tokens
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := authRepo.FindUserByEmail(ctrl.DB, req.Email)
	if err != nil {
		// mesma mensagem para email inexistente e senha errada
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou senha incorretos")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta desativada. Procure o administrador")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou senha incorretos")
	}

	roles, err := authRepo.GetUserRoles(ctrl.DB, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar perfis do usuário")
	}
	role := authModel.PrimaryRole(roles)

	accessToken, err := authService.IssueAccessToken(user, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}
	refreshToken, refreshExp, err := authService.IssueRefreshToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar refresh token")
	}
	if err := authService.StoreRefreshToken(ctrl.DB, user.ID, refreshToken, refreshExp, c.Get("User-Agent"), c.IP()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao persistir sessão")
	}

	authService.SetAuthCookies(c, accessToken, refreshToken, refreshExp)
	log.Printf("[AUTH] ✅ login: %s (%s)", user.Email, role)

	return helper.JsonOK(c, "Login realizado com sucesso", authDTO.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: authDTO.UserResponse{
			ID:       user.ID.String(),
			UserName: user.UserName,
			Email:    user.Email,
			Role:     role,
		},
	})
}

// RefreshToken rotaciona o refresh token e emite um novo par
func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.BodyParser(&body)
	raw := body.RefreshToken
	if raw == "" {
		raw = c.Cookies("refresh_token")
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token ausente")
	}

	user, err := authService.RotateRefreshToken(ctrl.DB, raw)
	if err != nil {
		authService.ClearAuthCookies(c)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão expirada. Faça login novamente")
	}

	roles, err := authRepo.GetUserRoles(ctrl.DB, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar perfis do usuário")
	}
	role := authModel.PrimaryRole(roles)

	accessToken, err := authService.IssueAccessToken(user, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}
	newRefresh, refreshExp, err := authService.IssueRefreshToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar refresh token")
	}
	if err := authService.StoreRefreshToken(ctrl.DB, user.ID, newRefresh, refreshExp, c.Get("User-Agent"), c.IP()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao persistir sessão")
	}

	authService.SetAuthCookies(c, accessToken, newRefresh, refreshExp)

	return helper.JsonOK(c, "Token renovado", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": newRefresh,
	})
}

// Logout coloca o access token atual na blacklist e revoga os refresh tokens
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("access_token").(string)
	if token != "" {
		if err := authService.BlacklistAccessToken(ctrl.DB, token, authService.AccessTokenTTL); err != nil {
			log.Printf("[AUTH] ⚠️ falha ao registrar token na blacklist: %v", err)
		}
	}
	if userIDStr, ok := c.Locals("user_id").(string); ok {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			_ = authService.RevokeUserRefreshTokens(ctrl.DB, userID)
		}
	}
	authService.ClearAuthCookies(c)
	return helper.JsonOK(c, "Logout realizado com sucesso", nil)
}

// Me devolve o perfil do usuário autenticado
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão inválida")
	}
	user, err := authRepo.FindUserByID(ctrl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
	}
	role, _ := c.Locals("userRole").(string)
	return helper.JsonOK(c, "OK", authDTO.UserResponse{
		ID:       user.ID.String(),
		UserName: user.UserName,
		Email:    user.Email,
		Role:     role,
	})
}

// ChangePassword exige a senha atual, troca e derruba as sessões antigas
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userIDStr, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sessão inválida")
	}
	user, err := authRepo.FindUserByID(ctrl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuário não encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Senha atual incorreta")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar nova senha")
	}
	if err := authRepo.UpdateUserPassword(ctrl.DB, userID, string(hashed)); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao atualizar senha")
	}

	// sessões antigas caem: o usuário segue logado só com o token atual
	_ = authService.RevokeUserRefreshTokens(ctrl.DB, userID)
	log.Printf("[AUTH] 🔑 senha alterada: %s em %s", user.Email, time.Now().Format(time.RFC3339))

	return helper.JsonOK(c, "Senha alterada com sucesso", nil)
}
