package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"autoescola_backend/internals/configs"
	authModel "autoescola_backend/internals/features/users/auth/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrRefreshTokenInvalid = errors.New("refresh token inválido ou expirado")

// IssueAccessToken gera o JWT de acesso com as claims usadas pelo middleware
func IssueAccessToken(user *authModel.UserModel, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func IssueRefreshToken(user *authModel.UserModel) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(RefreshTokenTTL)
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTRefreshSecret))
	return signed, exp, err
}

// HashRefreshToken — só o hash vai para o banco
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func StoreRefreshToken(db *gorm.DB, userID uuid.UUID, raw string, exp time.Time, userAgent, ip string) error {
	rec := authModel.RefreshToken{
		UserID:    userID,
		TokenHash: HashRefreshToken(raw),
		ExpiresAt: exp,
	}
	if userAgent != "" {
		rec.UserAgent = &userAgent
	}
	if ip != "" {
		rec.IP = &ip
	}
	return db.Create(&rec).Error
}

// RotateRefreshToken valida o token recebido, revoga o registro antigo e
// devolve o usuário dono. A validação de assinatura vem antes da consulta.
func RotateRefreshToken(db *gorm.DB, raw string) (*authModel.UserModel, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrRefreshTokenInvalid
	}

	var rec authModel.RefreshToken
	err = db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?",
		HashRefreshToken(raw), time.Now()).First(&rec).Error
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	now := time.Now()
	if err := db.Model(&rec).Update("revoked_at", now).Error; err != nil {
		return nil, err
	}

	var user authModel.UserModel
	if err := db.First(&user, "id = ?", rec.UserID).Error; err != nil {
		return nil, ErrRefreshTokenInvalid
	}
	if !user.IsActive {
		return nil, ErrRefreshTokenInvalid
	}
	return &user, nil
}

func RevokeUserRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// BlacklistAccessToken registra o access token até o expiry configurado
func BlacklistAccessToken(db *gorm.DB, token string, ttl time.Duration) error {
	entry := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().Add(ttl),
	}
	return db.Create(&entry).Error
}

func SetAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, refreshExp time.Time) {
	secure := configs.GetEnv("COOKIE_SECURE", "false") == "true"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(AccessTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  refreshExp,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
}

func ClearAuthCookies(c *fiber.Ctx) {
	past := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  past,
			HTTPOnly: true,
			Path:     "/",
		})
	}
}
