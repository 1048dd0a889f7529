package scheduler

import (
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"autoescola_backend/internals/configs"
	authModel "autoescola_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler remove tokens expirados da blacklist e
// refresh tokens vencidos, uma varredura por dia.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			cleanExpiredTokens(db)
			time.Sleep(24 * time.Hour)
		}
	}()
}

func cleanExpiredTokens(db *gorm.DB) {
	ttlDays := 7
	if v := configs.GetEnv("TOKEN_BLACKLIST_TTL_DAYS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlDays = n
		}
	}
	cutoff := time.Now().AddDate(0, 0, -ttlDays)

	res := db.Unscoped().
		Where("expired_at < ?", cutoff).
		Delete(&authModel.TokenBlacklist{})
	if res.Error != nil {
		log.Printf("[SCHEDULER] ❌ limpeza da blacklist falhou: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[SCHEDULER] 🧹 blacklist: %d tokens removidos", res.RowsAffected)
	}

	res = db.Where("expires_at < ?", time.Now().AddDate(0, 0, -1)).
		Delete(&authModel.RefreshToken{})
	if res.Error != nil {
		log.Printf("[SCHEDULER] ❌ limpeza de refresh tokens falhou: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[SCHEDULER] 🧹 refresh tokens: %d registros removidos", res.RowsAffected)
	}
}
