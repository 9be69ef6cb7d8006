package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"quanlysinhvien_backend/internals/features/users/auth/model"

	"gorm.io/gorm"
)

// StartTokenCleanupScheduler purges expired blacklist entries and stale
// refresh token hashes once a day.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Purging expired tokens...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.Unscoped().
				Where("expired_at < ?", deleteBefore).
				Delete(&model.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] token_blacklist purge failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] removed %d expired blacklist entries", res.RowsAffected)
			}

			res = db.
				Where("expires_at < ?", time.Now()).
				Delete(&model.RefreshTokenModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] refresh_tokens purge failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] removed %d expired refresh tokens", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
