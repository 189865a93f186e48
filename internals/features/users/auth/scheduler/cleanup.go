package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"nhatro_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler dọn token hết hạn khỏi blacklist mỗi 24h.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.Unscoped().
				Where("token_blacklist_expired_at < ?", deleteBefore).
				Delete(&model.TokenBlacklistModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] token_blacklist: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] token_blacklist: đã xoá %d token hết hạn", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
