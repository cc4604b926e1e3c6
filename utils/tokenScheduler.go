package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// purgeExpiredTokens drops blacklist rows for refresh tokens that have
// expired on their own; they can never be replayed anyway.
func purgeExpiredTokens() {
	db := database.Database.Db

	res := db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{})
	if res.Error != nil {
		log.Printf("[TOKEN-SCHEDULER] Error purging expired tokens: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[TOKEN-SCHEDULER] Purged %d expired revoked tokens", res.RowsAffected)
	}
}

// StartTokenCleanupScheduler runs the blacklist purge once a day.
func StartTokenCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@daily", purgeExpiredTokens); err != nil {
		log.Printf("[TOKEN-SCHEDULER] Failed to schedule cleanup: %v", err)
		return c
	}

	c.Start()
	log.Println("[TOKEN-SCHEDULER] Token cleanup scheduler started")
	return c
}
