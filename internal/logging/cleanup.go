package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"gorm.io/gorm"
)

// PurgeOlderThan deletes system_logs written more than days ago.
func PurgeOlderThan(db *gorm.DB, days int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -days)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs a daily goroutine that enforces the log retention window.
// A non-positive retention disables it.
func StartCleanup(db *gorm.DB, days int, done chan struct{}) {
	if days <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeOlderThan(db, days, time.Now())
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
