package handler

import (
	"log"
	"strconv"
	"time"

	"takeout_manager/config"
	"takeout_manager/database"
	"takeout_manager/model"

	"github.com/go-co-op/gocron/v2"
)

var cleanupScheduler gocron.Scheduler

const defaultRetentionDays = 30

// PurgeOldOrders removes completed orders past the retention window.
// Active orders are never touched.
func PurgeOldOrders() {
	log.Println("[CRON] PurgeOldOrders triggered")

	days := defaultRetentionDays
	if v := config.Config("ORDER_RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	result := database.DB.
		Where("status = ? AND updated_at < ?", model.OrderCompleted, cutoff).
		Delete(&model.Order{})

	if result.Error != nil {
		log.Printf("Order purge failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d completed orders older than %d days", result.RowsAffected, days)
	}
}

func StartOrderCleanupScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		log.Printf("Cleanup scheduler init failed: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 30, 0),
			),
		),
		gocron.NewTask(PurgeOldOrders),
	)
	if err != nil {
		log.Printf("Cleanup job registration failed: %v", err)
		return
	}

	s.Start()
	cleanupScheduler = s
	log.Println("Order cleanup scheduler started (daily 03:30)")
}

func StopOrderCleanupScheduler() {
	if cleanupScheduler != nil {
		if err := cleanupScheduler.Shutdown(); err != nil {
			log.Printf("Cleanup scheduler shutdown failed: %v", err)
		}
	}
}
