package handler

import (
	"log"
	"strconv"
	"time"

	"takeout_manager/config"
	"takeout_manager/database"
	"takeout_manager/model"

	"github.com/robfig/cron/v3"
)

var autoConfirmScheduler *cron.Cron

// Orders left pending this long are confirmed automatically. The customer
// page shows a countdown over the same window.
const defaultAutoConfirmWindow = 600 * time.Second

func autoConfirmWindow() time.Duration {
	if v := config.Config("AUTO_CONFIRM_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultAutoConfirmWindow
}

func StartAutoConfirmWorker() {
	autoConfirmScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := autoConfirmScheduler.AddFunc("* * * * *", ConfirmOverdueOrders)
	if err != nil {
		log.Printf("Auto-confirm scheduler init failed: %v", err)
		return
	}

	autoConfirmScheduler.Start()
	log.Println("Auto-confirm worker started (every minute)")
}

// ConfirmOverdueOrders promotes pending orders whose confirmation window
// has run out. The server is the authority here: the client countdown is
// display only.
func ConfirmOverdueOrders() {
	cutoff := time.Now().Add(-autoConfirmWindow())

	var orders []model.Order
	err := database.DB.
		Where("status = ? AND created_at < ?", model.OrderPending, cutoff).
		Find(&orders).Error
	if err != nil {
		log.Printf("Auto-confirm scan failed: %v", err)
		return
	}

	for i := range orders {
		old := orders[i]
		orders[i].Status = model.OrderConfirmed
		now := time.Now()
		orders[i].ReadyAt = &now

		if err := database.DB.Save(&orders[i]).Error; err != nil {
			log.Printf("Auto-confirm of %s failed: %v", orders[i].PublicCode, err)
			continue
		}

		PublishOrderEvent(model.OrderEvent{Kind: model.EventUpdated, New: &orders[i], Old: &old})
		log.Printf("Auto-confirmed order %s", orders[i].PublicCode)
	}
}

func StopAutoConfirmWorker() {
	if autoConfirmScheduler != nil {
		autoConfirmScheduler.Stop()
		log.Println("Auto-confirm worker stopped")
	}
}
