package handler

import (
	"encoding/json"
	"fmt"
	"log"

	"takeout_manager/config"
	"takeout_manager/constants"
	"takeout_manager/database"
	"takeout_manager/model"
	"takeout_manager/utils"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/gofiber/fiber/v2"
)

// SendPush delivers one notification to one subscription.
func SendPush(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SendPushInput)

	sub := model.PushSubscription{
		Endpoint: input.Subscription.Endpoint,
		P256dh:   input.Subscription.Keys.P256dh,
		Auth:     input.Subscription.Keys.Auth,
	}

	if err := sendWebPush(sub, input.Payload); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Push delivery failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"success": true})
}

// BroadcastPush fans a notification out to every stored subscription and
// reports the per-destination tally.
func BroadcastPush(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BroadcastPushInput)

	var subs []model.PushSubscription
	if err := database.DB.Find(&subs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	sent, failed := FanoutPush(subs, func(sub model.PushSubscription) error {
		return sendWebPush(sub, input.Payload)
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"sent":    sent,
		"failed":  failed,
	})
}

// FanoutPush attempts delivery to every destination. One failure never
// stops the rest; failures are counted and logged only.
func FanoutPush(subs []model.PushSubscription, send func(model.PushSubscription) error) (sent, failed int) {
	for _, sub := range subs {
		if err := send(sub); err != nil {
			log.Printf("Push to %s failed: %v", sub.Endpoint, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func sendWebPush(sub model.PushSubscription, payload model.PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      config.ConfigDefault("VAPID_SUBJECT", "mailto:admin@takeout.local"),
		VAPIDPublicKey:  config.Config("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: config.Config("VAPID_PRIVATE_KEY"),
		TTL:             86400,
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}
