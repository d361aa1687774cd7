package handler

import (
	"time"

	"takeout_manager/constants"
	"takeout_manager/database"
	"takeout_manager/model"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// SaveSubscription upserts a push subscription keyed by its endpoint.
// Browsers rotate keys on re-subscribe, so an existing endpoint gets its
// keys refreshed instead of a duplicate row.
func SaveSubscription(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SaveSubscriptionInput)

	side := input.Side
	if side == "" {
		side = "customer"
	}

	sub := model.PushSubscription{
		Endpoint:  input.Endpoint,
		P256dh:    input.Keys.P256dh,
		Auth:      input.Keys.Auth,
		Side:      side,
		OrderCode: input.OrderCode,
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"p256dh":     sub.P256dh,
			"auth":       sub.Auth,
			"side":       sub.Side,
			"order_code": sub.OrderCode,
			"updated_at": time.Now(),
		}),
	}).Create(&sub).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, sub)
}

func GetSubscriptions(c *fiber.Ctx) error {
	var subs []model.PushSubscription
	if err := database.DB.Find(&subs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, subs)
}

func DeleteSubscription(c *fiber.Ctx) error {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, nil)
	}

	if err := database.DB.Where("endpoint = ?", endpoint).Delete(&model.PushSubscription{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Subscription removed")
}
