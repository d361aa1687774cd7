package validate

import (
	"time"

	"takeout_manager/constants"
	"takeout_manager/model"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Orders must be placed with some lead time so the kitchen can react.
const minPickupLead = 10 * time.Minute

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if input.PickupTime != nil && input.PickupTime.Before(time.Now().Add(minPickupLead)) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Pickup time must be at least 10 minutes from now", nil)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func FilterOrders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterOrderInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("filter", input)
		return c.Next()
	}
}
