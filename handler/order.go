package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"takeout_manager/constants"
	"takeout_manager/database"
	"takeout_manager/helper"
	"takeout_manager/model"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Default pickup when the customer doesn't pick a slot.
const defaultPickupOffset = 30 * time.Minute

// CreateOrder turns a validated checkout into a stored order. Item names
// and prices are frozen at this point.
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	var menu []model.MenuItem
	if err := database.DB.Find(&menu).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	items, total, err := helper.SnapshotItems(menu, input.Items)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	pickup := time.Now().Add(defaultPickupOffset)
	if input.PickupTime != nil {
		pickup = *input.PickupTime
	}

	order := model.Order{
		PublicCode:    helper.NewPublicCode(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		PickupTime:    pickup,
		Status:        model.OrderPending,
		TotalAmount:   total,
		Items:         items,
		Notes:         input.Notes,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishOrderEvent(model.OrderEvent{Kind: model.EventInserted, New: &order})

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

// GetOrders lists orders for the dashboard, newest first, with an optional
// status filter.
func GetOrders(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.FilterOrderInput)

	query := database.DB.Model(&model.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var orders []model.Order
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// GetOrderByCode is the customer-facing lookup. The response carries a qr
// code for the pickup counter.
func GetOrderByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var order model.Order
	if err := database.DB.Where("public_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	qrPng, err := utils.GenerateQRCode(order.PublicCode, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	qrBase64 := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(qrPng))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order": order,
		"qr":    qrBase64,
	})
}

// UpdateOrderStatus moves an order forward in the pickup flow. A write
// that doesn't advance the status is answered with the current record and
// no event, so stale dashboards can't walk an order backwards.
func UpdateOrderStatus(c *fiber.Ctx) error {
	code := c.Params("code")
	input := c.Locals("input").(model.UpdateOrderStatusInput)

	var order model.Order
	if err := database.DB.Where("public_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.StatusAdvances(order.Status, input.Status) {
		return utils.SuccessResponse(c, fiber.StatusOK, order)
	}

	old := order
	order.Status = input.Status
	if input.Status == model.OrderConfirmed && order.ReadyAt == nil {
		now := time.Now()
		order.ReadyAt = &now
	}

	if err := database.DB.Save(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishOrderEvent(model.OrderEvent{Kind: model.EventUpdated, New: &order, Old: &old})

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
