package handler

import (
	"errors"

	"takeout_manager/constants"
	"takeout_manager/database"
	"takeout_manager/model"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// GetMenu returns the customer-facing menu: available items only.
func GetMenu(c *fiber.Ctx) error {
	var items []model.MenuItem
	if err := database.DB.Where("available = ?", true).Order("category asc, name asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

// GetMenuAdmin returns every item including unavailable ones.
func GetMenuAdmin(c *fiber.Ctx) error {
	var items []model.MenuItem
	if err := database.DB.Order("category asc, name asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func CreateMenuItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMenuItemInput)

	item := model.MenuItem{
		Slug:      slug.Make(input.Name),
		Available: true,
	}
	copier.Copy(&item, &input)

	var existing model.MenuItem
	err := database.DB.Where("slug = ?", item.Slug).First(&existing).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Menu item with this name already exists", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func EditMenuItem(c *fiber.Ctx) error {
	id := c.Locals("id").(uint)
	input := c.Locals("input").(model.EditMenuItemInput)

	var item model.MenuItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil {
		item.Name = *input.Name
		item.Slug = slug.Make(*input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.ImageUrl != nil {
		item.ImageUrl = input.ImageUrl
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.Options != nil {
		item.Options = *input.Options
	}

	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func DeleteMenuItem(c *fiber.Ctx) error {
	id := c.Locals("id").(uint)

	var item model.MenuItem
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Unscoped().Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Menu item deleted")
}
