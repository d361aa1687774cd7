package handler

import (
	"time"

	"takeout_manager/config"
	"takeout_manager/constants"
	"takeout_manager/helper"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
)

type LoginInput struct {
	Password string `json:"password"`
}

// Login checks the admin password against the bcrypt hash in the
// environment and issues the token cookies.
func Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if input.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, nil)
	}

	hash := config.Config("ADMIN_PASSWORD_HASH")
	if hash == "" || !helper.CheckPasswordHash(input.Password, hash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, nil)
	}

	accessToken, err := helper.GenerateAccessToken("admin")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken("admin")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setTokenCookies(c, accessToken, refreshToken)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"access_token": accessToken,
		"role":         "admin",
	})
}

// RefreshToken rotates the token pair off a valid refresh_token cookie.
func RefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies("refresh_token")
	if tokenString == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing refresh token", nil)
	}

	claims, err := helper.ParseToken(tokenString)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token", err)
	}

	role, _ := claims["role"].(string)
	if role != "admin" {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	accessToken, err := helper.GenerateAccessToken(role)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(role)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	setTokenCookies(c, accessToken, refreshToken)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"access_token": accessToken,
	})
}

func Logout(c *fiber.Ctx) error {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true})
	return utils.SuccessResponse(c, fiber.StatusOK, "Logged out")
}

func setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(2 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
