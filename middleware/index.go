package middleware

import (
	"strings"

	"takeout_manager/constants"
	"takeout_manager/helper"
	"takeout_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected guards admin routes. The token comes from the access_token
// cookie or a Bearer header.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("access_token")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenString == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing or malformed token", nil)
		}

		claims, err := helper.ParseToken(tokenString)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", err)
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
		}

		c.Locals("role", role)
		return c.Next()
	}
}
