package router

import (
	"takeout_manager/handler"
	"takeout_manager/middleware"
	"takeout_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	v1.Get("/menu", handler.GetMenu)

	orders := v1.Group("/orders", logger.New())
	orders.Post("/", validate.CreateOrder(), handler.CreateOrder)
	orders.Get("/feed/:code/ws", websocket.New(handler.OrderFeed))
	orders.Get("/:code", handler.GetOrderByCode)

	subscriptions := v1.Group("/subscriptions", logger.New())
	subscriptions.Post("/", validate.SaveSubscription(), handler.SaveSubscription)
	subscriptions.Delete("/", handler.DeleteSubscription)

	push := v1.Group("/push", logger.New())
	push.Post("/send", validate.SendPush(), handler.SendPush)
	push.Post("/broadcast", middleware.Protected(), validate.BroadcastPush(), handler.BroadcastPush)

	admin := v1.Group("/admin", logger.New())
	admin.Get("/menu", middleware.Protected(), handler.GetMenuAdmin)
	admin.Post("/menu", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	admin.Put("/menu/:id", middleware.Protected(), validate.EditMenuItem(), handler.EditMenuItem)
	admin.Delete("/menu/:id", middleware.Protected(), validate.MenuItemID(), handler.DeleteMenuItem)
	admin.Post("/menu-image", middleware.Protected(), handler.UploadMenuImage)
	admin.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	admin.Get("/orders", middleware.Protected(), validate.FilterOrders(), handler.GetOrders)
	admin.Get("/orders/feed/ws", middleware.Protected(), websocket.New(handler.AdminOrderFeed))
	admin.Patch("/orders/:code/status", middleware.Protected(), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)

	admin.Get("/subscriptions", middleware.Protected(), handler.GetSubscriptions)
}
