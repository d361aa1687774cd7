package constants

const (
	ERROR_INPUT          = "Invalid input"
	ERROR_INTERNAL_ERROR = "Internal server error"
	MISSING_LOGIN_INPUT  = "Missing login input"
	INVALID_PASSWORD     = "Wrong admin password"
	ORDER_NOT_FOUND      = "Order not found"
	MENU_ITEM_NOT_FOUND  = "Menu item not found"
	NOT_ADMIN            = "Admin permission required"
)
