package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Order status values. Status only ever advances in this sequence.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderReady     = "ready"
	OrderCompleted = "completed"
)

// OrderItem is a line item snapshot taken from the menu at order time.
// Later menu edits never change past orders.
type OrderItem struct {
	Name     string       `json:"name"`
	Price    float64      `json:"price"`
	Quantity int          `json:"quantity"`
	Options  []MenuOption `json:"options,omitempty"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	return string(b), err
}

func (i *OrderItems) Scan(value any) error {
	if value == nil {
		*i = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return errors.New("unsupported type for OrderItems")
	}
}

type Order struct {
	DTO
	PublicCode    string     `gorm:"unique;size:20" json:"publicCode"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	PickupTime    time.Time  `json:"pickupTime"`
	Status        string     `gorm:"default:pending" json:"status"`
	TotalAmount   float64    `json:"totalAmount"`
	Items         OrderItems `gorm:"type:jsonb" json:"items"`
	Notes         string     `json:"notes,omitempty"`
	ReadyAt       *time.Time `json:"readyAt,omitempty"`
}

// CheckoutItem is one cart line as submitted at checkout. Options are
// referenced by name and re-priced from the live menu server side.
type CheckoutItem struct {
	MenuItemID uint     `json:"menuItemId" validate:"required"`
	Quantity   int      `json:"quantity" validate:"required,min=1"`
	Options    []string `json:"options"`
}

type CreateOrderInput struct {
	CustomerName  string         `json:"customerName" validate:"required"`
	CustomerPhone string         `json:"customerPhone" validate:"required"`
	PickupTime    *time.Time     `json:"pickupTime"`
	Notes         string         `json:"notes"`
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed ready completed"`
}

type FilterOrderInput struct {
	Status string `query:"status"`
	Limit  *int   `query:"limit"`
	Page   *int   `query:"page"`
}
