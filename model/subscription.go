package model

// PushSubscription is one device's push registration. Rows are upserted by
// endpoint; stale endpoints simply fail delivery and are never cleaned up
// proactively.
type PushSubscription struct {
	DTO
	Endpoint string `gorm:"unique" json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
	Side     string `json:"side"` // "admin" or "customer"
	// OrderCode ties a customer subscription to the order it follows.
	OrderCode string `gorm:"size:20" json:"orderCode,omitempty"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

type SaveSubscriptionInput struct {
	Endpoint  string           `json:"endpoint" validate:"required,url"`
	Keys      SubscriptionKeys `json:"keys" validate:"required"`
	Side      string           `json:"side" validate:"omitempty,oneof=admin customer"`
	OrderCode string           `json:"orderCode" validate:"omitempty,max=20"`
}
