package model

// PushAction is a button rendered on a push notification.
type PushAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// PushPayload is the notification body relayed to the platform push
// service. The shape is a convention shared with the service worker, not a
// binding wire contract.
type PushPayload struct {
	Title   string         `json:"title" validate:"required"`
	Body    string         `json:"body" validate:"required"`
	Icon    string         `json:"icon,omitempty"`
	Badge   string         `json:"badge,omitempty"`
	Tag     string         `json:"tag,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Actions []PushAction   `json:"actions,omitempty"`
}

type SendPushInput struct {
	Subscription SaveSubscriptionInput `json:"subscription" validate:"required"`
	Payload      PushPayload           `json:"payload" validate:"required"`
}

type BroadcastPushInput struct {
	Payload PushPayload `json:"payload" validate:"required"`
}
