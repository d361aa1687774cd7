// Package notify turns order events into user-facing alerts: tones,
// on-screen notifications, and web push. Every channel is best effort; a
// failed alert is logged and never surfaces as an error to the caller.
package notify

import (
	"context"
	"fmt"
	"log"

	"takeout_manager/countdown"
	"takeout_manager/model"
)

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Screen shows notifications on the local device.
type Screen interface {
	Permission() Permission
	Show(title, body string) error
}

// Pusher delivers notifications through the push gateway.
type Pusher interface {
	Send(ctx context.Context, sub model.PushSubscription, payload model.PushPayload) error
	Broadcast(ctx context.Context, payload model.PushPayload) error
}

// Dispatcher fans order events out to the configured alert channels.
type Dispatcher struct {
	// Audio gates tone playback. Off by default until the user opts in.
	Audio  bool
	Sounds Sounder
	Screen Screen
	Push   Pusher
	// Subscription is this device's own push subscription, if any.
	Subscription *model.PushSubscription
	// Timer is the customer-side countdown, fed status changes so it can
	// settle.
	Timer *countdown.Timer
}

// HandleAdmin reacts to events on the dashboard feed. New orders get a
// tone, a local notification, and a push broadcast to staff devices.
func (d *Dispatcher) HandleAdmin(ev model.OrderEvent) {
	if ev.Kind != model.EventInserted || ev.New == nil {
		return
	}
	order := ev.New

	if d.Audio && d.Sounds != nil {
		d.Sounds.NewOrderTone()
	}

	title := "New order"
	body := fmt.Sprintf("%s — %s, %.2f", order.PublicCode, order.CustomerName, order.TotalAmount)

	d.showIfGranted(title, body)

	if d.Push != nil {
		payload := model.PushPayload{
			Title: title,
			Body:  body,
			Tag:   order.PublicCode,
			Data:  map[string]any{"code": order.PublicCode},
		}
		if err := d.Push.Broadcast(context.Background(), payload); err != nil {
			log.Printf("Push broadcast for %s failed: %v", order.PublicCode, err)
		}
	}
}

// HandleCustomer reacts to events on a single order's feed. A status move
// off pending gets a tone, settles the countdown, and tries push with a
// local notification as fallback.
func (d *Dispatcher) HandleCustomer(ev model.OrderEvent) {
	if ev.Kind != model.EventUpdated || ev.New == nil {
		return
	}
	order := ev.New

	if ev.Old != nil && ev.Old.Status == order.Status {
		return
	}
	if order.Status == model.OrderPending {
		return
	}

	if d.Audio && d.Sounds != nil {
		d.Sounds.ConfirmationTone()
	}
	if d.Timer != nil {
		d.Timer.ObserveStatus(order.Status)
	}

	title := statusTitle(order.Status)
	body := fmt.Sprintf("Order %s is %s", order.PublicCode, order.Status)

	if d.Push != nil && d.Subscription != nil {
		payload := model.PushPayload{
			Title: title,
			Body:  body,
			Tag:   order.PublicCode,
			Data:  map[string]any{"code": order.PublicCode, "status": order.Status},
		}
		err := d.Push.Send(context.Background(), *d.Subscription, payload)
		if err == nil {
			return
		}
		log.Printf("Push for %s failed, falling back to local: %v", order.PublicCode, err)
	}

	d.showIfGranted(title, body)
}

func (d *Dispatcher) showIfGranted(title, body string) {
	if d.Screen == nil || d.Screen.Permission() != PermissionGranted {
		return
	}
	if err := d.Screen.Show(title, body); err != nil {
		log.Printf("Local notification failed: %v", err)
	}
}

func statusTitle(status string) string {
	switch status {
	case model.OrderConfirmed:
		return "Order confirmed"
	case model.OrderReady:
		return "Order ready for pickup"
	case model.OrderCompleted:
		return "Order completed"
	default:
		return "Order updated"
	}
}
