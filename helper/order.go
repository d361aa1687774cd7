package helper

import (
	"fmt"
	"strings"

	"takeout_manager/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// StatusRank maps an order status to its place in the pickup flow.
// Unknown statuses rank -1 so they never pass StatusAdvances.
func StatusRank(status string) int {
	switch status {
	case model.OrderPending:
		return 0
	case model.OrderConfirmed:
		return 1
	case model.OrderReady:
		return 2
	case model.OrderCompleted:
		return 3
	default:
		return -1
	}
}

// StatusAdvances reports whether moving from current to next goes strictly
// forward. Orders never walk back to an earlier status.
func StatusAdvances(current, next string) bool {
	cur := StatusRank(current)
	return cur != -1 && StatusRank(next) > cur
}

// SnapshotItems resolves checkout lines against the menu and freezes names
// and prices into order items, so later menu edits don't change past orders.
// Returns the frozen items and the order total.
func SnapshotItems(menu []model.MenuItem, lines []model.CheckoutItem) ([]model.OrderItem, float64, error) {
	byID := make(map[uint]model.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	items := make([]model.OrderItem, 0, len(lines))
	var total float64

	for _, line := range lines {
		menuItem, ok := byID[line.MenuItemID]
		if !ok {
			return nil, 0, fmt.Errorf("menu item %d not found", line.MenuItemID)
		}
		if !menuItem.Available {
			return nil, 0, fmt.Errorf("menu item %q is not available", menuItem.Name)
		}

		var picked []model.MenuOption
		for _, name := range line.Options {
			found := false
			for _, opt := range menuItem.Options {
				if strings.EqualFold(opt.Name, name) {
					var cp model.MenuOption
					copier.Copy(&cp, &opt)
					picked = append(picked, cp)
					found = true
					break
				}
			}
			if !found {
				return nil, 0, fmt.Errorf("option %q not offered for %q", name, menuItem.Name)
			}
		}

		unit := menuItem.Price
		for _, opt := range picked {
			unit += opt.Price
		}

		items = append(items, model.OrderItem{
			Name:     menuItem.Name,
			Price:    menuItem.Price,
			Quantity: line.Quantity,
			Options:  picked,
		})
		total += unit * float64(line.Quantity)
	}

	return items, total, nil
}

// ComputeTotal recomputes an order total from its frozen items.
func ComputeTotal(items []model.OrderItem) float64 {
	var total float64
	for _, it := range items {
		unit := it.Price
		for _, opt := range it.Options {
			unit += opt.Price
		}
		total += unit * float64(it.Quantity)
	}
	return total
}

// NewPublicCode returns a short code customers use to look up their order.
func NewPublicCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:8]
}
