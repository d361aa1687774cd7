package watch

import "takeout_manager/model"

// Apply folds one change event into an order list. Applying the same
// event twice leaves the list unchanged, so replays from reconnects are
// harmless.
func Apply(orders []model.Order, ev model.OrderEvent) []model.Order {
	switch ev.Kind {
	case model.EventInserted:
		if ev.New == nil {
			return orders
		}
		for _, o := range orders {
			if o.ID == ev.New.ID {
				return orders
			}
		}
		return append([]model.Order{*ev.New}, orders...)

	case model.EventUpdated:
		if ev.New == nil {
			return orders
		}
		for i, o := range orders {
			if o.ID == ev.New.ID {
				out := make([]model.Order, len(orders))
				copy(out, orders)
				out[i] = *ev.New
				return out
			}
		}
		// An update for an order we never saw: treat it as an insert so
		// the record isn't lost.
		return append([]model.Order{*ev.New}, orders...)

	case model.EventDeleted:
		target := ev.Old
		if target == nil {
			target = ev.New
		}
		if target == nil {
			return orders
		}
		out := orders[:0:0]
		for _, o := range orders {
			if o.ID != target.ID {
				out = append(out, o)
			}
		}
		return out
	}

	return orders
}
