package watch

import (
	"testing"

	"takeout_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id uint, code, status string) model.Order {
	return model.Order{
		DTO:        model.DTO{ID: id},
		PublicCode: code,
		Status:     status,
	}
}

func TestApplyInsert(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	o2 := order(2, "ORD-BBBB2222", model.OrderPending)

	list := Apply(nil, model.OrderEvent{Kind: model.EventInserted, New: &o1})
	list = Apply(list, model.OrderEvent{Kind: model.EventInserted, New: &o2})

	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, uint(2), list[0].ID)

	// replaying the same insert is a no-op
	list = Apply(list, model.OrderEvent{Kind: model.EventInserted, New: &o1})
	assert.Len(t, list, 2)
}

func TestApplyUpdate(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	list := []model.Order{o1}

	updated := o1
	updated.Status = model.OrderConfirmed

	list = Apply(list, model.OrderEvent{Kind: model.EventUpdated, New: &updated, Old: &o1})
	require.Len(t, list, 1)
	assert.Equal(t, model.OrderConfirmed, list[0].Status)

	// applying the same update again changes nothing
	again := Apply(list, model.OrderEvent{Kind: model.EventUpdated, New: &updated, Old: &o1})
	assert.Equal(t, list, again)
}

func TestApplyUpdateForUnknownOrderInserts(t *testing.T) {
	o9 := order(9, "ORD-ZZZZ9999", model.OrderReady)

	list := Apply(nil, model.OrderEvent{Kind: model.EventUpdated, New: &o9})
	require.Len(t, list, 1)
	assert.Equal(t, uint(9), list[0].ID)
}

func TestApplyDelete(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderCompleted)
	o2 := order(2, "ORD-BBBB2222", model.OrderPending)
	list := []model.Order{o2, o1}

	list = Apply(list, model.OrderEvent{Kind: model.EventDeleted, Old: &o1})
	require.Len(t, list, 1)
	assert.Equal(t, uint(2), list[0].ID)

	// deleting an order that's already gone is harmless
	list = Apply(list, model.OrderEvent{Kind: model.EventDeleted, Old: &o1})
	assert.Len(t, list, 1)
}

func TestApplyIgnoresMalformedEvents(t *testing.T) {
	o1 := order(1, "ORD-AAAA1111", model.OrderPending)
	list := []model.Order{o1}

	assert.Equal(t, list, Apply(list, model.OrderEvent{Kind: model.EventInserted}))
	assert.Equal(t, list, Apply(list, model.OrderEvent{Kind: model.EventUpdated}))
	assert.Equal(t, list, Apply(list, model.OrderEvent{Kind: model.EventDeleted}))
	assert.Equal(t, list, Apply(list, model.OrderEvent{Kind: "unknown", New: &o1}))
}
