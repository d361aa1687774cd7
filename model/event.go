package model

// Change feed event kinds.
const (
	EventInserted = "inserted"
	EventUpdated  = "updated"
	EventDeleted  = "deleted"
)

// OrderEvent is one change-feed frame. New carries the record after the
// change, Old the record before it (updates and deletes only).
type OrderEvent struct {
	Kind string `json:"kind"`
	New  *Order `json:"new,omitempty"`
	Old  *Order `json:"old,omitempty"`
}

// Code returns the public code of the order the event concerns.
func (e OrderEvent) Code() string {
	if e.New != nil {
		return e.New.PublicCode
	}
	if e.Old != nil {
		return e.Old.PublicCode
	}
	return ""
}
