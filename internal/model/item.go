package model

import (
	"encoding/json"
	"time"
)

// Item is the domain model for a todo entry as reported by the remote service.
// The service assigns ID and CreatedAt; both are read-only here.
type Item struct {
	ID          int64     `json:"id,string"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// MarshalJSON leaves createdAt out when the service did not report one;
// omitempty does not apply to struct values such as time.Time.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	out := struct {
		plain
		CreatedAt *time.Time `json:"createdAt,omitempty"`
	}{plain: plain(i)}
	if !i.CreatedAt.IsZero() {
		out.CreatedAt = &i.CreatedAt
	}
	return json.Marshal(out)
}

// Done reports whether the item reached its final state.
func (i Item) Done() bool { return i.Status == StatusDone }

// CreateRequest carries the fields of a single create call.
type CreateRequest struct {
	Title       string
	Description string
	Status      Status
}

// StatusUpdate moves one item to a new status.
type StatusUpdate struct {
	ID     int64
	Status Status
}
