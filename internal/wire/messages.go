// Package wire holds the ToDoService and Greeter contract: message types,
// their protobuf and JSON encodings, Connect codecs, typed clients and handler
// constructors. It is kept by hand in the shape protoc-gen-connect-go emits.
package wire

import (
	"time"

	"github.com/idilsaglam/todo/internal/model"
)

// Status is the enum shared with the domain model.
type Status = model.Status

// Message is implemented by every contract message.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire([]byte) error
}

// Empty is google.protobuf.Empty.
type Empty struct{}

// ToDoDetails holds the user-editable fields of an item.
type ToDoDetails struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

type ToDoItem struct {
	Id        int64        `json:"id,string,omitempty"`
	Item      *ToDoDetails `json:"item,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
}

type GetAllResponse struct {
	Items []*ToDoItem `json:"items,omitempty"`
}

type CreateRequest struct {
	Item *ToDoDetails `json:"item,omitempty"`
}

type CreateResponse struct {
	Item *ToDoItem `json:"item,omitempty"`
}

type DeleteRequest struct {
	Id int64 `json:"id,string,omitempty"`
}

type UpdateStatusRequest struct {
	Id     int64  `json:"id,string,omitempty"`
	Status Status `json:"status,omitempty"`
}

type HelloRequest struct {
	Name string `json:"name,omitempty"`
}

type HelloReply struct {
	Message string `json:"message,omitempty"`
}

// GetItem returns the details, never nil.
func (x *ToDoItem) GetItem() *ToDoDetails {
	if x == nil || x.Item == nil {
		return &ToDoDetails{}
	}
	return x.Item
}

// ToModel flattens the wire item into the domain model.
func (x *ToDoItem) ToModel() model.Item {
	d := x.GetItem()
	it := model.Item{
		ID:          x.Id,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
	}
	if x.CreatedAt != nil {
		it.CreatedAt = x.CreatedAt.UTC()
	}
	return it
}

// FromModel is the inverse of ToModel. A zero CreatedAt is left unset.
func FromModel(it model.Item) *ToDoItem {
	x := &ToDoItem{
		Id: it.ID,
		Item: &ToDoDetails{
			Title:       it.Title,
			Description: it.Description,
			Status:      it.Status,
		},
	}
	if !it.CreatedAt.IsZero() {
		ts := it.CreatedAt.UTC()
		x.CreatedAt = &ts
	}
	return x
}
