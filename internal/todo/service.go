// Package todo turns the four page operations into single round trips on
// the bound ToDoService client and classifies whatever goes wrong.
package todo

import (
	"context"

	"connectrpc.com/connect"

	"github.com/idilsaglam/todo/internal/failure"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/wire"
)

// ToDoClient is the part of the generated-style client the facade uses.
type ToDoClient interface {
	GetAll(context.Context, *connect.Request[wire.Empty]) (*connect.Response[wire.GetAllResponse], error)
	Create(context.Context, *connect.Request[wire.CreateRequest]) (*connect.Response[wire.CreateResponse], error)
	Delete(context.Context, *connect.Request[wire.DeleteRequest]) (*connect.Response[wire.Empty], error)
	UpdateStatus(context.Context, *connect.Request[wire.UpdateStatusRequest]) (*connect.Response[wire.Empty], error)
}

// GreeterClient is the legacy smoke-test service.
type GreeterClient interface {
	SayHello(context.Context, *connect.Request[wire.HelloRequest]) (*connect.Response[wire.HelloReply], error)
}

// Service is safe for concurrent use; it holds nothing but the clients.
type Service struct {
	todo    ToDoClient
	greeter GreeterClient
}

// New wraps the clients. greeter may be nil when SayHello is not needed.
func New(todo ToDoClient, greeter GreeterClient) *Service {
	return &Service{todo: todo, greeter: greeter}
}

// ListAll fetches the whole collection. An empty collection is an empty,
// non-nil slice.
func (s *Service) ListAll(ctx context.Context) ([]model.Item, error) {
	res, err := s.todo.GetAll(ctx, connect.NewRequest(&wire.Empty{}))
	if err != nil {
		return nil, failure.Remote(err)
	}
	items := make([]model.Item, 0, len(res.Msg.Items))
	for _, it := range res.Msg.Items {
		items = append(items, it.ToModel())
	}
	return items, nil
}

// Create submits a new item. The title is expected to be validated already.
func (s *Service) Create(ctx context.Context, req model.CreateRequest) error {
	_, err := s.todo.Create(ctx, connect.NewRequest(&wire.CreateRequest{
		Item: &wire.ToDoDetails{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		},
	}))
	if err != nil {
		return failure.Remote(err)
	}
	return nil
}

// Delete removes one item. Unknown ids come back as a remote failure.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.todo.Delete(ctx, connect.NewRequest(&wire.DeleteRequest{Id: id})); err != nil {
		return failure.Remote(err)
	}
	return nil
}

// UpdateStatus moves an item to a new status; the service decides whether
// the transition is legal.
func (s *Service) UpdateStatus(ctx context.Context, u model.StatusUpdate) error {
	_, err := s.todo.UpdateStatus(ctx, connect.NewRequest(&wire.UpdateStatusRequest{Id: u.ID, Status: u.Status}))
	if err != nil {
		return failure.Remote(err)
	}
	return nil
}

// SayHello calls the legacy greeter.
func (s *Service) SayHello(ctx context.Context, name string) (string, error) {
	if s.greeter == nil {
		return "", failure.Remote(connect.NewError(connect.CodeUnimplemented, errNoGreeter))
	}
	res, err := s.greeter.SayHello(ctx, connect.NewRequest(&wire.HelloRequest{Name: name}))
	if err != nil {
		return "", failure.Remote(err)
	}
	return res.Msg.Message, nil
}
