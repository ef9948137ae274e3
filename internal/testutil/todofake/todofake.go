// Package todofake is an in-memory ToDoService and Greeter used by tests.
// It records every call it receives and can be told to fail the next ones.
package todofake

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/wire"
)

// Call is one received request.
type Call struct {
	Procedure string
	Protocol  string
	Msg       any
}

// Service holds items in memory. The zero value is not usable; use New.
type Service struct {
	mu     sync.Mutex
	nextID int64
	items  []model.Item
	calls  []Call
	fail   map[string]error
	now    func() time.Time
}

func New(seed ...model.Item) *Service {
	s := &Service{nextID: 1, fail: make(map[string]error), now: time.Now}
	for _, it := range seed {
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
		s.items = append(s.items, it)
	}
	return s
}

// FailWith makes every later call to procedure return err.
func (s *Service) FailWith(procedure string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[procedure] = err
}

// Calls returns a copy of the recorded calls.
func (s *Service) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Items returns a copy of the stored items.
func (s *Service) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.items...)
}

func (s *Service) record(procedure string, peer connect.Peer, msg any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Procedure: procedure, Protocol: peer.Protocol, Msg: msg})
	return s.fail[procedure]
}

func (s *Service) GetAll(_ context.Context, req *connect.Request[wire.Empty]) (*connect.Response[wire.GetAllResponse], error) {
	if err := s.record(wire.ToDoServiceGetAllProcedure, req.Peer(), req.Msg); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := &wire.GetAllResponse{}
	for _, it := range s.items {
		out.Items = append(out.Items, wire.FromModel(it))
	}
	return connect.NewResponse(out), nil
}

func (s *Service) Create(_ context.Context, req *connect.Request[wire.CreateRequest]) (*connect.Response[wire.CreateResponse], error) {
	if err := s.record(wire.ToDoServiceCreateProcedure, req.Peer(), req.Msg); err != nil {
		return nil, err
	}
	d := req.Msg.Item
	if d == nil || d.Title == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("title is required"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it := model.Item{
		ID:          s.nextID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}
	s.nextID++
	s.items = append(s.items, it)
	return connect.NewResponse(&wire.CreateResponse{Item: wire.FromModel(it)}), nil
}

func (s *Service) Delete(_ context.Context, req *connect.Request[wire.DeleteRequest]) (*connect.Response[wire.Empty], error) {
	if err := s.record(wire.ToDoServiceDeleteProcedure, req.Peer(), req.Msg); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == req.Msg.Id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return connect.NewResponse(&wire.Empty{}), nil
		}
	}
	return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("Todo with ID %d not found", req.Msg.Id))
}

func (s *Service) UpdateStatus(_ context.Context, req *connect.Request[wire.UpdateStatusRequest]) (*connect.Response[wire.Empty], error) {
	if err := s.record(wire.ToDoServiceUpdateStatusProcedure, req.Peer(), req.Msg); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == req.Msg.Id {
			s.items[i].Status = req.Msg.Status
		}
	}
	return connect.NewResponse(&wire.Empty{}), nil
}

func (s *Service) SayHello(_ context.Context, req *connect.Request[wire.HelloRequest]) (*connect.Response[wire.HelloReply], error) {
	if err := s.record(wire.GreeterSayHelloProcedure, req.Peer(), req.Msg); err != nil {
		return nil, err
	}
	return connect.NewResponse(&wire.HelloReply{Message: "Hello, " + req.Msg.Name}), nil
}

// Handler mounts both services on one mux.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(wire.NewToDoServiceHandler(s))
	mux.Handle(wire.NewGreeterHandler(s))
	return mux
}

// Start serves s over cleartext HTTP/1.1 and h2c until the test ends and
// returns the base URL.
func Start(t testing.TB, s *Service) string {
	t.Helper()
	srv := httptest.NewServer(h2c.NewHandler(s.Handler(), &http2.Server{}))
	t.Cleanup(srv.Close)
	return srv.URL
}
