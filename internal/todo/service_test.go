package todo

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/failure"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/testutil/todofake"
	"github.com/idilsaglam/todo/internal/transport"
	"github.com/idilsaglam/todo/internal/wire"
)

func newService(t *testing.T, ec transport.ExecutionContext, seed ...model.Item) (*Service, *todofake.Service) {
	t.Helper()
	fake := todofake.New(seed...)
	h, err := transport.NewSelector().Bind(transport.Config{BaseAddress: todofake.Start(t, fake)}, ec)
	require.NoError(t, err)
	return FromHandle(h), fake
}

func TestListAllEmpty(t *testing.T) {
	svc, _ := newService(t, transport.Server)
	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListAll(t *testing.T) {
	svc, _ := newService(t, transport.Browser,
		model.Item{ID: 1, Title: "a", Status: model.StatusOpen},
		model.Item{ID: 2, Title: "b", Description: "bee", Status: model.StatusDone},
	)
	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "bee", items[1].Description)
	assert.True(t, items[1].Done())
}

func TestCreateSendsOneCall(t *testing.T) {
	svc, fake := newService(t, transport.Server)
	err := svc.Create(context.Background(), model.CreateRequest{Title: "Buy milk", Status: model.StatusOpen})
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, wire.ToDoServiceCreateProcedure, calls[0].Procedure)
	assert.Equal(t, &wire.CreateRequest{Item: &wire.ToDoDetails{Title: "Buy milk", Status: model.StatusOpen}}, calls[0].Msg)
	require.Len(t, fake.Items(), 1)
	assert.Equal(t, int64(1), fake.Items()[0].ID)
}

func TestDeleteUnknownIsFailure(t *testing.T) {
	svc, fake := newService(t, transport.Server, model.Item{ID: 5, Title: "x"})

	require.NoError(t, svc.Delete(context.Background(), 5))
	err := svc.Delete(context.Background(), 5)
	require.Error(t, err)

	var fe *failure.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, failure.KindRemoteCall, fe.Kind)
	assert.Equal(t, connect.CodeNotFound, fe.Code)
	assert.Contains(t, fe.Message, "not found")
	assert.Len(t, fake.Calls(), 2)
}

func TestUpdateStatusIsNotRetried(t *testing.T) {
	svc, fake := newService(t, transport.Browser, model.Item{ID: 42, Title: "x"})
	fake.FailWith(wire.ToDoServiceUpdateStatusProcedure, connect.NewError(connect.CodeUnavailable, errors.New("service down")))

	err := svc.UpdateStatus(context.Background(), model.StatusUpdate{ID: 42, Status: model.StatusInProgress})
	require.Error(t, err)
	assert.Equal(t, failure.KindRemoteCall, failure.KindOf(err))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, &wire.UpdateStatusRequest{Id: 42, Status: model.StatusInProgress}, calls[0].Msg)
}

func TestUpdateStatusNoTransitionCheck(t *testing.T) {
	svc, fake := newService(t, transport.Server, model.Item{ID: 1, Title: "x", Status: model.StatusDone})
	require.NoError(t, svc.UpdateStatus(context.Background(), model.StatusUpdate{ID: 1, Status: model.StatusOpen}))
	assert.Equal(t, model.StatusOpen, fake.Items()[0].Status)
}

func TestUnreachableServiceIsUnavailable(t *testing.T) {
	h, err := transport.NewSelector().Bind(transport.Config{BaseAddress: "http://127.0.0.1:1"}, transport.Browser)
	require.NoError(t, err)

	_, err = FromHandle(h).ListAll(context.Background())
	var fe *failure.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, connect.CodeUnavailable, fe.Code)
}

func TestCanceledContext(t *testing.T) {
	svc, _ := newService(t, transport.Server)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.Create(ctx, model.CreateRequest{Title: "x"})
	var fe *failure.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, connect.CodeCanceled, fe.Code)
}

func TestSayHello(t *testing.T) {
	svc, _ := newService(t, transport.Server)
	msg, err := svc.SayHello(context.Background(), "Svelte 5 Singleton")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Svelte 5 Singleton", msg)

	_, err = New(nil, nil).SayHello(context.Background(), "x")
	assert.Equal(t, failure.KindRemoteCall, failure.KindOf(err))
}
