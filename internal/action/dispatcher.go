// Package action is the outermost layer: it takes raw form fields from a
// page, validates them, calls the todo operations and maps the outcome to a
// result the page can render.
package action

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/failure"
	"github.com/idilsaglam/todo/internal/model"
)

// Action names accepted by Dispatch.
const (
	ActionCreate       = "create"
	ActionDelete       = "delete"
	ActionUpdateStatus = "updateStatus"
)

// Operations is what the dispatcher needs from the todo facade.
type Operations interface {
	ListAll(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, req model.CreateRequest) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, u model.StatusUpdate) error
	SayHello(ctx context.Context, name string) (string, error)
}

// Result is what a page renders. Status is an HTTP status code.
type Result struct {
	Status   int          `json:"-"`
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Field    string       `json:"field,omitempty"`
	Items    []model.Item `json:"items,omitempty"`
	Greeting string       `json:"greeting,omitempty"`
}

// Failed reports whether the result is an error for the page.
func (r Result) Failed() bool { return !r.Success }

type Dispatcher struct {
	ops      Operations
	logger   *zap.Logger
	validate *validator.Validate
}

func New(ops Operations, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{ops: ops, logger: logger, validate: newValidator()}
}

// Dispatch runs the named page action.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, fields Fields) Result {
	switch name {
	case ActionCreate:
		return d.Create(ctx, fields)
	case ActionDelete:
		return d.Delete(ctx, fields)
	case ActionUpdateStatus:
		return d.UpdateStatus(ctx, fields)
	}
	return Result{Status: http.StatusNotFound, Message: "unknown action " + strings.TrimSpace(name)}
}

// Load lists every item; there is nothing to validate.
func (d *Dispatcher) Load(ctx context.Context) Result {
	items, err := d.ops.ListAll(ctx)
	if err != nil {
		return d.remoteFailure("load", "failed to load items", err)
	}
	return Result{Status: http.StatusOK, Success: true, Items: items}
}

func (d *Dispatcher) Create(ctx context.Context, fields Fields) Result {
	req, err := d.parseCreate(fields)
	if err != nil {
		return d.invalid(ActionCreate, err)
	}
	if err := d.ops.Create(ctx, req); err != nil {
		return d.remoteFailure(ActionCreate, "failed to create item", err)
	}
	return ok()
}

func (d *Dispatcher) Delete(ctx context.Context, fields Fields) Result {
	id, err := d.parseDelete(fields)
	if err != nil {
		return d.invalid(ActionDelete, err)
	}
	if err := d.ops.Delete(ctx, id); err != nil {
		return d.remoteFailure(ActionDelete, "failed to delete item", err)
	}
	return ok()
}

func (d *Dispatcher) UpdateStatus(ctx context.Context, fields Fields) Result {
	u, err := d.parseUpdateStatus(fields)
	if err != nil {
		return d.invalid(ActionUpdateStatus, err)
	}
	if err := d.ops.UpdateStatus(ctx, u); err != nil {
		return d.remoteFailure(ActionUpdateStatus, "failed to update status", err)
	}
	return ok()
}

// Hello calls the legacy greeter; name defaults to "world".
func (d *Dispatcher) Hello(ctx context.Context, fields Fields) Result {
	var f helloForm
	if err := d.parseForm(fields, &f); err != nil {
		return d.invalid("hello", err)
	}
	if f.Name == "" {
		f.Name = "world"
	}
	msg, err := d.ops.SayHello(ctx, f.Name)
	if err != nil {
		return d.remoteFailure("hello", "failed to reach greeter", err)
	}
	return Result{Status: http.StatusOK, Success: true, Greeting: msg}
}

func ok() Result { return Result{Status: http.StatusOK, Success: true} }

func (d *Dispatcher) invalid(action string, err error) Result {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		fe = failure.Validation("form", err.Error())
	}
	d.logger.Info("action rejected",
		zap.String("action", action),
		zap.String("field", fe.Field),
		zap.String("reason", fe.Message),
	)
	return Result{Status: fe.Kind.HTTPStatus(), Message: fe.Message, Field: fe.Field}
}

// remoteFailure logs the remote classification and hands the page only a
// generic message.
func (d *Dispatcher) remoteFailure(action, message string, err error) Result {
	fe := failure.Remote(err)
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("kind", fe.Kind.String()),
		zap.String("code", fe.Code.String()),
		zap.String("remote_message", fe.Message),
	}
	if len(fe.Details) > 0 {
		types := make([]string, 0, len(fe.Details))
		for _, det := range fe.Details {
			types = append(types, det.Type)
		}
		fields = append(fields, zap.Strings("details", types))
	}
	d.logger.Error("remote call failed", fields...)
	return Result{Status: http.StatusInternalServerError, Message: message}
}
