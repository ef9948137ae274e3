// Package failure is the closed set of failure kinds the adapter reports.
package failure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: client input was rejected before any remote call.
	KindValidation
	// KindRemoteCall: the remote call completed with a non-OK code.
	KindRemoteCall
	// KindTransportConstruction: the client could not be bound at startup.
	KindTransportConstruction
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemoteCall:
		return "remote_call"
	case KindTransportConstruction:
		return "transport_construction"
	}
	return "unknown"
}

// HTTPStatus is the status a page renders for the kind.
func (k Kind) HTTPStatus() int {
	if k == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Detail is one structured error detail attached by the remote side.
type Detail struct {
	Type  string
	Value []byte
}

// Error is the single failure value passed between layers.
type Error struct {
	Kind    Kind
	Field   string       // set for KindValidation
	Code    connect.Code // set for KindRemoteCall
	Message string
	Details []Detail
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	case KindRemoteCall:
		return fmt.Sprintf("remote call failed: %s: %s", e.Code, e.Message)
	case KindTransportConstruction:
		return "transport construction failed: " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports bad client input for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Construction reports that a transport could not be bound.
func Construction(err error) *Error {
	return &Error{Kind: KindTransportConstruction, Message: err.Error(), Err: err}
}

// Remote classifies an error returned by a Connect client. Bare context
// errors map to canceled and deadline_exceeded, anything else unknown.
func Remote(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == KindRemoteCall {
		return fe
	}
	out := &Error{Kind: KindRemoteCall, Code: connect.CodeUnknown, Message: err.Error(), Err: err}
	var ce *connect.Error
	switch {
	case errors.As(err, &ce):
		out.Code = ce.Code()
		out.Message = ce.Message()
		for _, d := range ce.Details() {
			out.Details = append(out.Details, Detail{Type: d.Type(), Value: d.Bytes()})
		}
	case errors.Is(err, context.Canceled):
		out.Code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		out.Code = connect.CodeDeadlineExceeded
	}
	return out
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
