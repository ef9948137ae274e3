// Package transport binds the logical ToDoService and Greeter clients to one
// concrete Connect transport per execution context.
//
// A browser context speaks the Connect protocol over a plain HTTP client; a
// server context speaks gRPC over HTTP/2 (h2c for http:// addresses). The
// choice is made once, at the first Bind for that context, and the resulting
// Handle lives for the rest of the process.
package transport

import (
	"fmt"
	"strings"

	"connectrpc.com/connect"
)

// ExecutionContext says where the calling code runs.
type ExecutionContext int

const (
	Server ExecutionContext = iota
	Browser
)

func (c ExecutionContext) String() string {
	if c == Browser {
		return "browser"
	}
	return "server"
}

// ParseExecutionContext accepts "server" or "browser".
func ParseExecutionContext(s string) (ExecutionContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "server", "ssr":
		return Server, nil
	case "browser", "client", "web":
		return Browser, nil
	}
	return Server, fmt.Errorf("unknown execution context %q", s)
}

// Encoding selects the message framing.
type Encoding int

const (
	Binary Encoding = iota
	Text
)

func (e Encoding) String() string {
	if e == Text {
		return "text"
	}
	return "binary"
}

// ParseEncoding accepts "binary"/"proto" or "text"/"json".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "binary", "proto":
		return Binary, nil
	case "text", "json":
		return Text, nil
	}
	return Binary, fmt.Errorf("unknown encoding %q", s)
}

// Config is fixed at Bind time. Interceptors run in slice order.
type Config struct {
	BaseAddress  string
	Encoding     Encoding
	Interceptors []connect.Interceptor
}
