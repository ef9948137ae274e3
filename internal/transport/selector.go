package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"

	"github.com/idilsaglam/todo/internal/failure"
	"github.com/idilsaglam/todo/internal/wire"
)

// Handle is the long-lived client binding for one execution context.
// Nothing on it changes after construction.
type Handle struct {
	ec       ExecutionContext
	encoding Encoding
	baseURL  string
	todo     *wire.ToDoServiceClient
	greeter  *wire.GreeterClient
}

func (h *Handle) ToDo() *wire.ToDoServiceClient { return h.todo }
func (h *Handle) Greeter() *wire.GreeterClient  { return h.greeter }
func (h *Handle) Context() ExecutionContext     { return h.ec }
func (h *Handle) Encoding() Encoding            { return h.encoding }
func (h *Handle) BaseAddress() string           { return h.baseURL }

// Protocol is the Connect protocol name the handle speaks.
func (h *Handle) Protocol() string {
	if h.ec == Browser {
		return connect.ProtocolConnect
	}
	return connect.ProtocolGRPC
}

// Selector hands out one Handle per execution context.
type Selector struct {
	mu      sync.Mutex
	handles map[ExecutionContext]*Handle
}

func NewSelector() *Selector {
	return &Selector{handles: make(map[ExecutionContext]*Handle)}
}

var defaultSelector = NewSelector()

// Bind uses the process-wide selector.
func Bind(cfg Config, ec ExecutionContext) (*Handle, error) {
	return defaultSelector.Bind(cfg, ec)
}

// Bind returns the handle for ec, building it from cfg on first use. Later
// calls for the same ec return that handle and ignore cfg. Construction
// failures are *failure.Error of KindTransportConstruction and are not cached.
func (s *Selector) Bind(cfg Config, ec ExecutionContext) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handles[ec]; ok {
		return h, nil
	}
	h, err := build(cfg, ec)
	if err != nil {
		return nil, failure.Construction(err)
	}
	s.handles[ec] = h
	return h, nil
}

func build(cfg Config, ec ExecutionContext) (*Handle, error) {
	u, err := url.Parse(cfg.BaseAddress)
	if err != nil {
		return nil, fmt.Errorf("base address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base address %q: scheme must be http or https", cfg.BaseAddress)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base address %q: missing host", cfg.BaseAddress)
	}
	if ec != Server && ec != Browser {
		return nil, fmt.Errorf("execution context %d", ec)
	}

	opts := []connect.ClientOption{}
	if cfg.Encoding == Text {
		opts = append(opts, connect.WithCodec(wire.JSONCodec{}))
	}
	if len(cfg.Interceptors) > 0 {
		opts = append(opts, connect.WithInterceptors(cfg.Interceptors...))
	}

	var hc *http.Client
	switch ec {
	case Browser:
		hc = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	case Server:
		opts = append(opts, connect.WithGRPC())
		hc = &http.Client{Transport: http2Transport(u.Scheme == "http")}
	}

	base := u.String()
	return &Handle{
		ec:       ec,
		encoding: cfg.Encoding,
		baseURL:  base,
		todo:     wire.NewToDoServiceClient(hc, base, opts...),
		greeter:  wire.NewGreeterClient(hc, base, opts...),
	}, nil
}

// http2Transport speaks HTTP/2 with prior knowledge when cleartext, which is
// what a gRPC server behind h2c expects.
func http2Transport(cleartext bool) *http2.Transport {
	if !cleartext {
		return &http2.Transport{}
	}
	return &http2.Transport{
		AllowHTTP: true,
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, addr)
		},
	}
}
