package wire

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	ToDoServiceName = "greeter.ToDoService"
	GreeterName     = "greeter.Greeter"
)

const (
	ToDoServiceGetAllProcedure       = "/greeter.ToDoService/GetAll"
	ToDoServiceCreateProcedure       = "/greeter.ToDoService/Create"
	ToDoServiceDeleteProcedure       = "/greeter.ToDoService/Delete"
	ToDoServiceUpdateStatusProcedure = "/greeter.ToDoService/UpdateStatus"
	GreeterSayHelloProcedure         = "/greeter.Greeter/SayHello"
)

// codecOptions come first so callers can still pick the JSON codec.
func codecOptions() []connect.Option {
	return []connect.Option{connect.WithCodec(ProtoCodec{}), connect.WithCodec(JSONCodec{})}
}

// ToDoServiceClient calls greeter.ToDoService.
type ToDoServiceClient struct {
	getAll       *connect.Client[Empty, GetAllResponse]
	create       *connect.Client[CreateRequest, CreateResponse]
	delete       *connect.Client[DeleteRequest, Empty]
	updateStatus *connect.Client[UpdateStatusRequest, Empty]
}

// NewToDoServiceClient builds a client for the service at baseURL
// (e.g. http://localhost:50051). Requests use the protobuf codec unless
// opts select another one.
func NewToDoServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ToDoServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(ProtoCodec{})}, opts...)
	return &ToDoServiceClient{
		getAll:       connect.NewClient[Empty, GetAllResponse](httpClient, baseURL+ToDoServiceGetAllProcedure, opts...),
		create:       connect.NewClient[CreateRequest, CreateResponse](httpClient, baseURL+ToDoServiceCreateProcedure, opts...),
		delete:       connect.NewClient[DeleteRequest, Empty](httpClient, baseURL+ToDoServiceDeleteProcedure, opts...),
		updateStatus: connect.NewClient[UpdateStatusRequest, Empty](httpClient, baseURL+ToDoServiceUpdateStatusProcedure, opts...),
	}
}

func (c *ToDoServiceClient) GetAll(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[GetAllResponse], error) {
	return c.getAll.CallUnary(ctx, req)
}

func (c *ToDoServiceClient) Create(ctx context.Context, req *connect.Request[CreateRequest]) (*connect.Response[CreateResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *ToDoServiceClient) Delete(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[Empty], error) {
	return c.delete.CallUnary(ctx, req)
}

func (c *ToDoServiceClient) UpdateStatus(ctx context.Context, req *connect.Request[UpdateStatusRequest]) (*connect.Response[Empty], error) {
	return c.updateStatus.CallUnary(ctx, req)
}

// GreeterClient calls the legacy greeter.Greeter service.
type GreeterClient struct {
	sayHello *connect.Client[HelloRequest, HelloReply]
}

func NewGreeterClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GreeterClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(ProtoCodec{})}, opts...)
	return &GreeterClient{
		sayHello: connect.NewClient[HelloRequest, HelloReply](httpClient, baseURL+GreeterSayHelloProcedure, opts...),
	}
}

func (c *GreeterClient) SayHello(ctx context.Context, req *connect.Request[HelloRequest]) (*connect.Response[HelloReply], error) {
	return c.sayHello.CallUnary(ctx, req)
}

// ToDoServiceHandler is the server side of greeter.ToDoService.
type ToDoServiceHandler interface {
	GetAll(context.Context, *connect.Request[Empty]) (*connect.Response[GetAllResponse], error)
	Create(context.Context, *connect.Request[CreateRequest]) (*connect.Response[CreateResponse], error)
	Delete(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[Empty], error)
	UpdateStatus(context.Context, *connect.Request[UpdateStatusRequest]) (*connect.Response[Empty], error)
}

// NewToDoServiceHandler returns the mount path and handler. It serves the
// Connect, gRPC and gRPC-Web protocols in both encodings.
func NewToDoServiceHandler(svc ToDoServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodecs(opts)
	getAll := connect.NewUnaryHandler(ToDoServiceGetAllProcedure, svc.GetAll, opts...)
	create := connect.NewUnaryHandler(ToDoServiceCreateProcedure, svc.Create, opts...)
	del := connect.NewUnaryHandler(ToDoServiceDeleteProcedure, svc.Delete, opts...)
	updateStatus := connect.NewUnaryHandler(ToDoServiceUpdateStatusProcedure, svc.UpdateStatus, opts...)
	return "/" + ToDoServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ToDoServiceGetAllProcedure:
			getAll.ServeHTTP(w, r)
		case ToDoServiceCreateProcedure:
			create.ServeHTTP(w, r)
		case ToDoServiceDeleteProcedure:
			del.ServeHTTP(w, r)
		case ToDoServiceUpdateStatusProcedure:
			updateStatus.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GreeterHandler is the server side of greeter.Greeter.
type GreeterHandler interface {
	SayHello(context.Context, *connect.Request[HelloRequest]) (*connect.Response[HelloReply], error)
}

func NewGreeterHandler(svc GreeterHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withHandlerCodecs(opts)
	sayHello := connect.NewUnaryHandler(GreeterSayHelloProcedure, svc.SayHello, opts...)
	return "/" + GreeterName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != GreeterSayHelloProcedure {
			http.NotFound(w, r)
			return
		}
		sayHello.ServeHTTP(w, r)
	})
}

func withHandlerCodecs(opts []connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+2)
	for _, o := range codecOptions() {
		out = append(out, o)
	}
	return append(out, opts...)
}
