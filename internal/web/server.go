// Package web is the HTTP action surface: pages post form fields to
// /todo/{action} and get the dispatcher result back as JSON.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
)

// maxFormBytes caps a posted form body.
const maxFormBytes = 64 << 10

type Server struct {
	dispatcher *action.Dispatcher
	logger     *zap.Logger
	gatherer   prometheus.Gatherer
}

// New returns a Server. A nil gatherer leaves /metrics unmounted.
func New(d *action.Dispatcher, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{dispatcher: d, logger: logger, gatherer: gatherer}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/todo", s.handleLoad).Methods(http.MethodGet)
	r.HandleFunc("/todo/{action}", s.handleAction).Methods(http.MethodPost)
	r.HandleFunc("/hello", s.handleHello).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

// ListenAndServe serves until ctx is done, then drains for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("web listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadBody always carries items, even when the list is empty.
type loadBody struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Items   []model.Item `json:"items"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	res := s.dispatcher.Load(r.Context())
	if res.Failed() {
		writeResult(w, res)
		return
	}
	writeJSON(w, res.Status, loadBody{Success: true, Items: res.Items})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeResult(w, action.Result{Status: http.StatusBadRequest, Message: "malformed form body"})
		return
	}
	name := mux.Vars(r)["action"]
	writeResult(w, s.dispatcher.Dispatch(r.Context(), name, action.FieldsFromValues(r.PostForm)))
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.dispatcher.Hello(r.Context(), action.FieldsFromValues(r.URL.Query())))
}

func writeResult(w http.ResponseWriter, res action.Result) {
	writeJSON(w, res.Status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
