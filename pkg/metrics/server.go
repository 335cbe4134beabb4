package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultPort = "2112"

// Server exposes liveness, readiness and the prometheus registry.
type Server struct {
	srv    *http.Server
	ready  atomic.Bool
	logger *log.Logger
}

func NewServer(port string, gatherer prometheus.Gatherer, logger *log.Logger) *Server {
	if port == "" {
		port = DefaultPort
	}
	s := &Server{logger: logger}
	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Router(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Router(gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("alive"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if s.ready.Load() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unready"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// SetReady flips /ready once the surface has been bootstrapped.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start serves in the background. Listener errors other than a clean shutdown are logged.
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", "err", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
