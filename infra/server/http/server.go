// Package http serves the ops surface of the client: prometheus metrics and
// a liveness probe. It is off the data path entirely and disabled unless an
// address is configured.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/config"
)

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

// NewServer builds the ops listener. With no configured address the server
// is inert: Start and Stop become no-ops.
func NewServer(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) *Server {
	s := &Server{logger: logger}
	if cfg.MetricsAddr == "" {
		return s
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.srv = &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: r,
	}
	return s
}

func (s *Server) Start() error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("[OPS] listening", slog.String("addr", s.srv.Addr))
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("[OPS] listener failed", slog.Any("err", err))
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Module wires the ops server into the fx lifecycle.
var Module = fx.Module(
	"ops_http",

	fx.Provide(NewServer),

	fx.Invoke(func(lc fx.Lifecycle, s *Server) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error { return s.Start() },
			OnStop:  func(ctx context.Context) error { return s.Stop(ctx) },
		})
	}),
)
