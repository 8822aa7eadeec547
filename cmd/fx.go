package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/config"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/infra/client/geyser"
	opshttp "github.com/Solana-Vibe-Station/grpc-connection-examples/infra/server/http"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/metric"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/service"
)

func NewApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Provide(
			func() *config.Config { return cfg },
			ProvideLogger,
			ProvideMetrics,
			ProvideRegistry,
		),
		geyser.Module,
		opshttp.Module,
		service.Module,
	)
}

func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(
		slog.String("service", ServiceName),
	)
	slog.SetDefault(logger)
	return logger
}

func ProvideMetrics() *metric.Metrics {
	return metric.NewMetrics()
}

func ProvideRegistry(m *metric.Metrics) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := m.Register(reg); err != nil {
		return nil, fmt.Errorf("cmd: register collectors: %w", err)
	}
	return reg, nil
}
