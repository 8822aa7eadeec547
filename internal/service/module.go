package service

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/metric"
)

// Module wires the stream components and runs the supervisor for the whole
// app lifetime. OnStop cancels the supervisor context and waits for the run
// goroutine to drain; drain latency is bounded by the send pump's poll
// interval plus in-flight teardown.
var Module = fx.Module(
	"service",

	fx.Provide(
		NewDispatcher,
		NewSession,
		func(logger *slog.Logger, dialer Dialer, session *Session, metrics *metric.Metrics) *Supervisor {
			return NewSupervisor(logger, dialer, session, metrics)
		},
	),

	fx.Invoke(func(lc fx.Lifecycle, sup *Supervisor, logger *slog.Logger) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)
					if err := sup.Run(ctx); err != nil {
						logger.Error("[SUPERVISE] terminated", slog.Any("err", err))
					}
				}()
				return nil
			},
			OnStop: func(stopCtx context.Context) error {
				cancel()
				select {
				case <-done:
					return nil
				case <-stopCtx.Done():
					return stopCtx.Err()
				}
			},
		})
	}),
)
