package geyser

import (
	"go.uber.org/fx"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/service"
)

// Module wires the dialer into the app. Handles are dialed per attempt by
// the supervisor, so there is no long-lived connection to hook into the fx
// lifecycle here.
var Module = fx.Module(
	"geyser_client",

	fx.Provide(
		fx.Annotate(
			NewDialer,
			fx.As(new(service.Dialer)),
		),
	),
)
