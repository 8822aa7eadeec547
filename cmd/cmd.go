package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/config"
)

const (
	ServiceName      = "geyser-subscriber"
	ServiceNamespace = "solana-vibe-station"
)

var (
	version        = "0.0.0"
	commit         = "hash"
	commitDate     = time.Now().String()
	branch         = "branch"
	buildTimestamp = ""
)

func Run() error {
	app := &cli.App{
		Name:  ServiceName,
		Usage: "Long-lived Yellowstone gRPC slot subscription client",
		Commands: []*cli.Command{
			subscribeCmd(),
		},
	}

	return app.Run(os.Args)
}

func subscribeCmd() *cli.Command {
	return &cli.Command{
		Name:    "subscribe",
		Aliases: []string{"s"},
		Usage:   "Connect to the Geyser endpoint and stream slot updates",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			app := NewApp(cfg)

			if err := app.Start(c.Context); err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			slog.Info("Shutting down gracefully...")
			return app.Stop(context.Background())
		},
	}
}
