// Package geyser establishes authenticated, encrypted transport handles to a
// single Yellowstone gRPC endpoint. It performs no retries of its own: dial
// and stream errors propagate to the reconnection supervisor, which is the
// retry authority.
package geyser

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/config"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/service"
)

// Keepalive parameters for the duplex channel. Probes are permitted with no
// active calls so a ping-only idle stream is not reaped by the transport's
// own idle detection.
const (
	keepaliveTime    = 30 * time.Second
	keepaliveTimeout = 10 * time.Second
)

// Dialer builds transport handles from the loaded configuration.
type Dialer struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewDialer(cfg *config.Config, logger *slog.Logger) *Dialer {
	return &Dialer{
		cfg:    cfg,
		logger: logger,
	}
}

// Dial returns a ready-to-use transport handle. It does not send the
// subscription; that is the session's first act. The caller owns the handle
// and must Close it exactly once.
func (d *Dialer) Dial() (service.TransportConn, error) {
	d.logger.Info("[CONNECT] dialing gRPC endpoint", slog.String("endpoint", d.cfg.Endpoint))

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                keepaliveTime,
			Timeout:             keepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}

	if d.cfg.Token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(tokenAuth{token: d.cfg.Token}))
	}

	conn, err := grpc.NewClient(d.cfg.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("geyser: dial %s: %w", d.cfg.Endpoint, err)
	}

	return &Client{
		conn:   conn,
		geyser: pb.NewGeyserClient(conn),
		logger: d.logger,
	}, nil
}

// Client is one open transport handle. It is handed to exactly one session
// at a time and closed by the supervisor when the session returns.
type Client struct {
	conn   *grpc.ClientConn
	geyser pb.GeyserClient
	logger *slog.Logger
	closed atomic.Bool
}

// OpenStream opens the duplex subscription exchange. Cancelling ctx aborts
// the exchange and faults any pending receive, which is what makes shutdown
// teardown bounded.
func (c *Client) OpenStream(ctx context.Context) (service.SubscribeStream, error) {
	stream, err := c.geyser.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("geyser: subscribe: %w", err)
	}
	return stream, nil
}

// Close tears the channel down. Safe to call more than once; only the first
// call reaches the transport.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.conn.Close()
}
