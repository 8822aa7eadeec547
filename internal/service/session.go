package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"golang.org/x/sync/errgroup"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/domain/model"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/metric"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/service/mapper"
)

// slotFilterKey names the slot filter inside the subscribe request. The
// server echoes it back in the filters list of matching updates.
const slotFilterKey = "client"

// pingPollInterval bounds how long the send pump waits for a pending ping
// echo before re-checking shutdown. It is the upper bound on send-side
// shutdown latency.
const pingPollInterval = time.Second

// ErrUnknownUpdate reports that the server sent a message without any
// recognizable variant. The session ends on it; the supervisor treats it
// like a clean disconnect and reconnects.
var ErrUnknownUpdate = errors.New("service: update carried no recognizable variant")

// SubscribeStream is the duplex exchange of one subscription. It is
// satisfied by pb.Geyser_SubscribeClient.
type SubscribeStream interface {
	Send(*pb.SubscribeRequest) error
	Recv() (*pb.SubscribeUpdate, error)
	CloseSend() error
}

// StreamOpener opens one subscription exchange over an established
// transport. Cancelling the given context aborts the exchange, which is what
// unblocks a pending Recv during teardown.
type StreamOpener interface {
	OpenStream(ctx context.Context) (SubscribeStream, error)
}

// Session owns one subscribe/receive cycle: it sends the initial
// subscription, pumps both halves of the duplex exchange concurrently, and
// classifies termination. Transport handle lifetime belongs to the caller.
type Session struct {
	logger     *slog.Logger
	dispatcher *Dispatcher
	metrics    *metric.Metrics
}

func NewSession(logger *slog.Logger, dispatcher *Dispatcher, metrics *metric.Metrics) *Session {
	return &Session{
		logger:     logger,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// Run drives one subscription to completion. It returns nil when the server
// closed the stream gracefully or shutdown was requested, ErrUnknownUpdate
// when the dispatcher halted consumption, and the transport error otherwise.
// It never returns before both pumps have exited.
func (s *Session) Run(ctx context.Context, opener StreamOpener) error {
	// Session-scoped cancellation: whichever pump exits first aborts the
	// RPC, which unblocks the other pump.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := s.logger.With(slog.String("session_id", uuid.NewString()))

	stream, err := opener.OpenStream(ctx)
	if err != nil {
		return fmt.Errorf("session: open stream: %w", err)
	}

	relay := NewPingRelay()

	s.metrics.StreamUp.Set(1)
	defer s.metrics.StreamUp.Set(0)

	g := new(errgroup.Group)
	g.Go(func() error {
		defer cancel()
		return s.recvLoop(ctx, l, stream, relay)
	})
	g.Go(func() error {
		defer cancel()
		return s.sendLoop(ctx, l, stream, relay)
	})

	err = g.Wait()
	l.Info("[STREAM] closed")
	return err
}

// sendLoop emits the subscription request first, then serves queued ping
// echoes. Its only blocking point is the timed relay dequeue, so it observes
// shutdown within pingPollInterval even on a silent stream.
func (s *Session) sendLoop(ctx context.Context, l *slog.Logger, stream SubscribeStream, relay *PingRelay) error {
	if err := stream.Send(newSubscribeRequest()); err != nil {
		return fmt.Errorf("session: send subscribe request: %w", err)
	}
	l.Info("[STREAM] subscribed to slot updates, waiting for messages")

	for {
		if ctx.Err() != nil {
			// End of the send half; the server sees a half-close rather
			// than an abort when we shut down first.
			_ = stream.CloseSend()
			return nil
		}

		id, ok := relay.Dequeue(ctx, pingPollInterval)
		if !ok {
			continue
		}

		echo := &pb.SubscribeRequest{Ping: &pb.SubscribeRequestPing{Id: id}}
		if err := stream.Send(echo); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("session: send ping echo: %w", err)
		}
		s.metrics.PingsAnswered.Inc()
		l.Debug("[STREAM] ping echo sent", slog.Int("id", int(id)))
	}
}

// recvLoop consumes inbound updates until the stream ends, shutdown is
// observed, or the dispatcher halts consumption. Ping requests go to the
// relay and are never dispatched.
func (s *Session) recvLoop(ctx context.Context, l *slog.Logger, stream SubscribeStream, relay *PingRelay) error {
	for {
		u, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.Info("[STREAM] server closed the stream")
				return nil
			}
			if ctx.Err() != nil {
				// Shutdown (or the send pump failing first) aborted the
				// RPC; the resulting error is not a failure of this
				// session.
				l.Debug("[STREAM] receive aborted", slog.Any("err", err))
				return nil
			}
			return fmt.Errorf("session: recv: %w", err)
		}

		if ctx.Err() != nil {
			return nil
		}

		upd := mapper.FromSubscribeUpdate(u)
		if upd.Kind == model.KindPing {
			relay.Enqueue(upd.Ping.ID)
			l.Info("[STREAM] ping received, echo queued", slog.Int("id", int(upd.Ping.ID)))
			continue
		}

		if !s.dispatcher.Handle(upd) {
			return ErrUnknownUpdate
		}
	}
}

// newSubscribeRequest declares interest in slot updates at confirmed
// commitment, filtered by commitment level.
func newSubscribeRequest() *pb.SubscribeRequest {
	commitment := pb.CommitmentLevel_CONFIRMED
	filterByCommitment := true
	interslotUpdates := false

	return &pb.SubscribeRequest{
		Commitment: &commitment,
		Slots: map[string]*pb.SubscribeRequestFilterSlots{
			slotFilterKey: {
				FilterByCommitment: &filterByCommitment,
				InterslotUpdates:   &interslotUpdates,
			},
		},
	}
}
