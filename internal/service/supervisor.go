package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/metric"
)

// ErrStreamClosed is the synthetic failure raised after a graceful
// server-side close so the retry loop keeps going instead of exiting.
var ErrStreamClosed = errors.New("service: stream closed by server, reconnecting")

// defaultCleanCloseDelay is the fixed pause applied before reconnecting
// after a graceful close.
const defaultCleanCloseDelay = time.Second

// TransportConn is an established transport handle plus the ability to open
// a subscription over it. Close must be safe to call exactly once per
// successful dial, on every outcome.
type TransportConn interface {
	StreamOpener
	Close() error
}

// Dialer establishes a fresh transport handle. Dial errors are not retried
// here; the supervisor is the retry authority.
type Dialer interface {
	Dial() (TransportConn, error)
}

// Supervisor wraps dial + session in an unbounded exponential-backoff retry
// loop. It is the only component that interprets shutdown: once the context
// is cancelled, every error and cancellation below it is suppressed.
type Supervisor struct {
	logger  *slog.Logger
	dialer  Dialer
	session *Session
	metrics *metric.Metrics

	newBackOff      func() backoff.BackOff
	cleanCloseDelay time.Duration
}

// SupervisorOption adjusts retry pacing, mainly for tests.
type SupervisorOption func(*Supervisor)

// WithBackOff replaces the backoff factory. The factory is invoked once per
// Run call, so one exponential sequence spans every reconnect within a run.
func WithBackOff(factory func() backoff.BackOff) SupervisorOption {
	return func(s *Supervisor) { s.newBackOff = factory }
}

// WithCleanCloseDelay replaces the fixed pause taken after a graceful
// server-side close.
func WithCleanCloseDelay(d time.Duration) SupervisorOption {
	return func(s *Supervisor) { s.cleanCloseDelay = d }
}

func NewSupervisor(logger *slog.Logger, dialer Dialer, session *Session, metrics *metric.Metrics, opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		logger:          logger,
		dialer:          dialer,
		session:         session,
		metrics:         metrics,
		newBackOff:      defaultBackOff,
		cleanCloseDelay: defaultCleanCloseDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultBackOff grows without an attempt or elapsed-time bound. The
// randomization factor is zeroed so consecutive delays are monotonically
// non-decreasing; MaxInterval still caps a single delay.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.RandomizationFactor = 0
	return b
}

// Run retries connect-and-subscribe forever, until shutdown. It returns nil
// on shutdown; it does not return otherwise.
func (s *Supervisor) Run(ctx context.Context) error {
	var attempt int

	operation := func() error {
		if ctx.Err() != nil {
			return nil
		}
		return s.attempt(ctx)
	}

	notify := func(err error, delay time.Duration) {
		attempt++
		s.metrics.Reconnects.Inc()
		s.logger.Warn("[SUPERVISE] connection failed, will retry",
			slog.Duration("delay", delay),
			slog.Int("attempt", attempt),
			slog.Any("err", err),
		)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(s.newBackOff(), ctx), notify)
	if ctx.Err() != nil {
		// Shutdown in progress: whatever surfaced from the last attempt is
		// teardown noise, not a failure.
		return nil
	}
	return err
}

// attempt runs one connect-and-subscribe cycle. The transport handle is
// closed on every exit path, exactly once.
func (s *Supervisor) attempt(ctx context.Context) error {
	conn, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("supervisor: dial: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Debug("[SUPERVISE] transport close failed", slog.Any("err", cerr))
		}
	}()

	err = s.session.Run(ctx, conn)
	switch {
	case ctx.Err() != nil:
		return nil
	case err != nil && !errors.Is(err, ErrUnknownUpdate):
		return err
	}

	// Graceful close, or the dispatcher halted the session. Either way the
	// loop must not exit: take a brief fixed pause, then raise a synthetic
	// failure to drive the next backoff iteration.
	s.logger.Warn("[SUPERVISE] stream ended, reconnecting", slog.Any("reason", err))
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(s.cleanCloseDelay):
	}
	return ErrStreamClosed
}
