package service

import (
	"log/slog"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/domain/model"
	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/metric"
)

// Dispatcher classifies and logs inbound updates. It holds no state and has
// no side effects beyond observability.
type Dispatcher struct {
	logger  *slog.Logger
	metrics *metric.Metrics
}

func NewDispatcher(logger *slog.Logger, metrics *metric.Metrics) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		metrics: metrics,
	}
}

// Handle processes one update and reports whether the session should keep
// consuming. Only KindNone halts the session: a message without any
// recognizable variant means the stream is no longer speaking the protocol
// we subscribed to. A fault inside classification is contained here and
// reported as a stop, never re-raised across the session boundary.
func (d *Dispatcher) Handle(u model.Update) (cont bool) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("[DISPATCH] classification fault", slog.Any("panic", rec))
			cont = false
		}
	}()

	d.metrics.UpdatesReceived.WithLabelValues(u.Kind.String()).Inc()

	switch u.Kind {
	case model.KindSlot:
		d.logger.Info("[UPDATE] slot",
			slog.Uint64("slot", u.Slot.Slot),
			slog.Uint64("parent", u.Slot.Parent),
			slog.String("status", u.Slot.Status),
		)
		return true

	case model.KindAccount:
		d.logger.Info("[UPDATE] account",
			slog.String("pubkey", u.Account.Pubkey),
			slog.Uint64("lamports", u.Account.Lamports),
			slog.Uint64("slot", u.Account.Slot),
		)
		return true

	case model.KindTransaction:
		d.logger.Info("[UPDATE] transaction",
			slog.String("signature", u.Transaction.Signature),
			slog.Uint64("slot", u.Transaction.Slot),
		)
		return true

	case model.KindBlock:
		d.logger.Info("[UPDATE] block",
			slog.String("blockhash", u.Block.Blockhash),
			slog.Uint64("slot", u.Block.Slot),
		)
		return true

	case model.KindPong:
		d.logger.Info("[UPDATE] pong", slog.Int("id", int(u.Pong.ID)))
		return true

	case model.KindPing:
		// Pings are intercepted by the session before dispatch; one landing
		// here is harmless.
		d.logger.Debug("[UPDATE] ping reached dispatcher")
		return true

	case model.KindUnknown:
		d.logger.Warn("[UPDATE] unrecognized variant", slog.String("raw_kind", u.RawKind))
		return true

	case model.KindNone:
		d.logger.Error("[UPDATE] message carried no variant")
		return false

	default:
		d.logger.Warn("[UPDATE] unhandled kind", slog.String("kind", u.Kind.String()))
		return true
	}
}
