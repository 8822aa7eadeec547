package model

// UpdateKind discriminates the variants of the Geyser subscription feed.
type UpdateKind int16

const (
	// KindNone marks a message that carried no recognizable variant at all.
	// It is a first-class error condition, not an absence: receiving it ends
	// the current session.
	KindNone UpdateKind = iota
	KindSlot
	KindAccount
	KindTransaction
	KindBlock
	KindPing
	KindPong
	// KindUnknown covers variants introduced by newer server schemas. They
	// are logged and skipped so schema evolution never kills the stream.
	KindUnknown
)

func (k UpdateKind) String() string {
	switch k {
	case KindSlot:
		return "slot"
	case KindAccount:
		return "account"
	case KindTransaction:
		return "transaction"
	case KindBlock:
		return "block"
	case KindPing:
		return "ping"
	case KindPong:
		return "pong"
	case KindUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Update is the domain view of one inbound stream message. Exactly one
// payload pointer is non-nil, matching Kind; KindNone and KindUnknown carry
// no payload.
type Update struct {
	Kind UpdateKind

	Slot        *SlotUpdate
	Account     *AccountUpdate
	Transaction *TransactionUpdate
	Block       *BlockUpdate
	Ping        *PingRequest
	Pong        *PongReply

	// RawKind preserves the wire tag name for KindUnknown diagnostics.
	RawKind string
}

// SlotUpdate reports slot progression. Parent is zero for the genesis-most
// slot the server knows about.
type SlotUpdate struct {
	Slot   uint64
	Parent uint64
	Status string
}

// AccountUpdate reports a write to an account. Pubkey is base58-encoded.
type AccountUpdate struct {
	Pubkey   string
	Lamports uint64
	Slot     uint64
}

// TransactionUpdate reports a processed transaction. Signature is
// base58-encoded.
type TransactionUpdate struct {
	Signature string
	Slot      uint64
}

// BlockUpdate reports a produced block.
type BlockUpdate struct {
	Blockhash string
	Slot      uint64
}

// PingRequest is a server liveness probe. The ID must be echoed back on the
// outbound half of the stream for the server to keep the session alive.
type PingRequest struct {
	ID int32
}

// PongReply acknowledges a liveness echo this client sent earlier.
type PongReply struct {
	ID int32
}
