package mapper

import (
	"fmt"

	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/domain/model"
)

// DefaultPingID is the echo id used for server liveness probes. The
// Yellowstone wire ping carries no id of its own; the server only checks
// that some ping came back, so a fixed id is sufficient.
const DefaultPingID int32 = 1

// FromSubscribeUpdate maps one wire message onto the domain update union.
// The mapping is exhaustive: a message without any recognizable variant
// becomes KindNone, and variants this client does not consume (block meta,
// entries, future schema additions) become KindUnknown.
func FromSubscribeUpdate(u *pb.SubscribeUpdate) model.Update {
	if u == nil {
		return model.Update{Kind: model.KindNone}
	}

	switch upd := u.GetUpdateOneof().(type) {
	case *pb.SubscribeUpdate_Slot:
		return model.Update{
			Kind: model.KindSlot,
			Slot: &model.SlotUpdate{
				Slot:   upd.Slot.GetSlot(),
				Parent: upd.Slot.GetParent(),
				Status: upd.Slot.GetStatus().String(),
			},
		}

	case *pb.SubscribeUpdate_Account:
		acc := upd.Account.GetAccount()
		if acc == nil {
			// An account envelope without account info carries nothing we
			// can log; treat it like a foreign variant rather than a
			// session-ending condition.
			return model.Update{Kind: model.KindUnknown, RawKind: "account(empty)"}
		}
		return model.Update{
			Kind: model.KindAccount,
			Account: &model.AccountUpdate{
				Pubkey:   base58.Encode(acc.GetPubkey()),
				Lamports: acc.GetLamports(),
				Slot:     upd.Account.GetSlot(),
			},
		}

	case *pb.SubscribeUpdate_Transaction:
		tx := upd.Transaction.GetTransaction()
		if tx == nil {
			return model.Update{Kind: model.KindUnknown, RawKind: "transaction(empty)"}
		}
		return model.Update{
			Kind: model.KindTransaction,
			Transaction: &model.TransactionUpdate{
				Signature: base58.Encode(tx.GetSignature()),
				Slot:      upd.Transaction.GetSlot(),
			},
		}

	case *pb.SubscribeUpdate_Block:
		return model.Update{
			Kind: model.KindBlock,
			Block: &model.BlockUpdate{
				Blockhash: upd.Block.GetBlockhash(),
				Slot:      upd.Block.GetSlot(),
			},
		}

	case *pb.SubscribeUpdate_Ping:
		return model.Update{
			Kind: model.KindPing,
			Ping: &model.PingRequest{ID: DefaultPingID},
		}

	case *pb.SubscribeUpdate_Pong:
		return model.Update{
			Kind: model.KindPong,
			Pong: &model.PongReply{ID: upd.Pong.GetId()},
		}

	case nil:
		return model.Update{Kind: model.KindNone}

	default:
		return model.Update{Kind: model.KindUnknown, RawKind: fmt.Sprintf("%T", upd)}
	}
}
