package mapper

import (
	"testing"

	"github.com/mr-tron/base58"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/Solana-Vibe-Station/grpc-connection-examples/internal/domain/model"
)

func TestFromSubscribeUpdate_Slot(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Slot{
			Slot: &pb.SubscribeUpdateSlot{
				Slot:   100,
				Parent: proto.Uint64(99),
				Status: pb.SlotStatus_SLOT_CONFIRMED,
			},
		},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindSlot, got.Kind)
	require.NotNil(t, got.Slot)
	assert.Equal(t, uint64(100), got.Slot.Slot)
	assert.Equal(t, uint64(99), got.Slot.Parent)
	assert.NotEmpty(t, got.Slot.Status)
}

func TestFromSubscribeUpdate_SlotWithoutParent(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Slot{
			Slot: &pb.SubscribeUpdateSlot{Slot: 1},
		},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindSlot, got.Kind)
	assert.Zero(t, got.Slot.Parent)
}

func TestFromSubscribeUpdate_Account(t *testing.T) {
	pubkey := []byte{1, 2, 3, 4}
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Account{
			Account: &pb.SubscribeUpdateAccount{
				Slot: 42,
				Account: &pb.SubscribeUpdateAccountInfo{
					Pubkey:   pubkey,
					Lamports: 1_000_000,
				},
			},
		},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindAccount, got.Kind)
	require.NotNil(t, got.Account)
	assert.Equal(t, base58.Encode(pubkey), got.Account.Pubkey)
	assert.Equal(t, uint64(1_000_000), got.Account.Lamports)
	assert.Equal(t, uint64(42), got.Account.Slot)
}

func TestFromSubscribeUpdate_AccountWithoutInfo(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Account{
			Account: &pb.SubscribeUpdateAccount{Slot: 42},
		},
	}

	got := FromSubscribeUpdate(u)
	assert.Equal(t, model.KindUnknown, got.Kind)
}

func TestFromSubscribeUpdate_Transaction(t *testing.T) {
	sig := []byte{9, 8, 7}
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Transaction{
			Transaction: &pb.SubscribeUpdateTransaction{
				Slot: 7,
				Transaction: &pb.SubscribeUpdateTransactionInfo{
					Signature: sig,
				},
			},
		},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindTransaction, got.Kind)
	assert.Equal(t, base58.Encode(sig), got.Transaction.Signature)
	assert.Equal(t, uint64(7), got.Transaction.Slot)
}

func TestFromSubscribeUpdate_Block(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Block{
			Block: &pb.SubscribeUpdateBlock{
				Slot:      9,
				Blockhash: "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
			},
		},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindBlock, got.Kind)
	assert.Equal(t, uint64(9), got.Block.Slot)
	assert.NotEmpty(t, got.Block.Blockhash)
}

func TestFromSubscribeUpdate_PingGetsEchoID(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Ping{Ping: &pb.SubscribeUpdatePing{}},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindPing, got.Kind)
	require.NotNil(t, got.Ping)
	assert.Equal(t, DefaultPingID, got.Ping.ID)
}

func TestFromSubscribeUpdate_Pong(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_Pong{Pong: &pb.SubscribeUpdatePong{Id: 7}},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindPong, got.Kind)
	assert.Equal(t, int32(7), got.Pong.ID)
}

func TestFromSubscribeUpdate_NoVariantIsNone(t *testing.T) {
	got := FromSubscribeUpdate(&pb.SubscribeUpdate{})
	assert.Equal(t, model.KindNone, got.Kind)

	got = FromSubscribeUpdate(nil)
	assert.Equal(t, model.KindNone, got.Kind)
}

func TestFromSubscribeUpdate_ForeignVariantIsUnknown(t *testing.T) {
	u := &pb.SubscribeUpdate{
		UpdateOneof: &pb.SubscribeUpdate_BlockMeta{BlockMeta: &pb.SubscribeUpdateBlockMeta{Slot: 3}},
	}

	got := FromSubscribeUpdate(u)
	require.Equal(t, model.KindUnknown, got.Kind)
	assert.NotEmpty(t, got.RawKind)
}
