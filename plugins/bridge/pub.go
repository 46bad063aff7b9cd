package bridge

import (
	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/pubsub"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/plugins/bridge/keeper"
)

const (
	Topic = pubsub.Topic("bridge")

	PegClaimType                   string = "PC"
	UnpegType                      string = "UP"
	UnpegNotCosignedClaimType      string = "UNC"
	RequestInvitationType          string = "RI"
	InvitationNotCosignedClaimType string = "INC"
)

// BridgeEvent is published for every delivered bridge msg
type BridgeEvent struct {
	TxHash  string
	Type    string
	Sender  string
	Status  string
	RefHash string // mainchain tx hash of a peg, or the tx hash a not-cosigned claim refers to

	Sequence int64
	To       string
	Amount   string

	ValidatorAddress      string
	MainchainAddress      string
	FirstCosignerAddress  string
	NotCosignedValidators []string
}

func (event BridgeEvent) GetTopic() pubsub.Topic {
	return Topic
}

func publishBridgeEvent(ctx sdk.Context, keeper keeper.Keeper, event BridgeEvent) {
	if keeper.PbsbServer == nil || !ctx.IsDeliverTx() {
		return
	}
	txHash, ok := ctx.Value(baseapp.TxHashKey).(string)
	if !ok {
		keeper.Logger(ctx).Error("failed to get txhash, will not publish bridge event", "type", event.Type)
		return
	}
	event.TxHash = txHash
	keeper.PbsbServer.Publish(event)
}
