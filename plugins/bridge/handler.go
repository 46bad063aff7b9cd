package bridge

import (
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
)

func NewHandler(keeper Keeper) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		switch msg := msg.(type) {
		case types.MsgPegClaim:
			return handlePegClaimMsg(ctx, keeper, msg)
		case types.MsgUnpeg:
			return handleUnpegMsg(ctx, keeper, msg)
		case types.MsgUnpegNotCosignedClaim:
			return handleUnpegNotCosignedClaimMsg(ctx, keeper, msg)
		case types.MsgRequestInvitation:
			return handleRequestInvitationMsg(ctx, keeper, msg)
		case types.MsgInvitationNotCosignedClaim:
			return handleInvitationNotCosignedClaimMsg(ctx, keeper, msg)
		default:
			errMsg := fmt.Sprintf("Unrecognized bridge msg type: %T", msg)
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handlePegClaimMsg(ctx sdk.Context, keeper Keeper, msg types.MsgPegClaim) sdk.Result {
	status, err := keeper.ProcessPegClaim(ctx, msg)
	if err != nil {
		return err.Result()
	}

	tags := sdk.NewTags(
		types.TagAction, []byte(msg.Type()),
		types.TagSender, []byte(msg.Address.String()),
		types.TagMainchainTxHash, []byte(msg.MainchainTxHash),
		types.TagToAddress, []byte(msg.ToAddress.String()),
		types.TagAmount, []byte(types.CoinsTag(msg.Amount)),
		types.TagStatus, []byte(status.Text.String()),
	)
	publishBridgeEvent(ctx, keeper, BridgeEvent{
		Type:    PegClaimType,
		Sender:  msg.Address.String(),
		Status:  status.Text.String(),
		RefHash: msg.MainchainTxHash,
		To:      msg.ToAddress.String(),
		Amount:  msg.Amount.String(),
	})
	return sdk.Result{Tags: tags}
}

func handleUnpegMsg(ctx sdk.Context, keeper Keeper, msg types.MsgUnpeg) sdk.Result {
	record, err := keeper.ProcessUnpeg(ctx, msg)
	if err != nil {
		return err.Result()
	}

	tags := sdk.NewTags(
		types.TagAction, []byte(msg.Type()),
		types.TagSender, []byte(msg.Address.String()),
		types.TagSequence, []byte(strconv.FormatInt(record.Sequence, 10)),
		types.TagMainchainAddress, []byte(msg.MainchainAddress),
		types.TagAmount, []byte(types.CoinsTag(msg.Amount)),
		types.TagFirstCosignerAddress, []byte(msg.FirstCosignerAddress.String()),
	)
	publishBridgeEvent(ctx, keeper, BridgeEvent{
		Type:                 UnpegType,
		Sender:               msg.Address.String(),
		Sequence:             record.Sequence,
		MainchainAddress:     msg.MainchainAddress,
		Amount:               msg.Amount.String(),
		FirstCosignerAddress: msg.FirstCosignerAddress.String(),
	})
	return sdk.Result{Tags: tags}
}

func handleUnpegNotCosignedClaimMsg(ctx sdk.Context, keeper Keeper, msg types.MsgUnpegNotCosignedClaim) sdk.Result {
	status, err := keeper.ProcessUnpegNotCosignedClaim(ctx, msg)
	if err != nil {
		return err.Result()
	}

	validators := make([]string, 0, len(msg.NotCosignedValidators))
	for _, validator := range msg.NotCosignedValidators {
		validators = append(validators, validator.String())
	}
	tags := sdk.NewTags(
		types.TagAction, []byte(msg.Type()),
		types.TagSender, []byte(msg.Address.String()),
		types.TagTxHash, []byte(msg.TxHash),
		types.TagNotCosignedValidators, []byte(strings.Join(validators, ",")),
		types.TagStatus, []byte(status.Text.String()),
	)
	publishBridgeEvent(ctx, keeper, BridgeEvent{
		Type:                  UnpegNotCosignedClaimType,
		Sender:                msg.Address.String(),
		Status:                status.Text.String(),
		RefHash:               msg.TxHash,
		NotCosignedValidators: validators,
	})
	return sdk.Result{Tags: tags}
}

func handleRequestInvitationMsg(ctx sdk.Context, keeper Keeper, msg types.MsgRequestInvitation) sdk.Result {
	invitation, err := keeper.ProcessRequestInvitation(ctx, msg)
	if err != nil {
		return err.Result()
	}

	tags := sdk.NewTags(
		types.TagAction, []byte(msg.Type()),
		types.TagSender, []byte(msg.Address.String()),
		types.TagValidatorAddress, []byte(invitation.ValidatorAddress.String()),
		types.TagMainchainAddress, []byte(invitation.MainchainAddress),
		types.TagFirstCosignerAddress, []byte(invitation.FirstCosignerAddress.String()),
	)
	publishBridgeEvent(ctx, keeper, BridgeEvent{
		Type:                 RequestInvitationType,
		Sender:               msg.Address.String(),
		ValidatorAddress:     invitation.ValidatorAddress.String(),
		MainchainAddress:     invitation.MainchainAddress,
		FirstCosignerAddress: invitation.FirstCosignerAddress.String(),
	})
	return sdk.Result{Tags: tags}
}

func handleInvitationNotCosignedClaimMsg(ctx sdk.Context, keeper Keeper, msg types.MsgInvitationNotCosignedClaim) sdk.Result {
	status, err := keeper.ProcessInvitationNotCosignedClaim(ctx, msg)
	if err != nil {
		return err.Result()
	}

	tags := sdk.NewTags(
		types.TagAction, []byte(msg.Type()),
		types.TagSender, []byte(msg.Address.String()),
		types.TagTxHash, []byte(msg.TxHash),
		types.TagValidatorAddress, []byte(msg.ValidatorAddress.String()),
		types.TagMainchainAddress, []byte(msg.MainchainAddress),
		types.TagFirstCosignerAddress, []byte(msg.FirstCosignerAddress.String()),
		types.TagStatus, []byte(status.Text.String()),
	)
	publishBridgeEvent(ctx, keeper, BridgeEvent{
		Type:                 InvitationNotCosignedClaimType,
		Sender:               msg.Address.String(),
		Status:               status.Text.String(),
		RefHash:              msg.TxHash,
		ValidatorAddress:     msg.ValidatorAddress.String(),
		MainchainAddress:     msg.MainchainAddress,
		FirstCosignerAddress: msg.FirstCosignerAddress.String(),
	})
	return sdk.Result{Tags: tags}
}
