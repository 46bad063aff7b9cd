package bridge

import (
	"github.com/lcnem/proximax-pegzone/plugins/bridge/keeper"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
)

var (
	NewKeeper = keeper.NewKeeper

	NewMsgPegClaim                   = types.NewMsgPegClaim
	NewMsgUnpeg                      = types.NewMsgUnpeg
	NewMsgUnpegNotCosignedClaim      = types.NewMsgUnpegNotCosignedClaim
	NewMsgRequestInvitation          = types.NewMsgRequestInvitation
	NewMsgInvitationNotCosignedClaim = types.NewMsgInvitationNotCosignedClaim
	NewInvitationNotCosignedClaim    = types.NewInvitationNotCosignedClaim
	DefaultGenesisState              = types.DefaultGenesisState
)

type (
	Keeper = keeper.Keeper

	MsgPegClaim                   = types.MsgPegClaim
	MsgUnpeg                      = types.MsgUnpeg
	MsgUnpegNotCosignedClaim      = types.MsgUnpegNotCosignedClaim
	MsgRequestInvitation          = types.MsgRequestInvitation
	MsgInvitationNotCosignedClaim = types.MsgInvitationNotCosignedClaim

	PegClaim                   = types.PegClaim
	UnpegNotCosignedClaim      = types.UnpegNotCosignedClaim
	InvitationNotCosignedClaim = types.InvitationNotCosignedClaim

	UnpegRecord      = types.UnpegRecord
	Invitation       = types.Invitation
	ValidatorStrikes = types.ValidatorStrikes
	GenesisState     = types.GenesisState
)

const (
	RouteBridge      = types.RouteBridge
	DefaultCodespace = types.DefaultCodespace
)
