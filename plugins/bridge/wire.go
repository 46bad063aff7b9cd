package bridge

import (
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

// Register concrete types on wire codec
func RegisterWire(cdc *wire.Codec) {
	cdc.RegisterConcrete(types.MsgPegClaim{}, "bridge/MsgPegClaim", nil)
	cdc.RegisterConcrete(types.MsgUnpeg{}, "bridge/MsgUnpeg", nil)
	cdc.RegisterConcrete(types.MsgUnpegNotCosignedClaim{}, "bridge/MsgUnpegNotCosignedClaim", nil)
	cdc.RegisterConcrete(types.MsgRequestInvitation{}, "bridge/MsgRequestInvitation", nil)
	cdc.RegisterConcrete(types.MsgInvitationNotCosignedClaim{}, "bridge/MsgInvitationNotCosignedClaim", nil)
}
