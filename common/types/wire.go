package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/wire"
)

func RegisterWire(cdc *wire.Codec) {
	cdc.RegisterInterface((*sdk.Account)(nil), nil)
	cdc.RegisterConcrete(&AppAccount{}, "pegzone/Account", nil)
}
