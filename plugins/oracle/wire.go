package oracle

import (
	"github.com/lcnem/proximax-pegzone/plugins/oracle/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

// Register concrete types on wire codec
func RegisterWire(cdc *wire.Codec) {
	cdc.RegisterConcrete(types.Claim{}, "oracle/Claim", nil)
	cdc.RegisterConcrete(types.DBProphecy{}, "oracle/DBProphecy", nil)
	cdc.RegisterConcrete(types.ProphecyParams{}, "oracle/ProphecyParams", nil)
}
