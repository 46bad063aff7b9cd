package oracle

import (
	app "github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle/keeper"
)

// InitPlugin initializes the oracle plugin. Oracle claims arrive through
// the bridge msgs, so only the abci query handler is registered here.
func InitPlugin(appp app.ChainApp, k keeper.Keeper) {
	appp.RegisterQueryHandler(AbciQueryPrefix, createAbciQueryHandler(k))
}
