package bridge

import (
	app "github.com/lcnem/proximax-pegzone/common/types"
)

const AbciQueryPrefix = "bridge"

// InitPlugin initializes the plugin.
func InitPlugin(appp app.ChainApp, keeper Keeper) {
	// add msg handlers
	for route, handler := range Routes(keeper) {
		appp.GetRouter().AddRoute(route, handler)
	}

	// add abci handlers
	appp.RegisterQueryHandler(AbciQueryPrefix, createAbciQueryHandler(keeper))
}
