package oracle

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle/keeper"
	oracletypes "github.com/lcnem/proximax-pegzone/plugins/oracle/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

const AbciQueryPrefix = "oracle"

func createAbciQueryHandler(k keeper.Keeper) types.AbciQueryHandler {
	return func(app types.ChainApp, req abci.RequestQuery, path []string) (res *abci.ResponseQuery) {
		// expects at least two query path segments.
		if path[0] != AbciQueryPrefix || len(path) < 2 {
			return nil
		}
		switch path[1] {
		case "prophecy": // args: ["oracle", "prophecy", <id>]
			if len(path) < 3 || len(path[2]) == 0 {
				return &abci.ResponseQuery{
					Code: uint32(sdk.CodeUnknownRequest),
					Log:  fmt.Sprintf("%s %s query requires a prophecy id path arg", AbciQueryPrefix, path[1]),
				}
			}
			ctx := app.GetContextForCheckState()
			return QueryProphecy(app.GetCodec(), k, ctx, path[2])
		case "params": // args: ["oracle", "params"]
			ctx := app.GetContextForCheckState()
			bz, err := wire.MarshalJSONIndent(app.GetCodec(), k.GetProphecyParams(ctx))
			if err != nil {
				return &abci.ResponseQuery{
					Code: uint32(sdk.CodeInternal),
					Log:  err.Error(),
				}
			}
			return &abci.ResponseQuery{
				Code:  uint32(sdk.ABCICodeOK),
				Value: bz,
			}
		default:
			return &abci.ResponseQuery{
				Code: uint32(sdk.ABCICodeOK),
				Info: fmt.Sprintf("Unknown `%s` query path: %v", AbciQueryPrefix, path),
			}
		}
	}
}

// QueryProphecy renders the prophecy with the given id as a query response
func QueryProphecy(cdc *wire.Codec, k keeper.Keeper, ctx sdk.Context, id string) *abci.ResponseQuery {
	prophecy, found := k.GetProphecy(ctx, id)
	if !found {
		err := oracletypes.ErrProphecyNotFound()
		return &abci.ResponseQuery{
			Code: uint32(err.ABCICode()),
			Log:  err.Error(),
		}
	}
	resp, err := oracletypes.NewProphecyResponse(prophecy)
	if err != nil {
		return &abci.ResponseQuery{
			Code: uint32(sdk.CodeInternal),
			Log:  err.Error(),
		}
	}
	bz, err := wire.MarshalJSONIndent(cdc, resp)
	if err != nil {
		return &abci.ResponseQuery{
			Code: uint32(sdk.CodeInternal),
			Log:  err.Error(),
		}
	}
	return &abci.ResponseQuery{
		Code:  uint32(sdk.ABCICodeOK),
		Value: bz,
	}
}
