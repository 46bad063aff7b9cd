package bridge

import (
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	abci "github.com/tendermint/tendermint/abci/types"

	app "github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
	"github.com/lcnem/proximax-pegzone/wire"
)

func createAbciQueryHandler(keeper Keeper) app.AbciQueryHandler {
	return func(appp app.ChainApp, req abci.RequestQuery, path []string) (res *abci.ResponseQuery) {
		// expects at least two query path segments.
		if path[0] != AbciQueryPrefix || len(path) < 2 {
			return nil
		}
		ctx := appp.GetContextForCheckState()
		cdc := appp.GetCodec()
		switch path[1] {
		case "sequence": // args: ["bridge", "sequence"]
			return marshalResponse(cdc, keeper.GetCurrentSequence(ctx, types.UnpegSequenceKey))
		}

		if len(path) < 3 || len(path[2]) == 0 {
			return &abci.ResponseQuery{
				Code: uint32(sdk.CodeUnknownRequest),
				Log:  fmt.Sprintf("%s %s query requires a path arg", AbciQueryPrefix, path[1]),
			}
		}
		switch path[1] {
		case "prophecy": // args: ["bridge", "prophecy", <tx hash>]
			prophecy, found := keeper.OracleKeeper().GetProphecy(ctx, types.NormalizeTxHash(path[2]))
			if !found {
				return errorResponse(oracle.ErrProphecyNotFound())
			}
			resp, err := oracle.NewProphecyResponse(prophecy)
			if err != nil {
				return internalError(err)
			}
			return marshalResponse(cdc, resp)
		case "invitation": // args: ["bridge", "invitation", <validator>]
			validator, err := sdk.ValAddressFromBech32(path[2])
			if err != nil {
				return badRequest(err)
			}
			invitation, found := keeper.GetInvitation(ctx, validator)
			if !found {
				return errorResponse(types.ErrInvitationNotFound(validator))
			}
			return marshalResponse(cdc, invitation)
		case "strikes": // args: ["bridge", "strikes", <validator>]
			validator, err := sdk.ValAddressFromBech32(path[2])
			if err != nil {
				return badRequest(err)
			}
			return marshalResponse(cdc, types.ValidatorStrikes{
				ValidatorAddress: validator,
				Strikes:          keeper.GetStrikes(ctx, validator),
			})
		case "unpeg": // args: ["bridge", "unpeg", <sequence>]
			sequence, err := strconv.ParseInt(path[2], 10, 64)
			if err != nil || sequence < 0 {
				return badRequest(fmt.Errorf("invalid sequence %q", path[2]))
			}
			record, found := keeper.GetUnpegRecord(ctx, sequence)
			if !found {
				return errorResponse(types.ErrUnpegRecordNotFound(sequence))
			}
			return marshalResponse(cdc, record)
		default:
			return &abci.ResponseQuery{
				Code: uint32(sdk.ABCICodeOK),
				Info: fmt.Sprintf("Unknown `%s` query path: %v", AbciQueryPrefix, path),
			}
		}
	}
}

func marshalResponse(cdc *wire.Codec, v interface{}) *abci.ResponseQuery {
	bz, err := wire.MarshalJSONIndent(cdc, v)
	if err != nil {
		return internalError(err)
	}
	return &abci.ResponseQuery{
		Code:  uint32(sdk.ABCICodeOK),
		Value: bz,
	}
}

func errorResponse(err sdk.Error) *abci.ResponseQuery {
	return &abci.ResponseQuery{
		Code: uint32(err.ABCICode()),
		Log:  err.Error(),
	}
}

func internalError(err error) *abci.ResponseQuery {
	return &abci.ResponseQuery{
		Code: uint32(sdk.CodeInternal),
		Log:  err.Error(),
	}
}

func badRequest(err error) *abci.ResponseQuery {
	return &abci.ResponseQuery{
		Code: uint32(sdk.CodeUnknownRequest),
		Log:  err.Error(),
	}
}
