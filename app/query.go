package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/lcnem/proximax-pegzone/common/types"
)

const AccountQueryPrefix = "account"

// createAccountQueryHandler serves ["account", <bech32 address>] with the amino
// encoded account. An unknown address yields an empty value.
func createAccountQueryHandler(am auth.AccountKeeper) types.AbciQueryHandler {
	return func(app types.ChainApp, req abci.RequestQuery, path []string) *abci.ResponseQuery {
		if len(path) < 2 || len(path[1]) == 0 {
			return &abci.ResponseQuery{
				Code: uint32(sdk.CodeUnknownRequest),
				Log:  fmt.Sprintf("%s query requires an address path arg", AccountQueryPrefix),
			}
		}
		addr, err := sdk.AccAddressFromBech32(path[1])
		if err != nil {
			return &abci.ResponseQuery{
				Code: uint32(sdk.CodeInvalidAddress),
				Log:  err.Error(),
			}
		}

		ctx := app.GetContextForCheckState()
		acc := am.GetAccount(ctx, addr)
		if acc == nil {
			return &abci.ResponseQuery{Code: uint32(sdk.ABCICodeOK)}
		}
		bz, err := app.GetCodec().MarshalBinaryBare(acc)
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
}
