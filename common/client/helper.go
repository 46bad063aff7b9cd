package client

import (
	"github.com/cosmos/cosmos-sdk/client/context"
	txutils "github.com/cosmos/cosmos-sdk/client/utils"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txbuilder "github.com/cosmos/cosmos-sdk/x/auth/client/txbuilder"

	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

func PrepareCtx(cdc *wire.Codec) (context.CLIContext, txbuilder.TxBuilder) {
	txBldr := txbuilder.NewTxBuilderFromCLI().WithCodec(cdc)
	cliCtx := context.NewCLIContext().
		WithCodec(cdc).
		WithAccountDecoder(types.GetAccountDecoder(cdc))
	return cliCtx, txBldr
}

func SendOrPrintTx(ctx context.CLIContext, builder txbuilder.TxBuilder, msg sdk.Msg) error {
	if ctx.GenerateOnly {
		return txutils.PrintUnsignedStdTx(builder, ctx, []sdk.Msg{msg})
	}

	return txutils.CompleteAndBroadcastTxCli(builder, ctx, []sdk.Msg{msg})
}
