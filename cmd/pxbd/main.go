package main

import (
	"encoding/json"
	"io"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/cli"
	cmn "github.com/tendermint/tendermint/libs/common"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/lcnem/proximax-pegzone/app"
	pxbinit "github.com/lcnem/proximax-pegzone/cmd/pxbd/init"
)

func newApp(logger log.Logger, db dbm.DB, storeTracer io.Writer) abci.Application {
	pzApp := app.NewPegZoneApp(logger, db, storeTracer, baseapp.SetPruning(viper.GetString("pruning")))
	// best effort: the node's own signal handler may exit first
	cmn.TrapSignal(logger, pzApp.Stop)
	return pzApp
}

func exportAppStateAndTMValidators(logger log.Logger, db dbm.DB, storeTracer io.Writer) (json.RawMessage, []tmtypes.GenesisValidator, error) {
	dapp := app.NewPegZoneApp(logger, db, storeTracer)
	return dapp.ExportAppStateAndValidators()
}

func main() {
	cdc := app.MakeCodec()
	ctx := app.ServerContext

	rootCmd := &cobra.Command{
		Use:               "pxbd",
		Short:             "ProximaX peg zone daemon (server)",
		PersistentPreRunE: app.PersistentPreRunEFn(ctx),
	}

	appInit := app.PegZoneAppInit()
	rootCmd.AddCommand(pxbinit.InitCmd(ctx.ToCosmosServerCtx(), cdc, appInit))
	rootCmd.AddCommand(pxbinit.CollectGenTxsCmd(cdc, appInit))

	server.AddCommands(ctx.ToCosmosServerCtx(), cdc, rootCmd, appInit, newApp, exportAppStateAndTMValidators)

	// prepare and add flags
	executor := cli.PrepareBaseCmd(rootCmd, "PXB", app.DefaultNodeHome)
	executor.Execute()
}
