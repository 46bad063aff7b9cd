package main

import (
	"github.com/spf13/cobra"

	"github.com/tendermint/tendermint/libs/cli"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/keys"
	"github.com/cosmos/cosmos-sdk/client/rpc"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/version"
	authcmd "github.com/cosmos/cosmos-sdk/x/auth/client/cli"
	bankcmd "github.com/cosmos/cosmos-sdk/x/bank/client/cli"
	stakecmd "github.com/cosmos/cosmos-sdk/x/stake/client/cli"

	"github.com/lcnem/proximax-pegzone/app"
	"github.com/lcnem/proximax-pegzone/common"
	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/api"
	bridgecmd "github.com/lcnem/proximax-pegzone/plugins/bridge/client/cli"
)

// rootCmd is the entry point for this binary
var (
	rootCmd = &cobra.Command{
		Use:   "pxbcli",
		Short: "ProximaX peg zone light-client",
	}
)

func main() {
	// disable sorting
	cobra.EnableCommandSorting = false

	// get the codec
	cdc := app.MakeCodec()

	// add standard rpc, and tx commands
	rpc.AddCommands(rootCmd)
	rootCmd.AddCommand(client.LineBreak)
	tx.AddCommands(rootCmd, cdc)
	rootCmd.AddCommand(client.LineBreak)

	// add query/post commands (custom to binary)
	rootCmd.AddCommand(
		client.GetCommands(
			authcmd.GetAccountCmd(common.AccountStoreName, cdc, types.GetAccountDecoder(cdc)),
		)...)
	rootCmd.AddCommand(
		client.PostCommands(
			bankcmd.SendTxCmd(cdc),
		)...)

	stakingCmd := &cobra.Command{
		Use:   "staking",
		Short: "staking commands",
	}
	stakingCmd.AddCommand(
		client.PostCommands(
			stakecmd.GetCmdEditValidator(cdc),
			stakecmd.GetCmdDelegate(cdc),
			stakecmd.GetCmdRedelegate(common.StakeStoreName, cdc),
			stakecmd.GetCmdUnbond(common.StakeStoreName, cdc),
		)...)
	stakingCmd.AddCommand(client.LineBreak)
	stakingCmd.AddCommand(
		client.GetCommands(
			stakecmd.GetCmdQueryValidator(common.StakeStoreName, cdc),
			stakecmd.GetCmdQueryValidators(common.StakeStoreName, cdc),
		)...)
	rootCmd.AddCommand(stakingCmd)

	// add proxy, version and key info
	rootCmd.AddCommand(
		client.LineBreak,
		api.ServeCommand(cdc),
		keys.Commands(),
		client.LineBreak,
		version.VersionCmd,
	)

	bridgecmd.AddCommands(rootCmd, cdc)

	// prepare and add flags
	executor := cli.PrepareMainCmd(rootCmd, "PXB", app.DefaultCLIHome)
	executor.Execute()
}
