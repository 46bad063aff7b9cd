package api

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	tmserver "github.com/tendermint/tendermint/rpc/lib/server"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/context"

	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

const (
	flagListenAddr         = "laddr"
	flagMaxOpenConnections = "max-open"
)

// ServeCommand starts a REST server exposing the bridge queries of a node
func ServeCommand(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-server",
		Short: "Start the bridge API server daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.NewCLIContext().
				WithCodec(cdc).
				WithAccountDecoder(types.GetAccountDecoder(cdc))
			logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "api")

			cfg := &tmserver.Config{MaxOpenConnections: viper.GetInt(flagMaxOpenConnections)}
			listener, err := tmserver.Listen(viper.GetString(flagListenAddr), cfg)
			if err != nil {
				return err
			}

			router := newServer(ctx, cdc).bindRoutes().router
			go func() {
				if err := tmserver.StartHTTPServer(listener, router, logger, cfg); err != nil {
					logger.Error("api server stopped", "err", err)
				}
			}()
			logger.Info("api server started", "laddr", viper.GetString(flagListenAddr))

			cmn.TrapSignal(logger, func() {
				if err := listener.Close(); err != nil {
					logger.Error("error closing listener", "err", err)
				}
			})
			select {}
		},
	}

	cmd.Flags().String(flagListenAddr, "tcp://localhost:8080", "The address for the server to listen on")
	cmd.Flags().Int(flagMaxOpenConnections, 1000, "The number of maximum open connections")
	cmd.Flags().String(client.FlagChainID, "", "The chain ID to connect to")
	cmd.Flags().String(client.FlagNode, "tcp://localhost:26657", "Address of the node to connect to")
	cmd.Flags().Bool(client.FlagTrustNode, true, "Trust connected full node (don't verify proofs for responses)")
	return cmd
}
