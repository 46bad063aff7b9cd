package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/keys"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	rpcclient "github.com/tendermint/tendermint/rpc/client"

	"github.com/lcnem/proximax-pegzone/app"
	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/mainchain"
	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/relayer"
	pzlog "github.com/lcnem/proximax-pegzone/common/log"
	"github.com/lcnem/proximax-pegzone/version"
)

const (
	flagRPCURL            = "rpc-url"
	flagHome              = "home"
	flagPassphrase        = "passphrase"
	flagPrometheusAddr    = "prometheus-addr"
	flagPollInterval      = "poll-interval"
	flagCosignTimeout     = "cosign-timeout"
	flagMosaicID          = "mosaic-id"
	flagDenom             = "denom"
	flagRequestsPerSecond = "requests-per-second"
	flagRetries           = "retries"

	defaultDenom = "xpx"
)

var rootCmd = &cobra.Command{
	Use:          "pxbrelayer",
	Short:        "Relays ProximaX multisig activity to the peg zone and back",
	SilenceUsage: true,
}

func main() {
	userHome, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().String(client.FlagChainID, "", "peg zone chain id")
	rootCmd.PersistentFlags().String(flagRPCURL, "", "tendermint rpc used to broadcast claims, defaults to tendermint_node")
	rootCmd.PersistentFlags().String(flagHome, filepath.Join(userHome, ".pxbcli"), "directory of the validator operator keybase")
	rootCmd.PersistentFlags().String(flagPassphrase, app.DefaultKeyPass, "passphrase of the validator operator key")
	rootCmd.PersistentFlags().String(flagPrometheusAddr, "", "serve prometheus metrics on this address")
	rootCmd.PersistentFlags().Int(flagRequestsPerSecond, 10, "max requests per second to the proximax node")
	rootCmd.PersistentFlags().Int(flagRetries, 5, "broadcast attempts before a claim is given up")
	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(initCmd(), versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the relayer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start a relayer",
	}
	cmd.AddCommand(proximaxRelayerCmd(), cosmosRelayerCmd())
	return cmd
}

func proximaxRelayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proximax [validator_from_name] [tendermint_node] [proximax_node] [proximax_private_key] [proximax_multisig_address]",
		Short: "Watch the mainchain multisig and claim deposits on the peg zone",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, tendermintNode, proximaxNode, privateKey, multisig := args[0], args[1], args[2], args[3], args[4]
			if err := validateKey(privateKey); err != nil {
				return err
			}
			logger := pzlog.NewConsoleLogger().With("module", "pxbrelayer")

			validator, b, err := newBroadcaster(from, tendermintNode, logger)
			if err != nil {
				return err
			}
			mc, err := newMainchainClient(proximaxNode)
			if err != nil {
				return err
			}
			r, err := relayer.NewProximaxRelayer(relayer.ProximaxConfig{
				Validator:       validator,
				MultisigAddress: multisig,
				MosaicID:        viper.GetString(flagMosaicID),
				Denom:           viper.GetString(flagDenom),
				PollInterval:    viper.GetDuration(flagPollInterval),
			}, mc, b, newMetrics(), logger)
			if err != nil {
				return err
			}
			return r.Run(signalContext())
		},
	}
	cmd.Flags().String(flagMosaicID, mainchain.XPXMosaicID, "mosaic pegged to the peg zone")
	cmd.Flags().String(flagDenom, defaultDenom, "denom minted for deposits")
	cmd.Flags().Duration(flagPollInterval, 15*time.Second, "how often the multisig is polled")
	viper.BindPFlags(cmd.Flags())
	return cmd
}

func cosmosRelayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cosmos [tendermint_node] [proximax_node] [validator_moniker] [proximax_cosigner_private_key] [multisig_account_public_key]",
		Short: "Follow peg zone cosign obligations and claim the ones not cosigned in time",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			tendermintNode, proximaxNode, moniker, privateKey, multisigKey := args[0], args[1], args[2], args[3], args[4]
			if err := validateKey(privateKey); err != nil {
				return err
			}
			if err := validateKey(multisigKey); err != nil {
				return err
			}
			logger := pzlog.NewConsoleLogger().With("module", "pxbrelayer")

			validator, b, err := newBroadcaster(moniker, tendermintNode, logger)
			if err != nil {
				return err
			}
			mc, err := newMainchainClient(proximaxNode)
			if err != nil {
				return err
			}
			cfg := relayer.CosmosConfig{
				Validator:         validator,
				MultisigPublicKey: multisigKey,
				CosignTimeout:     viper.GetDuration(flagCosignTimeout),
				RecheckInterval:   time.Minute,
				TickInterval:      5 * time.Second,
			}
			events := rpcclient.NewHTTP(tendermintNode, "/websocket")
			r := relayer.NewCosmosRelayer(cfg, events, mc, b, newMetrics(), logger)
			return r.Run(signalContext())
		},
	}
	cmd.Flags().Duration(flagCosignTimeout, 10*time.Minute, "time cosigners have to sign on the mainchain")
	viper.BindPFlags(cmd.Flags())
	return cmd
}

func newBroadcaster(from, tendermintNode string, logger log.Logger) (sdk.ValAddress, relayer.Broadcaster, error) {
	chainID := viper.GetString(client.FlagChainID)
	if chainID == "" {
		return nil, nil, errors.New("--chain-id is required")
	}
	node := viper.GetString(flagRPCURL)
	if node == "" {
		node = tendermintNode
	}
	viper.Set(client.FlagNode, node)

	home := viper.GetString(flagHome)
	keybase, err := keys.GetKeyBaseFromDir(home)
	if err != nil {
		return nil, nil, err
	}
	info, err := keybase.Get(from)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "validator key %s", from)
	}

	b, err := relayer.NewBroadcaster(app.MakeCodec(), relayer.BroadcasterConfig{
		Home:       home,
		From:       from,
		Passphrase: viper.GetString(flagPassphrase),
		ChainID:    chainID,
		Retries:    viper.GetInt(flagRetries),
		RetryWait:  time.Second,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return sdk.ValAddress(info.GetPubKey().Address()), b, nil
}

func newMainchainClient(url string) (*mainchain.Client, error) {
	cfg := mainchain.DefaultConfig(url)
	cfg.RequestsPerSecond = viper.GetInt(flagRequestsPerSecond)
	return mainchain.NewClient(cfg, pzlog.NewConsoleLogger().With("module", "mainchain"))
}

func newMetrics() *relayer.Metrics {
	addr := viper.GetString(flagPrometheusAddr)
	if addr == "" {
		return relayer.NopMetrics()
	}
	srv := &http.Server{
		Addr: addr,
		Handler: promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{MaxRequestsInFlight: 10},
			),
		),
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Printf("Prometheus HTTP server ListenAndServe, err=%v\n", err)
		}
	}()
	return relayer.PrometheusMetrics()
}

// mainchain keys are 32 bytes hex
func validateKey(key string) error {
	bz, err := hex.DecodeString(key)
	if err != nil || len(bz) != 32 {
		return errors.Errorf("%q is not a 64 character hex key", key)
	}
	return nil
}

func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()
	return ctx
}
