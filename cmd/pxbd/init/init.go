package init

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/keys"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/client/txbuilder"
	"github.com/cosmos/cosmos-sdk/x/stake"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/libs/cli"
	"github.com/tendermint/tendermint/libs/common"
	tmtime "github.com/tendermint/tendermint/types/time"

	"github.com/lcnem/proximax-pegzone/app"
	"github.com/lcnem/proximax-pegzone/wire"
)

const (
	flagOverwrite  = "overwrite"
	flagClientHome = "home-client"
	flagMoniker    = "moniker"
)

type printInfo struct {
	Moniker    string          `json:"moniker"`
	ChainID    string          `json:"chain_id"`
	NodeID     string          `json:"node_id"`
	AppMessage json.RawMessage `json:"app_message"`
}

// nolint: errcheck
func displayInfo(cdc *codec.Codec, info printInfo) error {
	out, err := codec.MarshalJSONIndent(cdc, info)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s\n", string(out))
	return nil
}

// InitCmd creates the node files and a single validator genesis. The validator
// operator key is stored in the client home so the relayer can sign with it.
func InitCmd(ctx *server.Context, cdc *codec.Codec, appInit server.AppInit) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize private validator, p2p, genesis, and application configuration files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			config := ctx.Config
			config.SetRoot(viper.GetString(cli.HomeFlag))

			chainID := viper.GetString(client.FlagChainID)
			if chainID == "" {
				chainID = fmt.Sprintf("pegzone-%v", common.RandStr(6))
			}
			nodeID, pubKey := InitializeNodeValidatorFiles(config)

			config.Moniker = viper.GetString(flagMoniker)
			if config.Moniker == "" {
				return errors.New("must specify --moniker")
			}

			genFile := config.GenesisFile()
			if !viper.GetBool(flagOverwrite) && common.FileExists(genFile) {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			clientHome := viper.GetString(flagClientHome)
			valOperAddr, secret := CreateValOperAccount(clientHome, config.Moniker)
			memo := fmt.Sprintf("%s@%s:26656", nodeID, "127.0.0.1")
			genTx, err := prepareCreateValidatorTx(cdc, clientHome, chainID, config.Moniker, memo, valOperAddr, pubKey)
			if err != nil {
				return err
			}
			// kept for collect-gentxs on a multi validator network
			genTxDir := filepath.Join(config.RootDir, "config", "gentx")
			if err = writeFile(fmt.Sprintf("gentx-%s.json", nodeID), genTxDir, genTx); err != nil {
				return err
			}
			appState, err := appInit.AppGenState(cdc, []json.RawMessage{genTx})
			if err != nil {
				return err
			}
			if err = exportGenesis(genFile, chainID, appState, tmtime.Now()); err != nil {
				return err
			}
			writeConfigFile(config)

			toPrint := printInfo{
				ChainID:    chainID,
				Moniker:    config.Moniker,
				NodeID:     nodeID,
				AppMessage: makeAppMessage(cdc, secret),
			}
			return displayInfo(cdc, toPrint)
		},
	}

	cmd.Flags().StringP(flagClientHome, "c", app.DefaultCLIHome, "client's home directory")
	cmd.Flags().BoolP(flagOverwrite, "o", false, "overwrite the genesis.json file")
	cmd.Flags().String(client.FlagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	cmd.Flags().String(flagMoniker, "", "the validator's moniker, also the name of its operator key")
	cmd.MarkFlagRequired(flagMoniker)
	return cmd
}

func prepareCreateValidatorTx(cdc *codec.Codec, clientHome, chainID, name, memo string,
	valOperAddr sdk.ValAddress, valPubKey crypto.PubKey) (json.RawMessage, error) {
	msg := stake.NewMsgCreateValidator(
		valOperAddr,
		valPubKey,
		app.DefaultSelfDelegationToken,
		stake.NewDescription(name, "", "", ""),
		stake.NewCommissionMsg(sdk.ZeroDec(), sdk.ZeroDec(), sdk.ZeroDec()),
	)

	// genesis accounts all sign with account number and sequence 0
	signMsg := authtx.StdSignMsg{
		ChainID: chainID,
		Msgs:    []sdk.Msg{msg},
		Memo:    memo,
		Source:  auth.DefaultSource,
	}
	keybase, err := keys.GetKeyBaseFromDir(clientHome)
	if err != nil {
		return nil, err
	}
	sigBytes, pubKey, err := keybase.Sign(name, app.DefaultKeyPass, signMsg.Bytes())
	if err != nil {
		return nil, err
	}
	sig := auth.StdSignature{PubKey: pubKey, Signature: sigBytes}
	signedTx := auth.NewStdTx(signMsg.Msgs, []auth.StdSignature{sig}, memo, auth.DefaultSource, nil)

	return wire.MarshalJSONIndent(cdc, signedTx)
}

func writeConfigFile(config *cfg.Config) {
	configFilePath := filepath.Join(config.RootDir, "config", "config.toml")
	cfg.WriteConfigFile(configFilePath, config)
}
