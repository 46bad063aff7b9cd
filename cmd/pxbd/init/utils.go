package init

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/p2p"
	"github.com/tendermint/tendermint/privval"
	"github.com/tendermint/tendermint/types"

	"github.com/lcnem/proximax-pegzone/app"
)

const keySeedFile = "key_seed.json"

// exportGenesis writes the peg zone genesis to genFile. Validators come from
// the collected gentxs, so the document itself carries none. A zero genTime is
// filled in with the current time.
func exportGenesis(genFile, chainID string, appState json.RawMessage, genTime time.Time) error {
	genDoc := types.GenesisDoc{
		GenesisTime: genTime,
		ChainID:     chainID,
		AppState:    appState,
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		return fmt.Errorf("invalid genesis for chain %q: %v", chainID, err)
	}
	return genDoc.SaveAs(genFile)
}

// InitializeNodeValidatorFiles loads or creates the node key and the file
// based private validator of a bridge validator node.
func InitializeNodeValidatorFiles(config *cfg.Config) (nodeID string, valPubKey crypto.PubKey) {
	nodeKey, err := p2p.LoadOrGenNodeKey(config.NodeKeyFile())
	if err != nil {
		panic(err)
	}

	keyFile, stateFile := config.PrivValidatorKeyFile(), config.PrivValidatorStateFile()
	var pv *privval.FilePV
	if common.FileExists(keyFile) && common.FileExists(stateFile) {
		pv = privval.LoadFilePV(keyFile, stateFile)
	} else {
		pv = privval.GenFilePV(keyFile, stateFile)
		pv.Save()
	}
	return string(nodeKey.ID()), pv.GetPubKey()
}

// CreateValOperAccount creates the operator key of a validator in clientDir
// and keeps its seed words next to the keybase.
func CreateValOperAccount(clientDir, keyName string) (sdk.ValAddress, string) {
	accAddr, secret, err := server.GenerateSaveCoinKey(clientDir, keyName, app.DefaultKeyPass, true)
	if err != nil {
		panic(err)
	}
	keySeed, err := json.Marshal(map[string]string{"secret": secret})
	if err != nil {
		panic(err)
	}
	if err = writeFile(keySeedFile, clientDir, keySeed); err != nil {
		panic(err)
	}
	return sdk.ValAddress(accAddr.Bytes()), secret
}

func makeAppMessage(cdc *codec.Codec, secret string) json.RawMessage {
	bz, err := cdc.MarshalJSON(map[string]string{"secret": secret})
	if err != nil {
		panic(err)
	}
	return bz
}

func writeFile(name string, dir string, contents []byte) error {
	if err := common.EnsureDir(dir, 0700); err != nil {
		return err
	}
	return common.WriteFile(filepath.Join(dir, name), contents, 0600)
}
