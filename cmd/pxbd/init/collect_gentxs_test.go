package init

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/stake"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto/ed25519"
	"github.com/tendermint/tendermint/types"

	"github.com/lcnem/proximax-pegzone/app"
	"github.com/lcnem/proximax-pegzone/common/testutils"
)

func writeGenTx(t *testing.T, dir, name string, moniker string) sdk.ValAddress {
	_, valAddr := testutils.PrivAndValAddr()
	msg := stake.NewMsgCreateValidator(
		valAddr,
		ed25519.GenPrivKey().PubKey(),
		app.DefaultSelfDelegationToken,
		stake.NewDescription(moniker, "", "", ""),
		stake.NewCommissionMsg(sdk.ZeroDec(), sdk.ZeroDec(), sdk.ZeroDec()),
	)
	tx := auth.NewStdTx([]sdk.Msg{msg}, nil, "", auth.DefaultSource, nil)
	bz, err := app.MakeCodec().MarshalJSON(tx)
	require.NoError(t, err)
	require.NoError(t, writeFile(name, dir, bz))
	return valAddr
}

func TestCollectGenTxs(t *testing.T) {
	dir, err := ioutil.TempDir("", "gentxs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeGenTx(t, dir, "gentx-a.json", "node-a")
	writeGenTx(t, dir, "gentx-b.json", "node-b")
	require.NoError(t, writeFile("README", dir, []byte("not a gentx")))

	cdc := app.MakeCodec()
	txs, err := collectGenTxs(dir, cdc)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	output := filepath.Join(dir, "out", "genesis.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0700))
	require.NoError(t, genGenesisFile(cdc, app.PegZoneAppInit(), "pegzone-test", dir, output))

	genDoc, err := types.GenesisDocFromFile(output)
	require.NoError(t, err)
	require.Equal(t, "pegzone-test", genDoc.ChainID)

	var genState app.GenesisState
	require.NoError(t, cdc.UnmarshalJSON(genDoc.AppState, &genState))
	require.Len(t, genState.Accounts, 2)
	require.Len(t, genState.GenTxs, 2)
}

func TestCollectGenTxs_BadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "gentxs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, writeFile("broken.json", dir, []byte("{")))
	_, err = collectGenTxs(dir, app.MakeCodec())
	require.Error(t, err)
}
