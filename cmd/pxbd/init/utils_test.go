package init

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/types"
)

func TestExportGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genTime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	genFile := filepath.Join(dir, "genesis.json")
	require.NoError(t, exportGenesis(genFile, "pegzone", json.RawMessage(`{"accounts":[]}`), genTime))

	doc, err := types.GenesisDocFromFile(genFile)
	require.NoError(t, err)
	require.Equal(t, "pegzone", doc.ChainID)
	require.True(t, genTime.Equal(doc.GenesisTime))
	require.Empty(t, doc.Validators)
	require.JSONEq(t, `{"accounts":[]}`, string(doc.AppState))
}

func TestExportGenesisFillsZeroTime(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genFile := filepath.Join(dir, "genesis.json")
	require.NoError(t, exportGenesis(genFile, "pegzone", json.RawMessage(`{}`), time.Time{}))

	doc, err := types.GenesisDocFromFile(genFile)
	require.NoError(t, err)
	require.False(t, doc.GenesisTime.IsZero())
}

func TestExportGenesisRejectsEmptyChainID(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genFile := filepath.Join(dir, "genesis.json")
	require.Error(t, exportGenesis(genFile, "", json.RawMessage(`{}`), time.Time{}))
	_, err = os.Stat(genFile)
	require.True(t, os.IsNotExist(err))
}
