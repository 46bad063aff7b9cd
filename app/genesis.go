package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/stake"
	"github.com/pkg/errors"

	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/wire"
)

// StakeDenom is the token validators bond
const StakeDenom = "pxb"

//DefaultKeyPass only for private test net
var DefaultKeyPass = "12345678"

var (
	// each genesis validator self delegates 10000e8 stake tokens
	DefaultSelfDelegationToken = sdk.NewCoin(StakeDenom, 10000e8)
	// balance given to every genesis validator operator account
	DefaultGenesisBalance = sdk.Coins{sdk.NewCoin(StakeDenom, 20000e8)}
	// set default unbonding duration to 7 days
	DefaultUnbondingTime = 60 * 60 * 24 * 7 * time.Second
	// default max validators to 21
	DefaultMaxValidators uint16 = 21
)

type GenesisState struct {
	Accounts   []GenesisAccount    `json:"accounts"`
	StakeData  stake.GenesisState  `json:"stake"`
	BridgeData bridge.GenesisState `json:"bridge"`
	GenTxs     []json.RawMessage   `json:"gentxs"`
}

// GenesisAccount doesn't need pubkey or sequence
type GenesisAccount struct {
	Name    string         `json:"name"`
	Address sdk.AccAddress `json:"address"`
	Coins   sdk.Coins      `json:"coins"`
}

func NewGenesisAccount(aa *types.AppAccount) GenesisAccount {
	return GenesisAccount{
		Name:    aa.Name,
		Address: aa.GetAddress(),
		Coins:   aa.GetCoins(),
	}
}

// convert GenesisAccount to AppAccount
func (ga *GenesisAccount) ToAppAccount() (acc *types.AppAccount) {
	baseAcc := auth.BaseAccount{
		Address: ga.Address,
		Coins:   ga.Coins.Sort(),
	}
	return &types.AppAccount{
		BaseAccount: baseAcc,
		Name:        ga.Name,
	}
}

func PegZoneAppInit() server.AppInit {
	return server.AppInit{
		AppGenState: PegZoneAppGenState,
	}
}

// PegZoneAppGenState builds the app_state from the genesis transactions. Each one
// must carry a single MsgCreateValidator; its operator gets a funded account.
func PegZoneAppGenState(cdc *wire.Codec, appGenTxs []json.RawMessage) (appState json.RawMessage, err error) {
	if len(appGenTxs) == 0 {
		err = errors.New("must provide at least 1 genesis transaction")
		return
	}

	genAccounts := make([]GenesisAccount, 0, len(appGenTxs))
	for i, genTx := range appGenTxs {
		var tx auth.StdTx
		if err = cdc.UnmarshalJSON(genTx, &tx); err != nil {
			return
		}
		msgs := tx.GetMsgs()
		if len(msgs) != 1 {
			err = errors.New(
				"must provide genesis StdTx with exactly 1 CreateValidator message")
			return
		}
		msg, ok := msgs[0].(stake.MsgCreateValidator)
		if !ok {
			err = fmt.Errorf(
				"genesis transaction %v does not contain a MsgCreateValidator", i)
			return
		}

		operAcc := types.AppAccount{BaseAccount: auth.NewBaseAccountWithAddress(msg.DelegatorAddr)}
		if len(msg.Description.Moniker) > 0 {
			operAcc.SetName(msg.Description.Moniker)
		}
		operAcc.Coins = DefaultGenesisBalance
		genAccounts = append(genAccounts, NewGenesisAccount(&operAcc))
	}

	stakeData := stake.DefaultGenesisState()
	// every genesis stake token starts loose, bonding moves it out of the pool
	stakeData.Pool.LooseTokens = sdk.NewDec(DefaultGenesisBalance.AmountOf(StakeDenom) * int64(len(genAccounts)))
	stakeData.Params.BondDenom = StakeDenom
	stakeData.Params.UnbondingTime = DefaultUnbondingTime
	stakeData.Params.MaxValidators = DefaultMaxValidators

	threshold, err := ServerContext.Config.Bridge.ConsensusThreshold()
	if err != nil {
		return
	}

	genesisState := GenesisState{
		Accounts:   genAccounts,
		StakeData:  stakeData,
		BridgeData: bridge.DefaultGenesisState(threshold),
		GenTxs:     appGenTxs,
	}

	appState, err = wire.MarshalJSONIndent(cdc, genesisState)
	return
}
