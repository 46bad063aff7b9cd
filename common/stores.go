package common

import sdk "github.com/cosmos/cosmos-sdk/types"

const (
	MainStoreName        = "main"
	AccountStoreName     = "acc"
	ParamsStoreName      = "params"
	StakeStoreName       = "stake"
	StakeRewardStoreName = "stake_reward"
	OracleStoreName      = "oracle"
	BridgeStoreName      = "bridge"

	StakeTransientStoreName  = "transient_stake"
	ParamsTransientStoreName = "transient_params"
)

var (
	// keys to access the substores
	MainStoreKey        = sdk.NewKVStoreKey(MainStoreName)
	AccountStoreKey     = sdk.NewKVStoreKey(AccountStoreName)
	ParamsStoreKey      = sdk.NewKVStoreKey(ParamsStoreName)
	StakeStoreKey       = sdk.NewKVStoreKey(StakeStoreName)
	StakeRewardStoreKey = sdk.NewKVStoreKey(StakeRewardStoreName)
	OracleStoreKey      = sdk.NewKVStoreKey(OracleStoreName)
	BridgeStoreKey      = sdk.NewKVStoreKey(BridgeStoreName)

	TStakeStoreKey  = sdk.NewTransientStoreKey(StakeTransientStoreName)
	TParamsStoreKey = sdk.NewTransientStoreKey(ParamsTransientStoreName)

	NonTransientStoreKeyNamesSet = map[string]bool{
		MainStoreName:        true,
		AccountStoreName:     true,
		ParamsStoreName:      true,
		StakeStoreName:       true,
		StakeRewardStoreName: true,
		OracleStoreName:      true,
		BridgeStoreName:      true,
	}
)
