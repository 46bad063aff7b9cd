package testutils

import (
	"os"

	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/params"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/secp256k1"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/common"
	"github.com/lcnem/proximax-pegzone/wire"
)

const TestDenom = "xpx"

func SetupMultiStoreForUnitTest() (sdk.MultiStore, *sdk.KVStoreKey, *sdk.KVStoreKey) {
	_, ms, capKey, capKey2, _ := SetupMultiStoreWithDBForUnitTest()
	return ms, capKey, capKey2
}

func SetupThreeMultiStoreForUnitTest() (sdk.MultiStore, *sdk.KVStoreKey, *sdk.KVStoreKey, *sdk.KVStoreKey) {
	_, ms, capKey, capKey2, capKey3 := SetupMultiStoreWithDBForUnitTest()
	return ms, capKey, capKey2, capKey3
}

func SetupMultiStoreWithDBForUnitTest() (dbm.DB, sdk.MultiStore, *sdk.KVStoreKey, *sdk.KVStoreKey, *sdk.KVStoreKey) {
	db := dbm.NewMemDB()
	capKey := sdk.NewKVStoreKey("capkey")
	capKey2 := sdk.NewKVStoreKey("capkey2")
	capKey3 := sdk.NewKVStoreKey("capkey3")
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(capKey, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(capKey2, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(capKey3, sdk.StoreTypeIAVL, db)
	ms.MountStoreWithDB(common.AccountStoreKey, sdk.StoreTypeIAVL, db)
	ms.LoadLatestVersion()
	return db, ms, capKey, capKey2, capKey3
}

// NewContextForUnitTest builds a deliver-mode context over ms with an account cache
// backed by the account store, so bank keepers can be used against it.
func NewContextForUnitTest(cdc *wire.Codec, ms sdk.MultiStore, height int64) sdk.Context {
	ctx := sdk.NewContext(ms, abci.Header{Height: height}, sdk.RunTxModeDeliver, log.NewTMLogger(os.Stdout))
	accountStoreCache := auth.NewAccountStoreCache(cdc, ms.GetKVStore(common.AccountStoreKey), 10)
	return ctx.WithAccountCache(auth.NewAccountCache(accountStoreCache))
}

func MakeCodec() *wire.Codec {
	cdc := wire.NewCodec()
	wire.RegisterCrypto(cdc)
	auth.RegisterCodec(cdc)
	sdk.RegisterCodec(cdc)
	return cdc
}

func NewTokens(amount int64) sdk.Coins {
	return sdk.Coins{
		sdk.NewCoin(TestDenom, amount),
	}
}

// generate a priv key and return it with its address
func PrivAndAddr() (crypto.PrivKey, sdk.AccAddress) {
	priv := secp256k1.GenPrivKey()
	addr := sdk.AccAddress(priv.PubKey().Address())
	return priv, addr
}

// generate a priv key and return it with its validator operator address
func PrivAndValAddr() (crypto.PrivKey, sdk.ValAddress) {
	priv, addr := PrivAndAddr()
	return priv, sdk.ValAddress(addr)
}

func NewAccount(ctx sdk.Context, am auth.AccountKeeper, free int64) (crypto.PrivKey, sdk.Account) {
	privKey, addr := PrivAndAddr()
	acc := am.NewAccountWithAddress(ctx, addr)
	acc.SetCoins(NewTokens(free))
	am.SetAccount(ctx, acc)
	return privKey, acc
}

// MountParamsStores mounts the params stores on ms and returns a keeper over them.
// Call it before ms.LoadLatestVersion.
func MountParamsStores(cdc *wire.Codec, ms store.CommitMultiStore) params.Keeper {
	ms.MountStoreWithDB(common.ParamsStoreKey, sdk.StoreTypeIAVL, nil)
	ms.MountStoreWithDB(common.TParamsStoreKey, sdk.StoreTypeTransient, nil)
	return params.NewKeeper(cdc, common.ParamsStoreKey, common.TParamsStoreKey)
}
