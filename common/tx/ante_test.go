package tx_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/crypto"

	"github.com/lcnem/proximax-pegzone/common"
	"github.com/lcnem/proximax-pegzone/common/testutils"
	"github.com/lcnem/proximax-pegzone/common/tx"
)

func newTestTx(chainID string, msgs []sdk.Msg, privs []crypto.PrivKey, accNums []int64, seqs []int64) auth.StdTx {
	sigs := make([]auth.StdSignature, len(privs))
	for i, priv := range privs {
		signBytes := auth.StdSignBytes(chainID, accNums[i], seqs[i], msgs, "", 0, nil)
		sig, err := priv.Sign(signBytes)
		if err != nil {
			panic(err)
		}
		sigs[i] = auth.StdSignature{PubKey: priv.PubKey(), Signature: sig, AccountNumber: accNums[i], Sequence: seqs[i]}
	}
	return auth.NewStdTx(msgs, sigs, "", 0, nil)
}

func checkValidTx(t *testing.T, anteHandler sdk.AnteHandler, ctx sdk.Context, tx sdk.Tx) {
	_, result, abort := anteHandler(ctx, tx, sdk.RunTxModeCheck)
	require.False(t, abort)
	require.True(t, result.IsOK(), result.Log)
}

func checkInvalidTx(t *testing.T, anteHandler sdk.AnteHandler, ctx sdk.Context, tx sdk.Tx, code sdk.CodeType) {
	_, result, abort := anteHandler(ctx, tx, sdk.RunTxModeCheck)
	require.True(t, abort)
	require.Equal(t, sdk.ToABCICode(sdk.CodespaceRoot, code), result.Code, result.Log)
}

func setupAnte(t *testing.T) (sdk.Context, auth.AccountKeeper, sdk.AnteHandler) {
	ms, _, _ := testutils.SetupMultiStoreForUnitTest()
	cdc := testutils.MakeCodec()
	ctx := testutils.NewContextForUnitTest(cdc, ms, 1)
	am := auth.NewAccountKeeper(cdc, common.AccountStoreKey, auth.ProtoBaseAccount)
	return ctx, am, tx.NewAnteHandler(am)
}

func TestAnteHandlerSigErrors(t *testing.T) {
	ctx, _, anteHandler := setupAnte(t)
	priv1, addr1 := testutils.PrivAndAddr()
	_, addr2 := testutils.PrivAndAddr()
	msgs := []sdk.Msg{sdk.NewTestMsg(addr1, addr2)}

	txn := newTestTx(ctx.ChainID(), msgs, nil, nil, nil)
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeUnauthorized)

	// two signers required, one signature given
	txn = newTestTx(ctx.ChainID(), msgs, []crypto.PrivKey{priv1}, []int64{0}, []int64{0})
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeUnauthorized)
}

func TestAnteHandlerUnknownAccount(t *testing.T) {
	ctx, _, anteHandler := setupAnte(t)
	priv, addr := testutils.PrivAndAddr()

	txn := newTestTx(ctx.ChainID(), []sdk.Msg{sdk.NewTestMsg(addr)}, []crypto.PrivKey{priv}, []int64{0}, []int64{0})
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeUnknownAddress)
}

func TestAnteHandlerSequences(t *testing.T) {
	ctx, am, anteHandler := setupAnte(t)
	priv, acc := testutils.NewAccount(ctx, am, 100)
	msgs := []sdk.Msg{sdk.NewTestMsg(acc.GetAddress())}
	accNum := acc.GetAccountNumber()

	txn := newTestTx(ctx.ChainID(), msgs, []crypto.PrivKey{priv}, []int64{accNum}, []int64{0})
	checkValidTx(t, anteHandler, ctx, txn)
	require.Equal(t, int64(1), am.GetAccount(ctx, acc.GetAddress()).GetSequence())
	require.NotNil(t, am.GetAccount(ctx, acc.GetAddress()).GetPubKey())

	// replay
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeInvalidSequence)

	txn = newTestTx(ctx.ChainID(), msgs, []crypto.PrivKey{priv}, []int64{accNum + 1}, []int64{1})
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeInvalidSequence)

	txn = newTestTx(ctx.ChainID(), msgs, []crypto.PrivKey{priv}, []int64{accNum}, []int64{1})
	checkValidTx(t, anteHandler, ctx, txn)
}

func TestAnteHandlerWrongChainID(t *testing.T) {
	ctx, am, anteHandler := setupAnte(t)
	priv, acc := testutils.NewAccount(ctx, am, 100)
	msgs := []sdk.Msg{sdk.NewTestMsg(acc.GetAddress())}

	txn := newTestTx("another-chain", msgs, []crypto.PrivKey{priv}, []int64{acc.GetAccountNumber()}, []int64{0})
	checkInvalidTx(t, anteHandler, ctx, txn, sdk.CodeUnauthorized)
}

func TestTxPreChecker(t *testing.T) {
	ctx, am, _ := setupAnte(t)
	priv, acc := testutils.NewAccount(ctx, am, 100)
	msgs := []sdk.Msg{sdk.NewTestMsg(acc.GetAddress())}
	prechecker := tx.NewTxPreChecker()

	txn := newTestTx(ctx.ChainID(), msgs, []crypto.PrivKey{priv}, []int64{acc.GetAccountNumber()}, []int64{0})
	res := prechecker(ctx, []byte("precheck-good"), txn)
	require.True(t, res.IsOK(), res.Log)

	txn = newTestTx("another-chain", msgs, []crypto.PrivKey{priv}, []int64{acc.GetAccountNumber()}, []int64{0})
	res = prechecker(ctx, []byte("precheck-bad-chain"), txn)
	require.Equal(t, sdk.ToABCICode(sdk.CodespaceRoot, sdk.CodeUnauthorized), res.Code)

	txn = newTestTx(ctx.ChainID(), msgs, nil, nil, nil)
	res = prechecker(ctx, []byte("precheck-no-sigs"), txn)
	require.Contains(t, res.Log, "no signers")
}
