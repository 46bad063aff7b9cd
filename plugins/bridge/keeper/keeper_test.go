package keeper

import (
	"strings"
	"testing"

	sdkstore "github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/bank"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/db"

	"github.com/lcnem/proximax-pegzone/common"
	"github.com/lcnem/proximax-pegzone/common/testutils"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

const (
	testMainchainAddress = "VALV7IFX2DTUP6UDG56N7DNVFRKFHNTER7JHIR7B"
	testTxHash           = "8D1F2A4E3B5C6D7E8F9A0B1C2D3E4F5A6B7C8D9E0F1A2B3C4D5E6F7A8B9C0D1E"
)

type testEnv struct {
	ctx        sdk.Context
	keeper     Keeper
	accKeeper  auth.AccountKeeper
	validators []sdk.ValAddress
}

func setup(t *testing.T, powers ...int64) testEnv {
	ms := sdkstore.NewCommitMultiStore(db.NewMemDB())
	ms.MountStoreWithDB(common.AccountStoreKey, sdk.StoreTypeIAVL, nil)
	ms.MountStoreWithDB(common.OracleStoreKey, sdk.StoreTypeIAVL, nil)
	ms.MountStoreWithDB(common.BridgeStoreKey, sdk.StoreTypeIAVL, nil)
	cdc := testutils.MakeCodec()
	paramsKeeper := testutils.MountParamsStores(cdc, ms)
	require.NoError(t, ms.LoadLatestVersion())

	ctx := testutils.NewContextForUnitTest(cdc, ms.CacheMultiStore(), 1)

	stakeKeeper := testutils.NewFakeStakingKeeper()
	validators := make([]sdk.ValAddress, 0, len(powers))
	for _, power := range powers {
		_, addr := testutils.PrivAndValAddr()
		stakeKeeper.AddBondedValidator(addr, power)
		validators = append(validators, addr)
	}

	accKeeper := auth.NewAccountKeeper(cdc, common.AccountStoreKey, auth.ProtoBaseAccount)
	bankKeeper := bank.NewBaseKeeper(accKeeper)
	oracleKeeper := oracle.NewKeeper(cdc, common.OracleStoreKey, paramsKeeper.Subspace(oracle.DefaultParamspace), stakeKeeper)
	keeper := NewKeeper(cdc, common.BridgeStoreKey, oracleKeeper, bankKeeper)

	return testEnv{ctx: ctx, keeper: keeper, accKeeper: accKeeper, validators: validators}
}

func TestProcessPegClaim(t *testing.T) {
	env := setup(t, 1, 1, 1)
	_, to := testutils.PrivAndAddr()
	amount := testutils.NewTokens(100)

	for i, validator := range env.validators[:2] {
		status, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(validator, testTxHash, to, amount))
		require.Nil(t, err)
		require.Equal(t, oracle.PendingStatusText, status.Text, "claim %d", i)
		require.Nil(t, env.accKeeper.GetAccount(env.ctx, to))
	}

	status, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[2], testTxHash, to, amount))
	require.Nil(t, err)
	require.Equal(t, oracle.SuccessStatusText, status.Text)
	require.Equal(t, int64(100), env.accKeeper.GetAccount(env.ctx, to).GetCoins().AmountOf(testutils.TestDenom))
}

func TestProcessPegClaim_Failed(t *testing.T) {
	env := setup(t, 5, 5)
	_, to := testutils.PrivAndAddr()
	_, other := testutils.PrivAndAddr()
	amount := testutils.NewTokens(100)

	_, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[0], testTxHash, to, amount))
	require.Nil(t, err)
	status, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[1], testTxHash, other, amount))
	require.Nil(t, err)
	require.Equal(t, oracle.FailedStatusText, status.Text)

	_, found := env.keeper.OracleKeeper().GetProphecy(env.ctx, testTxHash)
	require.False(t, found)
	require.Nil(t, env.accKeeper.GetAccount(env.ctx, to))
}

func TestProcessPegClaim_HashCaseSharesProphecy(t *testing.T) {
	env := setup(t, 1)
	_, to := testutils.PrivAndAddr()
	amount := testutils.NewTokens(100)

	status, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[0], testTxHash, to, amount))
	require.Nil(t, err)
	require.Equal(t, oracle.SuccessStatusText, status.Text)

	_, err = env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[0], strings.ToLower(testTxHash), to, amount))
	require.NotNil(t, err)
	require.Equal(t, int64(100), env.accKeeper.GetAccount(env.ctx, to).GetCoins().AmountOf(testutils.TestDenom))

	_, found := env.keeper.OracleKeeper().GetProphecy(env.ctx, strings.ToLower(testTxHash))
	require.False(t, found)
}

func TestProcessPegClaim_MixedCaseReachesConsensus(t *testing.T) {
	env := setup(t, 1, 1)
	_, to := testutils.PrivAndAddr()
	amount := testutils.NewTokens(100)

	status, err := env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[0], strings.ToLower(testTxHash), to, amount))
	require.Nil(t, err)
	require.Equal(t, oracle.PendingStatusText, status.Text)

	status, err = env.keeper.ProcessPegClaim(env.ctx, types.NewMsgPegClaim(env.validators[1], testTxHash, to, amount))
	require.Nil(t, err)
	require.Equal(t, oracle.SuccessStatusText, status.Text)
	require.Equal(t, int64(100), env.accKeeper.GetAccount(env.ctx, to).GetCoins().AmountOf(testutils.TestDenom))
}

func TestProcessUnpeg(t *testing.T) {
	env := setup(t, 1)
	_, acc := testutils.NewAccount(env.ctx, env.accKeeper, 100)

	record, err := env.keeper.ProcessUnpeg(env.ctx,
		types.NewMsgUnpeg(acc.GetAddress(), testMainchainAddress, testutils.NewTokens(40), env.validators[0]))
	require.Nil(t, err)
	require.Equal(t, types.StartSequence, record.Sequence)
	require.Equal(t, int64(60), env.accKeeper.GetAccount(env.ctx, acc.GetAddress()).GetCoins().AmountOf(testutils.TestDenom))

	record, err = env.keeper.ProcessUnpeg(env.ctx,
		types.NewMsgUnpeg(acc.GetAddress(), testMainchainAddress, testutils.NewTokens(60), env.validators[0]))
	require.Nil(t, err)
	require.Equal(t, types.StartSequence+1, record.Sequence)
	require.Equal(t, types.StartSequence+2, env.keeper.GetCurrentSequence(env.ctx, types.UnpegSequenceKey))

	stored, found := env.keeper.GetUnpegRecord(env.ctx, record.Sequence)
	require.True(t, found)
	require.Equal(t, testMainchainAddress, stored.MainchainAddress)
	require.True(t, stored.Amount.IsEqual(testutils.NewTokens(60)))

	// nothing left to burn
	_, err = env.keeper.ProcessUnpeg(env.ctx,
		types.NewMsgUnpeg(acc.GetAddress(), testMainchainAddress, testutils.NewTokens(1), env.validators[0]))
	require.NotNil(t, err)
	require.Equal(t, types.StartSequence+2, env.keeper.GetCurrentSequence(env.ctx, types.UnpegSequenceKey))
}

func TestProcessUnpegNotCosignedClaim(t *testing.T) {
	env := setup(t, 1, 1)
	notCosigned := []sdk.ValAddress{env.validators[1]}

	status, err := env.keeper.ProcessUnpegNotCosignedClaim(env.ctx,
		types.NewMsgUnpegNotCosignedClaim(env.validators[0], testTxHash, notCosigned))
	require.Nil(t, err)
	require.Equal(t, oracle.PendingStatusText, status.Text)
	require.Equal(t, int64(0), env.keeper.GetStrikes(env.ctx, env.validators[1]))

	status, err = env.keeper.ProcessUnpegNotCosignedClaim(env.ctx,
		types.NewMsgUnpegNotCosignedClaim(env.validators[1], testTxHash, notCosigned))
	require.Nil(t, err)
	require.Equal(t, oracle.SuccessStatusText, status.Text)
	require.Equal(t, int64(1), env.keeper.GetStrikes(env.ctx, env.validators[1]))
	require.Equal(t, int64(0), env.keeper.GetStrikes(env.ctx, env.validators[0]))
}

func TestProcessRequestInvitation(t *testing.T) {
	env := setup(t, 1, 1)
	msg := types.NewMsgRequestInvitation(env.validators[0], testMainchainAddress, env.validators[1])

	invitation, err := env.keeper.ProcessRequestInvitation(env.ctx, msg)
	require.Nil(t, err)
	require.Equal(t, env.ctx.BlockHeight(), invitation.Height)

	stored, found := env.keeper.GetInvitation(env.ctx, env.validators[0])
	require.True(t, found)
	require.Equal(t, testMainchainAddress, stored.MainchainAddress)
	require.Len(t, env.keeper.GetInvitations(env.ctx), 1)

	_, err = env.keeper.ProcessRequestInvitation(env.ctx, msg)
	require.NotNil(t, err)
	require.Equal(t, types.CodeDuplicateInvitation, err.Code())
}

func TestProcessInvitationNotCosignedClaim(t *testing.T) {
	env := setup(t, 4, 1, 4)
	invitee, firstCosigner := env.validators[0], env.validators[1]

	claimFrom := func(reporter sdk.ValAddress) types.MsgInvitationNotCosignedClaim {
		return types.NewMsgInvitationNotCosignedClaim(reporter, testTxHash, invitee, testMainchainAddress, firstCosigner)
	}

	// no invitation to complain about yet
	_, err := env.keeper.ProcessInvitationNotCosignedClaim(env.ctx, claimFrom(env.validators[2]))
	require.NotNil(t, err)
	require.Equal(t, types.CodeInvitationNotFound, err.Code())

	_, err = env.keeper.ProcessRequestInvitation(env.ctx,
		types.NewMsgRequestInvitation(invitee, testMainchainAddress, firstCosigner))
	require.Nil(t, err)

	// a claim must describe the pending invitation exactly
	_, err = env.keeper.ProcessInvitationNotCosignedClaim(env.ctx,
		types.NewMsgInvitationNotCosignedClaim(env.validators[2], testTxHash, invitee, testMainchainAddress, env.validators[2]))
	require.NotNil(t, err)
	require.Equal(t, types.CodeInvitationNotFound, err.Code())

	status, err := env.keeper.ProcessInvitationNotCosignedClaim(env.ctx, claimFrom(env.validators[2]))
	require.Nil(t, err)
	require.Equal(t, oracle.PendingStatusText, status.Text)
	require.Equal(t, int64(0), env.keeper.GetStrikes(env.ctx, firstCosigner))

	status, err = env.keeper.ProcessInvitationNotCosignedClaim(env.ctx, claimFrom(env.validators[0]))
	require.Nil(t, err)
	require.Equal(t, oracle.SuccessStatusText, status.Text)

	require.Equal(t, int64(1), env.keeper.GetStrikes(env.ctx, firstCosigner))
	_, found := env.keeper.GetInvitation(env.ctx, invitee)
	require.False(t, found)

	strikes := env.keeper.GetAllStrikes(env.ctx)
	require.Len(t, strikes, 1)
	require.Equal(t, firstCosigner, strikes[0].ValidatorAddress)
}
