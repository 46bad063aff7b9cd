package bridge

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/pubsub"
	sdkstore "github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/bank"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/common"
	"github.com/lcnem/proximax-pegzone/common/testutils"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

const (
	testMainchainAddress = "VBIXVY6I4FMPRLDAIC5RWJSGK7X2QZNO42IEV3UL"
	testTxHash           = "0F3E7A1D5C9B2E4F6A8C0D1E3F5A7B9C2D4E6F8A0B1C3D5E7F9A2B4C6D8E0F1A"
	testCosmosTxHash     = "B2C4D6E8F0A1B3C5D7E9F1A2B4C6D8E0F2A3B5C7D9E1F3A4B6C8D0E2F4A5B7C9"
)

type handlerEnv struct {
	ctx        sdk.Context
	keeper     Keeper
	handler    sdk.Handler
	validators []sdk.ValAddress
	events     *[]BridgeEvent
	sub        *pubsub.Subscriber
}

func setupHandler(t *testing.T, powers ...int64) handlerEnv {
	ms := sdkstore.NewCommitMultiStore(db.NewMemDB())
	ms.MountStoreWithDB(common.AccountStoreKey, sdk.StoreTypeIAVL, nil)
	ms.MountStoreWithDB(common.OracleStoreKey, sdk.StoreTypeIAVL, nil)
	ms.MountStoreWithDB(common.BridgeStoreKey, sdk.StoreTypeIAVL, nil)
	cdc := testutils.MakeCodec()
	paramsKeeper := testutils.MountParamsStores(cdc, ms)
	require.NoError(t, ms.LoadLatestVersion())

	ctx := testutils.NewContextForUnitTest(cdc, ms.CacheMultiStore(), 1).
		WithValue(baseapp.TxHashKey, testCosmosTxHash)

	stakeKeeper := testutils.NewFakeStakingKeeper()
	validators := make([]sdk.ValAddress, 0, len(powers))
	for _, power := range powers {
		_, addr := testutils.PrivAndValAddr()
		stakeKeeper.AddBondedValidator(addr, power)
		validators = append(validators, addr)
	}

	accKeeper := auth.NewAccountKeeper(cdc, common.AccountStoreKey, auth.ProtoBaseAccount)
	oracleKeeper := oracle.NewKeeper(cdc, common.OracleStoreKey, paramsKeeper.Subspace(oracle.DefaultParamspace), stakeKeeper)
	keeper := NewKeeper(cdc, common.BridgeStoreKey, oracleKeeper, bank.NewBaseKeeper(accKeeper))

	server := pubsub.NewServer(log.NewNopLogger())
	require.NoError(t, server.Start())
	keeper.SetPbsbServer(server)

	sub, err := server.NewSubscriber("bridge_test", log.NewNopLogger())
	require.NoError(t, err)
	events := make([]BridgeEvent, 0)
	require.NoError(t, sub.Subscribe(Topic, func(event pubsub.Event) {
		if e, ok := event.(BridgeEvent); ok {
			events = append(events, e)
		}
	}))

	return handlerEnv{
		ctx:        ctx,
		keeper:     keeper,
		handler:    NewHandler(keeper),
		validators: validators,
		events:     &events,
		sub:        sub,
	}
}

func tagValue(tags sdk.Tags, key string) string {
	for _, tag := range tags {
		if string(tag.Key) == key {
			return string(tag.Value)
		}
	}
	return ""
}

func TestHandleRequestInvitation(t *testing.T) {
	env := setupHandler(t, 1, 1)
	msg := NewMsgRequestInvitation(env.validators[0], testMainchainAddress, env.validators[1])

	res := env.handler(env.ctx, msg)
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, types.RequestInvitationMsgType, tagValue(res.Tags, types.TagAction))
	require.Equal(t, env.validators[0].String(), tagValue(res.Tags, types.TagValidatorAddress))
	require.Equal(t, testMainchainAddress, tagValue(res.Tags, types.TagMainchainAddress))
	require.Equal(t, env.validators[1].String(), tagValue(res.Tags, types.TagFirstCosignerAddress))

	env.sub.Wait()
	require.Len(t, *env.events, 1)
	event := (*env.events)[0]
	require.Equal(t, RequestInvitationType, event.Type)
	require.Equal(t, testCosmosTxHash, event.TxHash)
	require.Equal(t, env.validators[1].String(), event.FirstCosignerAddress)

	res = env.handler(env.ctx, msg)
	require.False(t, res.IsOK())
	require.Equal(t, sdk.ToABCICode(types.DefaultCodespace, types.CodeDuplicateInvitation), res.Code)
}

func TestHandleInvitationNotCosignedClaim(t *testing.T) {
	env := setupHandler(t, 1, 1)
	invitee, firstCosigner := env.validators[0], env.validators[1]

	res := env.handler(env.ctx, NewMsgRequestInvitation(invitee, testMainchainAddress, firstCosigner))
	require.True(t, res.IsOK(), res.Log)

	for i, reporter := range env.validators {
		res = env.handler(env.ctx, NewMsgInvitationNotCosignedClaim(reporter, testCosmosTxHash, invitee, testMainchainAddress, firstCosigner))
		require.True(t, res.IsOK(), res.Log)
		require.Equal(t, types.InvitationNotCosignedClaimMsgType, tagValue(res.Tags, types.TagAction))
		require.Equal(t, testCosmosTxHash, tagValue(res.Tags, types.TagTxHash))
		require.Equal(t, invitee.String(), tagValue(res.Tags, types.TagValidatorAddress))
		require.Equal(t, testMainchainAddress, tagValue(res.Tags, types.TagMainchainAddress))
		require.Equal(t, firstCosigner.String(), tagValue(res.Tags, types.TagFirstCosignerAddress))
		if i == 0 {
			require.Equal(t, oracle.PendingStatusText.String(), tagValue(res.Tags, types.TagStatus))
		} else {
			require.Equal(t, oracle.SuccessStatusText.String(), tagValue(res.Tags, types.TagStatus))
		}
	}
	require.Equal(t, int64(1), env.keeper.GetStrikes(env.ctx, firstCosigner))

	env.sub.Wait()
	require.Len(t, *env.events, 3)
	last := (*env.events)[2]
	require.Equal(t, InvitationNotCosignedClaimType, last.Type)
	require.Equal(t, oracle.SuccessStatusText.String(), last.Status)
	require.Equal(t, invitee.String(), last.ValidatorAddress)
	require.Equal(t, testMainchainAddress, last.MainchainAddress)
	require.Equal(t, firstCosigner.String(), last.FirstCosignerAddress)
}

func TestHandlePegClaimAndUnpeg(t *testing.T) {
	env := setupHandler(t, 1)
	_, to := testutils.PrivAndAddr()

	res := env.handler(env.ctx, NewMsgPegClaim(env.validators[0], testTxHash, to, testutils.NewTokens(50)))
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, oracle.SuccessStatusText.String(), tagValue(res.Tags, types.TagStatus))
	require.Equal(t, testTxHash, tagValue(res.Tags, types.TagMainchainTxHash))

	res = env.handler(env.ctx, NewMsgUnpeg(to, testMainchainAddress, testutils.NewTokens(20), env.validators[0]))
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, "0", tagValue(res.Tags, types.TagSequence))

	res = env.handler(env.ctx, NewMsgUnpeg(to, testMainchainAddress, testutils.NewTokens(20), env.validators[0]))
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, "1", tagValue(res.Tags, types.TagSequence))

	env.sub.Wait()
	require.Len(t, *env.events, 3)
	require.Equal(t, UnpegType, (*env.events)[2].Type)
	require.Equal(t, int64(1), (*env.events)[2].Sequence)
}

func TestHandleUnknownMsg(t *testing.T) {
	env := setupHandler(t, 1)
	res := env.handler(env.ctx, bank.MsgSend{})
	require.False(t, res.IsOK())
	require.Equal(t, sdk.ToABCICode(sdk.CodespaceRoot, sdk.CodeUnknownRequest), res.Code)
}
