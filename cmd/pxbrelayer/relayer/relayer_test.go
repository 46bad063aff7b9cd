package relayer

import (
	"context"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/mainchain"
	"github.com/lcnem/proximax-pegzone/common/testutils"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
)

const (
	testMainchainAddress = "VBIXVY6I4FMPRLDAIC5RWJSGK7X2QZNO42IEV3UL"
	testMultisigKey      = "MULTISIGKEY"
	testInviteeKey       = "INVITEEKEY"
	unpegHash            = "3E2F9C1A4B5D6E7F8091A2B3C4D5E6F708192A3B4C5D6E7F8091A2B3C4D5E6F7"
	depositHash          = "9A2F9C1A4B5D6E7F8091A2B3C4D5E6F708192A3B4C5D6E7F8091A2B3C4D5E6F7"
)

type fakeMainchain struct {
	confirmed []mainchain.Transaction
	partial   []mainchain.Transaction
	keys      map[string]string
	err       error
}

func (m *fakeMainchain) Transactions(_ context.Context, _ string) ([]mainchain.Transaction, error) {
	return m.confirmed, m.err
}

func (m *fakeMainchain) PartialTransactions(_ context.Context, _ string) ([]mainchain.Transaction, error) {
	return m.partial, m.err
}

func (m *fakeMainchain) AccountPublicKey(_ context.Context, address string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	pk, ok := m.keys[address]
	if !ok {
		return "", errors.Wrap(mainchain.ErrNotFound, address)
	}
	return pk, nil
}

type fakeBroadcaster struct {
	msgs []sdk.Msg
	err  error
}

func (b *fakeBroadcaster) Broadcast(msg sdk.Msg) error {
	if b.err != nil {
		return b.err
	}
	b.msgs = append(b.msgs, msg)
	return nil
}

func newCosmosRelayer(mc Mainchain, b Broadcaster) (*CosmosRelayer, sdk.ValAddress) {
	_, self := testutils.PrivAndValAddr()
	cfg := CosmosConfig{
		Validator:         self,
		MultisigPublicKey: testMultisigKey,
		CosignTimeout:     10 * time.Minute,
		RecheckInterval:   time.Minute,
		TickInterval:      time.Second,
	}
	return NewCosmosRelayer(cfg, nil, mc, b, NopMetrics(), log.NewNopLogger()), self
}

func unpegEvents(first sdk.ValAddress) map[string][]string {
	_, from := testutils.PrivAndAddr()
	return map[string][]string{
		"tm.event":                      {"Tx"},
		"tx.hash":                       {unpegHash},
		"tx.height":                     {"12"},
		"bridge.action":                 {"unpeg"},
		"bridge.sender":                 {from.String()},
		"bridge.sequence":               {"0"},
		"bridge.mainchain_address":      {testMainchainAddress},
		"bridge.amount":                 {types.CoinsTag(testutils.NewTokens(10))},
		"bridge.first_cosigner_address": {first.String()},
	}
}

func invitationEvents(invitee, first sdk.ValAddress) map[string][]string {
	return map[string][]string{
		"tx.hash":                       {unpegHash},
		"bridge.action":                 {"requestInvitation"},
		"bridge.sender":                 {invitee.String()},
		"bridge.validator_address":      {invitee.String()},
		"bridge.mainchain_address":      {testMainchainAddress},
		"bridge.first_cosigner_address": {first.String()},
	}
}

func afterDeadline() time.Time {
	return time.Now().Add(11 * time.Minute)
}

func TestUnpegNotCosigned(t *testing.T) {
	mc := &fakeMainchain{}
	b := &fakeBroadcaster{}
	r, self := newCosmosRelayer(mc, b)
	_, first := testutils.PrivAndValAddr()

	r.HandleEvent(unpegEvents(first))
	require.Equal(t, 1, r.Pending())

	r.CheckDeadlines(context.Background(), time.Now())
	require.Empty(t, b.msgs)
	require.Equal(t, 1, r.Pending())

	r.CheckDeadlines(context.Background(), afterDeadline())
	require.Equal(t, 0, r.Pending())
	require.Len(t, b.msgs, 1)
	msg := b.msgs[0].(bridge.MsgUnpegNotCosignedClaim)
	require.Equal(t, self, msg.Address)
	require.Equal(t, unpegHash, msg.TxHash)
	require.Equal(t, []sdk.ValAddress{first}, msg.NotCosignedValidators)
}

func TestUnpegPaidOut(t *testing.T) {
	payout := mainchain.Transaction{Transfers: []mainchain.Transfer{{
		Recipient: testMainchainAddress,
		Message:   unpegHash,
	}}}
	_, first := testutils.PrivAndValAddr()

	for _, mc := range []*fakeMainchain{
		{confirmed: []mainchain.Transaction{payout}},
		{partial: []mainchain.Transaction{payout}},
	} {
		b := &fakeBroadcaster{}
		r, _ := newCosmosRelayer(mc, b)
		r.HandleEvent(unpegEvents(first))
		r.CheckDeadlines(context.Background(), afterDeadline())
		require.Empty(t, b.msgs)
		require.Equal(t, 0, r.Pending())
	}
}

func TestMainchainErrorRequeues(t *testing.T) {
	mc := &fakeMainchain{err: errors.New("gateway down")}
	b := &fakeBroadcaster{}
	r, _ := newCosmosRelayer(mc, b)
	_, first := testutils.PrivAndValAddr()

	r.HandleEvent(unpegEvents(first))
	now := afterDeadline()
	r.CheckDeadlines(context.Background(), now)
	require.Empty(t, b.msgs)
	require.Equal(t, 1, r.Pending())

	mc.err = nil
	r.CheckDeadlines(context.Background(), now.Add(2*time.Minute))
	require.Len(t, b.msgs, 1)
}

func TestOwnObligationsAreIgnored(t *testing.T) {
	b := &fakeBroadcaster{}
	r, self := newCosmosRelayer(&fakeMainchain{}, b)
	r.HandleEvent(unpegEvents(self))
	require.Equal(t, 0, r.Pending())
}

func TestInvitationNotCosigned(t *testing.T) {
	mc := &fakeMainchain{}
	b := &fakeBroadcaster{}
	r, self := newCosmosRelayer(mc, b)
	_, invitee := testutils.PrivAndValAddr()
	_, first := testutils.PrivAndValAddr()

	r.HandleEvent(invitationEvents(invitee, first))
	r.CheckDeadlines(context.Background(), afterDeadline())

	require.Len(t, b.msgs, 1)
	msg := b.msgs[0].(bridge.MsgInvitationNotCosignedClaim)
	require.Equal(t, self, msg.Address)
	require.Equal(t, unpegHash, msg.TxHash)
	require.Equal(t, invitee, msg.ValidatorAddress)
	require.Equal(t, testMainchainAddress, msg.MainchainAddress)
	require.Equal(t, first, msg.FirstCosignerAddress)
}

func TestInvitationCosigned(t *testing.T) {
	mc := &fakeMainchain{
		keys: map[string]string{testMainchainAddress: testInviteeKey},
		partial: []mainchain.Transaction{{Modifications: []mainchain.Modification{{
			Added: []string{testInviteeKey},
		}}}},
	}
	b := &fakeBroadcaster{}
	r, _ := newCosmosRelayer(mc, b)
	_, invitee := testutils.PrivAndValAddr()
	_, first := testutils.PrivAndValAddr()

	r.HandleEvent(invitationEvents(invitee, first))
	r.CheckDeadlines(context.Background(), afterDeadline())
	require.Empty(t, b.msgs)
}

func TestFinalizedClaimSettlesObligation(t *testing.T) {
	b := &fakeBroadcaster{}
	r, _ := newCosmosRelayer(&fakeMainchain{}, b)
	_, first := testutils.PrivAndValAddr()
	_, other := testutils.PrivAndValAddr()

	r.HandleEvent(unpegEvents(first))
	claim := map[string][]string{
		"tx.hash":                        {depositHash},
		"bridge.action":                  {"unpegNotCosignedClaim"},
		"bridge.sender":                  {other.String()},
		"bridge.tx_hash":                 {unpegHash},
		"bridge.not_cosigned_validators": {first.String()},
		"bridge.status":                  {"pending"},
	}
	r.HandleEvent(claim)
	require.Equal(t, 1, r.Pending())

	claim["bridge.status"] = []string{"success"}
	r.HandleEvent(claim)
	require.Equal(t, 0, r.Pending())
}

func newProximaxRelayer(t *testing.T, mc Mainchain, b Broadcaster) (*ProximaxRelayer, sdk.ValAddress) {
	_, self := testutils.PrivAndValAddr()
	r, err := NewProximaxRelayer(ProximaxConfig{
		Validator:       self,
		MultisigAddress: testMainchainAddress,
		MosaicID:        mainchain.XPXMosaicID,
		Denom:           testutils.TestDenom,
		PollInterval:    time.Second,
	}, mc, b, NopMetrics(), log.NewNopLogger())
	require.NoError(t, err)
	return r, self
}

func TestProximaxPoll(t *testing.T) {
	_, to := testutils.PrivAndAddr()
	deposit := mainchain.Transfer{
		Hash:      depositHash,
		Recipient: testMainchainAddress,
		Message:   to.String(),
		Mosaics:   []mainchain.Mosaic{{ID: mainchain.XPXMosaicID, Amount: 500}},
	}
	outgoing := deposit
	outgoing.Hash = unpegHash
	outgoing.Recipient = "SOMEWHEREELSE"
	garbage := deposit
	garbage.Hash = "0000000000000000000000000000000000000000000000000000000000000001"
	garbage.Message = "not an address"

	mc := &fakeMainchain{confirmed: []mainchain.Transaction{
		{Transfers: []mainchain.Transfer{deposit, outgoing, garbage}},
	}}
	b := &fakeBroadcaster{}
	r, self := newProximaxRelayer(t, mc, b)

	require.NoError(t, r.Poll(context.Background()))
	require.Len(t, b.msgs, 1)
	msg := b.msgs[0].(bridge.MsgPegClaim)
	require.Equal(t, self, msg.Address)
	require.Equal(t, depositHash, msg.MainchainTxHash)
	require.Equal(t, to, msg.ToAddress)
	require.Equal(t, sdk.Coins{sdk.NewCoin(testutils.TestDenom, 500)}, msg.Amount)

	// claimed deposits are not sent twice
	require.NoError(t, r.Poll(context.Background()))
	require.Len(t, b.msgs, 1)
}

func TestProximaxPollRetriesFailedBroadcast(t *testing.T) {
	_, to := testutils.PrivAndAddr()
	mc := &fakeMainchain{confirmed: []mainchain.Transaction{{Transfers: []mainchain.Transfer{{
		Hash:      depositHash,
		Recipient: testMainchainAddress,
		Message:   to.String(),
		Mosaics:   []mainchain.Mosaic{{ID: mainchain.XPXMosaicID, Amount: 1}},
	}}}}}
	b := &fakeBroadcaster{err: errors.New("node down")}
	r, _ := newProximaxRelayer(t, mc, b)

	require.NoError(t, r.Poll(context.Background()))
	require.Empty(t, b.msgs)

	b.err = nil
	require.NoError(t, r.Poll(context.Background()))
	require.Len(t, b.msgs, 1)
}

func TestProximaxRejectsBadMultisig(t *testing.T) {
	_, err := NewProximaxRelayer(ProximaxConfig{MultisigAddress: "nope"}, &fakeMainchain{}, &fakeBroadcaster{}, NopMetrics(), log.NewNopLogger())
	require.Error(t, err)
}

func TestProximaxPollClaimsEveryDepositOfAnAggregate(t *testing.T) {
	_, alice := testutils.PrivAndAddr()
	_, bob := testutils.PrivAndAddr()
	deposit := func(index int, to sdk.AccAddress) mainchain.Transfer {
		return mainchain.Transfer{
			Hash:      mainchain.DepositID(depositHash, index),
			TxHash:    depositHash,
			Recipient: testMainchainAddress,
			Message:   to.String(),
			Mosaics:   []mainchain.Mosaic{{ID: mainchain.XPXMosaicID, Amount: 3}},
		}
	}
	mc := &fakeMainchain{confirmed: []mainchain.Transaction{{
		Hash:      depositHash,
		Transfers: []mainchain.Transfer{deposit(0, alice), deposit(1, bob)},
	}}}
	b := &fakeBroadcaster{}
	r, _ := newProximaxRelayer(t, mc, b)

	require.NoError(t, r.Poll(context.Background()))
	require.Len(t, b.msgs, 2)
	first, second := b.msgs[0].(bridge.MsgPegClaim), b.msgs[1].(bridge.MsgPegClaim)
	require.Equal(t, alice, first.ToAddress)
	require.Equal(t, bob, second.ToAddress)
	require.NotEqual(t, first.MainchainTxHash, second.MainchainTxHash)
}
