package types

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/lcnem/proximax-pegzone/common/testutils"
)

func TestInvitationNotCosignedClaimValidateBasic(t *testing.T) {
	_, validator := testutils.PrivAndValAddr()
	_, firstCosigner := testutils.PrivAndValAddr()

	tests := []struct {
		claim        InvitationNotCosignedClaim
		expectedPass bool
	}{
		{NewInvitationNotCosignedClaim(validator, testMainchainAddress, firstCosigner), true},
		{NewInvitationNotCosignedClaim(validator, testPrettyMainchainAddress, firstCosigner), true},
		{NewInvitationNotCosignedClaim(nil, testMainchainAddress, firstCosigner), false},
		{NewInvitationNotCosignedClaim(validator, "", firstCosigner), false},
		{NewInvitationNotCosignedClaim(validator, testMainchainAddress, nil), false},
		{NewInvitationNotCosignedClaim(validator[:10], testMainchainAddress, firstCosigner), false},
		{NewInvitationNotCosignedClaim(validator, "not-a-mainchain-address", firstCosigner), false},
	}

	for i, tc := range tests {
		if tc.expectedPass {
			require.Nil(t, tc.claim.ValidateBasic(), "test: %v", i)
		} else {
			require.NotNil(t, tc.claim.ValidateBasic(), "test: %v", i)
		}
	}
}

func TestInvitationNotCosignedClaimWireNames(t *testing.T) {
	_, validator := testutils.PrivAndValAddr()
	_, firstCosigner := testutils.PrivAndValAddr()

	bz, err := json.Marshal(NewInvitationNotCosignedClaim(validator, testMainchainAddress, firstCosigner))
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(bz, &fields))
	require.Len(t, fields, 3)
	require.Equal(t, validator.String(), fields["validator_address"])
	require.Equal(t, testMainchainAddress, fields["mainchain_address"])
	require.Equal(t, firstCosigner.String(), fields["first_cosigner_address"])
}

func TestInvitationNotCosignedOracleClaim(t *testing.T) {
	_, reporter := testutils.PrivAndValAddr()
	_, validator := testutils.PrivAndValAddr()
	_, firstCosigner := testutils.PrivAndValAddr()

	msg := NewMsgInvitationNotCosignedClaim(reporter, testTxHash, validator, testMainchainAddress, firstCosigner)
	oracleClaim, err := CreateOracleClaimFromInvitationNotCosignedClaimMsg(msg)
	require.Nil(t, err)
	require.Equal(t, testTxHash, oracleClaim.ID)
	require.Equal(t, reporter, oracleClaim.ValidatorAddress)
	require.NotContains(t, oracleClaim.Content, reporter.String())

	claim, err := GetInvitationNotCosignedClaimFromOracleClaim(oracleClaim.Content)
	require.Nil(t, err)
	require.Equal(t, msg.Claim(), claim)

	// every reporter produces the same content for the same record
	_, otherReporter := testutils.PrivAndValAddr()
	otherClaim, err := CreateOracleClaimFromInvitationNotCosignedClaimMsg(
		NewMsgInvitationNotCosignedClaim(otherReporter, testTxHash, validator, testMainchainAddress, firstCosigner))
	require.Nil(t, err)
	require.Equal(t, oracleClaim.Content, otherClaim.Content)
}

func TestGetInvitationNotCosignedClaimRejectsPartialRecords(t *testing.T) {
	_, validator := testutils.PrivAndValAddr()

	_, err := GetInvitationNotCosignedClaimFromOracleClaim("not json")
	require.NotNil(t, err)
	require.Equal(t, CodeInvalidClaim, err.Code())

	partial, jsonErr := json.Marshal(map[string]interface{}{
		"validator_address": validator.String(),
		"mainchain_address": testMainchainAddress,
	})
	require.NoError(t, jsonErr)
	_, err = GetInvitationNotCosignedClaimFromOracleClaim(string(partial))
	require.NotNil(t, err)
	require.Equal(t, CodeInvalidClaim, err.Code())
}

func TestPegClaimOracleClaim(t *testing.T) {
	_, validator := testutils.PrivAndValAddr()
	_, to := testutils.PrivAndAddr()
	amount := sdk.Coins{sdk.NewCoin(testutils.TestDenom, 100)}

	oracleClaim, err := CreateOracleClaimFromPegClaimMsg(NewMsgPegClaim(validator, testTxHash, to, amount))
	require.Nil(t, err)
	require.Equal(t, testTxHash, oracleClaim.ID)

	claim, err := GetPegClaimFromOracleClaim(oracleClaim.Content)
	require.Nil(t, err)
	require.Equal(t, to, claim.ToAddress)
	require.True(t, claim.Amount.IsEqual(amount))
}
