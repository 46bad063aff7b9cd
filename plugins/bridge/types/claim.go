package types

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

// PegClaim is the content validators agree on for a mainchain deposit
type PegClaim struct {
	MainchainTxHash string         `json:"mainchain_tx_hash"`
	ToAddress       sdk.AccAddress `json:"to_address"`
	Amount          sdk.Coins      `json:"amount"`
}

// UnpegNotCosignedClaim is the content validators agree on for an unpeg payout that missed cosignatures
type UnpegNotCosignedClaim struct {
	TxHash                string           `json:"tx_hash"`
	NotCosignedValidators []sdk.ValAddress `json:"not_cosigned_validators"`
}

// InvitationNotCosignedClaim asserts that FirstCosignerAddress did not cosign the
// multisig invitation of ValidatorAddress, whose mainchain account is MainchainAddress.
type InvitationNotCosignedClaim struct {
	ValidatorAddress     sdk.ValAddress `json:"validator_address"`
	MainchainAddress     string         `json:"mainchain_address"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
}

func NewInvitationNotCosignedClaim(validatorAddress sdk.ValAddress, mainchainAddress string,
	firstCosignerAddress sdk.ValAddress) InvitationNotCosignedClaim {
	return InvitationNotCosignedClaim{
		ValidatorAddress:     validatorAddress,
		MainchainAddress:     mainchainAddress,
		FirstCosignerAddress: firstCosignerAddress,
	}
}

// ValidateBasic requires every field to be present and well formed
func (claim InvitationNotCosignedClaim) ValidateBasic() sdk.Error {
	if err := validateValAddress(claim.ValidatorAddress); err != nil {
		return err
	}
	if err := ValidateMainchainAddress(claim.MainchainAddress); err != nil {
		return err
	}
	return validateValAddress(claim.FirstCosignerAddress)
}

func CreateOracleClaimFromPegClaimMsg(msg MsgPegClaim) (oracle.Claim, sdk.Error) {
	claim := PegClaim{
		MainchainTxHash: NormalizeTxHash(msg.MainchainTxHash),
		ToAddress:       msg.ToAddress,
		Amount:          msg.Amount,
	}
	content, err := json.Marshal(claim)
	if err != nil {
		return oracle.Claim{}, ErrInvalidClaim(err.Error())
	}
	return oracle.NewClaim(claim.MainchainTxHash, msg.Address, string(content)), nil
}

func GetPegClaimFromOracleClaim(content string) (PegClaim, sdk.Error) {
	var claim PegClaim
	if err := json.Unmarshal([]byte(content), &claim); err != nil {
		return PegClaim{}, ErrInvalidClaim(err.Error())
	}
	return claim, nil
}

func CreateOracleClaimFromUnpegNotCosignedClaimMsg(msg MsgUnpegNotCosignedClaim) (oracle.Claim, sdk.Error) {
	claim := UnpegNotCosignedClaim{
		TxHash:                NormalizeTxHash(msg.TxHash),
		NotCosignedValidators: msg.NotCosignedValidators,
	}
	content, err := json.Marshal(claim)
	if err != nil {
		return oracle.Claim{}, ErrInvalidClaim(err.Error())
	}
	return oracle.NewClaim(claim.TxHash, msg.Address, string(content)), nil
}

func GetUnpegNotCosignedClaimFromOracleClaim(content string) (UnpegNotCosignedClaim, sdk.Error) {
	var claim UnpegNotCosignedClaim
	if err := json.Unmarshal([]byte(content), &claim); err != nil {
		return UnpegNotCosignedClaim{}, ErrInvalidClaim(err.Error())
	}
	return claim, nil
}

func CreateOracleClaimFromInvitationNotCosignedClaimMsg(msg MsgInvitationNotCosignedClaim) (oracle.Claim, sdk.Error) {
	content, err := json.Marshal(msg.Claim())
	if err != nil {
		return oracle.Claim{}, ErrInvalidClaim(err.Error())
	}
	return oracle.NewClaim(NormalizeTxHash(msg.TxHash), msg.Address, string(content)), nil
}

// GetInvitationNotCosignedClaimFromOracleClaim decodes a finalized claim. A record
// missing any of its fields is rejected.
func GetInvitationNotCosignedClaimFromOracleClaim(content string) (InvitationNotCosignedClaim, sdk.Error) {
	var claim InvitationNotCosignedClaim
	if err := json.Unmarshal([]byte(content), &claim); err != nil {
		return InvitationNotCosignedClaim{}, ErrInvalidClaim(err.Error())
	}
	if err := claim.ValidateBasic(); err != nil {
		return InvitationNotCosignedClaim{}, ErrInvalidClaim(err.Error())
	}
	return claim, nil
}
