package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// UnpegRecord is kept for every unpeg so relayers can follow the mainchain payout
type UnpegRecord struct {
	Sequence             int64          `json:"sequence"`
	From                 sdk.AccAddress `json:"from"`
	MainchainAddress     string         `json:"mainchain_address"`
	Amount               sdk.Coins      `json:"amount"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
	Height               int64          `json:"height"`
}

func (r UnpegRecord) String() string {
	return fmt.Sprintf("UnpegRecord{%d#%s#%s#%s#%s#%d}", r.Sequence, r.From.String(), r.MainchainAddress,
		r.Amount.String(), r.FirstCosignerAddress.String(), r.Height)
}

// Invitation is a pending request of a validator to join the mainchain multisig
type Invitation struct {
	ValidatorAddress     sdk.ValAddress `json:"validator_address"`
	MainchainAddress     string         `json:"mainchain_address"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
	Height               int64          `json:"height"`
}

func NewInvitation(msg MsgRequestInvitation, height int64) Invitation {
	return Invitation{
		ValidatorAddress:     msg.Address,
		MainchainAddress:     msg.MainchainAddress,
		FirstCosignerAddress: msg.FirstCosignerAddress,
		Height:               height,
	}
}

// Matches reports whether claim refers to this invitation
func (i Invitation) Matches(claim InvitationNotCosignedClaim) bool {
	return i.ValidatorAddress.Equals(claim.ValidatorAddress) &&
		i.FirstCosignerAddress.Equals(claim.FirstCosignerAddress) &&
		NormalizeMainchainAddress(i.MainchainAddress) == NormalizeMainchainAddress(claim.MainchainAddress)
}

// ValidatorStrikes counts the cosignatures a validator failed to provide
type ValidatorStrikes struct {
	ValidatorAddress sdk.ValAddress `json:"validator_address"`
	Strikes          int64          `json:"strikes"`
}
