package types

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

func mustMarshalSignBytes(msg interface{}) []byte {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

var _ sdk.Msg = MsgPegClaim{}

// MsgPegClaim is sent by a validator that observed a deposit to the mainchain multisig
type MsgPegClaim struct {
	Address         sdk.ValAddress `json:"address"`
	MainchainTxHash string         `json:"mainchain_tx_hash"`
	ToAddress       sdk.AccAddress `json:"to_address"`
	Amount          sdk.Coins      `json:"amount"`
}

func NewMsgPegClaim(address sdk.ValAddress, mainchainTxHash string, toAddress sdk.AccAddress, amount sdk.Coins) MsgPegClaim {
	return MsgPegClaim{
		Address:         address,
		MainchainTxHash: mainchainTxHash,
		ToAddress:       toAddress,
		Amount:          amount,
	}
}

// nolint
func (msg MsgPegClaim) Route() string { return RouteBridge }
func (msg MsgPegClaim) Type() string  { return PegClaimMsgType }
func (msg MsgPegClaim) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.AccAddress(msg.Address)}
}
func (msg MsgPegClaim) GetInvolvedAddresses() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.AccAddress(msg.Address), msg.ToAddress}
}
func (msg MsgPegClaim) GetSignBytes() []byte { return mustMarshalSignBytes(msg) }

func (msg MsgPegClaim) String() string {
	return fmt.Sprintf("PegClaim{%s#%s#%s#%s}", msg.Address.String(), msg.MainchainTxHash,
		msg.ToAddress.String(), msg.Amount.String())
}

func (msg MsgPegClaim) ValidateBasic() sdk.Error {
	if err := validateValAddress(msg.Address); err != nil {
		return err
	}
	if err := ValidateTxHash(msg.MainchainTxHash); err != nil {
		return err
	}
	if err := validateAccAddress(msg.ToAddress); err != nil {
		return err
	}
	return validateAmount(msg.Amount)
}

var _ sdk.Msg = MsgUnpeg{}

// MsgUnpeg burns pegged coins and asks the cosigners to pay them out on the mainchain
type MsgUnpeg struct {
	Address              sdk.AccAddress `json:"address"`
	MainchainAddress     string         `json:"mainchain_address"`
	Amount               sdk.Coins      `json:"amount"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
}

func NewMsgUnpeg(address sdk.AccAddress, mainchainAddress string, amount sdk.Coins, firstCosignerAddress sdk.ValAddress) MsgUnpeg {
	return MsgUnpeg{
		Address:              address,
		MainchainAddress:     mainchainAddress,
		Amount:               amount,
		FirstCosignerAddress: firstCosignerAddress,
	}
}

// nolint
func (msg MsgUnpeg) Route() string { return RouteBridge }
func (msg MsgUnpeg) Type() string  { return UnpegMsgType }
func (msg MsgUnpeg) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Address}
}
func (msg MsgUnpeg) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}
func (msg MsgUnpeg) GetSignBytes() []byte { return mustMarshalSignBytes(msg) }

func (msg MsgUnpeg) String() string {
	return fmt.Sprintf("Unpeg{%s#%s#%s#%s}", msg.Address.String(), msg.MainchainAddress,
		msg.Amount.String(), msg.FirstCosignerAddress.String())
}

func (msg MsgUnpeg) ValidateBasic() sdk.Error {
	if err := validateAccAddress(msg.Address); err != nil {
		return err
	}
	if err := ValidateMainchainAddress(msg.MainchainAddress); err != nil {
		return err
	}
	if err := validateAmount(msg.Amount); err != nil {
		return err
	}
	return validateValAddress(msg.FirstCosignerAddress)
}

var _ sdk.Msg = MsgUnpegNotCosignedClaim{}

// MsgUnpegNotCosignedClaim reports validators that did not cosign the payout of an unpeg.
// TxHash is the hash of the tx carrying the MsgUnpeg.
type MsgUnpegNotCosignedClaim struct {
	Address               sdk.ValAddress   `json:"address"`
	TxHash                string           `json:"tx_hash"`
	NotCosignedValidators []sdk.ValAddress `json:"not_cosigned_validators"`
}

func NewMsgUnpegNotCosignedClaim(address sdk.ValAddress, txHash string, notCosignedValidators []sdk.ValAddress) MsgUnpegNotCosignedClaim {
	return MsgUnpegNotCosignedClaim{
		Address:               address,
		TxHash:                txHash,
		NotCosignedValidators: notCosignedValidators,
	}
}

// nolint
func (msg MsgUnpegNotCosignedClaim) Route() string { return RouteBridge }
func (msg MsgUnpegNotCosignedClaim) Type() string  { return UnpegNotCosignedClaimMsgType }
func (msg MsgUnpegNotCosignedClaim) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.AccAddress(msg.Address)}
}
func (msg MsgUnpegNotCosignedClaim) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}
func (msg MsgUnpegNotCosignedClaim) GetSignBytes() []byte { return mustMarshalSignBytes(msg) }

func (msg MsgUnpegNotCosignedClaim) String() string {
	return fmt.Sprintf("UnpegNotCosignedClaim{%s#%s#%v}", msg.Address.String(), msg.TxHash, msg.NotCosignedValidators)
}

func (msg MsgUnpegNotCosignedClaim) ValidateBasic() sdk.Error {
	if err := validateValAddress(msg.Address); err != nil {
		return err
	}
	if err := ValidateTxHash(msg.TxHash); err != nil {
		return err
	}
	if len(msg.NotCosignedValidators) == 0 {
		return sdk.ErrInvalidAddress("not cosigned validators should not be empty")
	}
	seen := make(map[string]bool, len(msg.NotCosignedValidators))
	for _, validator := range msg.NotCosignedValidators {
		if err := validateValAddress(validator); err != nil {
			return err
		}
		if seen[validator.String()] {
			return sdk.ErrInvalidAddress(fmt.Sprintf("validator %s listed twice", validator.String()))
		}
		seen[validator.String()] = true
	}
	return nil
}

var _ sdk.Msg = MsgRequestInvitation{}

// MsgRequestInvitation is sent by a validator that wants to join the mainchain multisig
// as a cosigner. FirstCosignerAddress is the member expected to start the invitation.
type MsgRequestInvitation struct {
	Address              sdk.ValAddress `json:"address"`
	MainchainAddress     string         `json:"mainchain_address"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
}

func NewMsgRequestInvitation(address sdk.ValAddress, mainchainAddress string, firstCosignerAddress sdk.ValAddress) MsgRequestInvitation {
	return MsgRequestInvitation{
		Address:              address,
		MainchainAddress:     mainchainAddress,
		FirstCosignerAddress: firstCosignerAddress,
	}
}

// nolint
func (msg MsgRequestInvitation) Route() string { return RouteBridge }
func (msg MsgRequestInvitation) Type() string  { return RequestInvitationMsgType }
func (msg MsgRequestInvitation) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.AccAddress(msg.Address)}
}
func (msg MsgRequestInvitation) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}
func (msg MsgRequestInvitation) GetSignBytes() []byte { return mustMarshalSignBytes(msg) }

func (msg MsgRequestInvitation) String() string {
	return fmt.Sprintf("RequestInvitation{%s#%s#%s}", msg.Address.String(), msg.MainchainAddress,
		msg.FirstCosignerAddress.String())
}

func (msg MsgRequestInvitation) ValidateBasic() sdk.Error {
	if err := validateValAddress(msg.Address); err != nil {
		return err
	}
	if err := ValidateMainchainAddress(msg.MainchainAddress); err != nil {
		return err
	}
	if err := validateValAddress(msg.FirstCosignerAddress); err != nil {
		return err
	}
	if msg.Address.Equals(msg.FirstCosignerAddress) {
		return sdk.ErrInvalidAddress("a validator can not invite itself")
	}
	return nil
}

var _ sdk.Msg = MsgInvitationNotCosignedClaim{}

// MsgInvitationNotCosignedClaim reports that the first cosigner of an invitation
// did not cosign it on the mainchain. TxHash is the hash of the tx that requested the invitation.
type MsgInvitationNotCosignedClaim struct {
	Address              sdk.ValAddress `json:"address"`
	TxHash               string         `json:"tx_hash"`
	ValidatorAddress     sdk.ValAddress `json:"validator_address"`
	MainchainAddress     string         `json:"mainchain_address"`
	FirstCosignerAddress sdk.ValAddress `json:"first_cosigner_address"`
}

func NewMsgInvitationNotCosignedClaim(address sdk.ValAddress, txHash string, validatorAddress sdk.ValAddress,
	mainchainAddress string, firstCosignerAddress sdk.ValAddress) MsgInvitationNotCosignedClaim {
	return MsgInvitationNotCosignedClaim{
		Address:              address,
		TxHash:               txHash,
		ValidatorAddress:     validatorAddress,
		MainchainAddress:     mainchainAddress,
		FirstCosignerAddress: firstCosignerAddress,
	}
}

// nolint
func (msg MsgInvitationNotCosignedClaim) Route() string { return RouteBridge }
func (msg MsgInvitationNotCosignedClaim) Type() string  { return InvitationNotCosignedClaimMsgType }
func (msg MsgInvitationNotCosignedClaim) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.AccAddress(msg.Address)}
}
func (msg MsgInvitationNotCosignedClaim) GetInvolvedAddresses() []sdk.AccAddress {
	return msg.GetSigners()
}
func (msg MsgInvitationNotCosignedClaim) GetSignBytes() []byte { return mustMarshalSignBytes(msg) }

func (msg MsgInvitationNotCosignedClaim) String() string {
	return fmt.Sprintf("InvitationNotCosignedClaim{%s#%s#%s#%s#%s}", msg.Address.String(), msg.TxHash,
		msg.ValidatorAddress.String(), msg.MainchainAddress, msg.FirstCosignerAddress.String())
}

// Claim returns the record this msg asserts, without the reporter and the tx hash
func (msg MsgInvitationNotCosignedClaim) Claim() InvitationNotCosignedClaim {
	return NewInvitationNotCosignedClaim(msg.ValidatorAddress, msg.MainchainAddress, msg.FirstCosignerAddress)
}

func (msg MsgInvitationNotCosignedClaim) ValidateBasic() sdk.Error {
	if err := validateValAddress(msg.Address); err != nil {
		return err
	}
	if err := ValidateTxHash(msg.TxHash); err != nil {
		return err
	}
	return msg.Claim().ValidateBasic()
}
