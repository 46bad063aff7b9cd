package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState is the bridge section of the app genesis
type GenesisState struct {
	ConsensusNeeded sdk.Dec            `json:"consensus_needed"`
	Invitations     []Invitation       `json:"invitations"`
	Strikes         []ValidatorStrikes `json:"strikes"`
	UnpegSequence   int64              `json:"unpeg_sequence"`
}

func NewGenesisState(consensusNeeded sdk.Dec, invitations []Invitation, strikes []ValidatorStrikes, unpegSequence int64) GenesisState {
	return GenesisState{
		ConsensusNeeded: consensusNeeded,
		Invitations:     invitations,
		Strikes:         strikes,
		UnpegSequence:   unpegSequence,
	}
}

func DefaultGenesisState(consensusNeeded sdk.Dec) GenesisState {
	return NewGenesisState(consensusNeeded, nil, nil, StartSequence)
}

func ValidateGenesis(data GenesisState) error {
	if !data.ConsensusNeeded.GT(sdk.ZeroDec()) || data.ConsensusNeeded.GT(sdk.OneDec()) {
		return fmt.Errorf("consensus needed %s should be in (0, 1]", data.ConsensusNeeded.String())
	}
	seen := make(map[string]bool, len(data.Invitations))
	for _, invitation := range data.Invitations {
		msg := NewMsgRequestInvitation(invitation.ValidatorAddress, invitation.MainchainAddress, invitation.FirstCosignerAddress)
		if err := msg.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid invitation %s: %s", invitation.ValidatorAddress.String(), err.Error())
		}
		if seen[invitation.ValidatorAddress.String()] {
			return fmt.Errorf("duplicate invitation for %s", invitation.ValidatorAddress.String())
		}
		seen[invitation.ValidatorAddress.String()] = true
	}
	for _, s := range data.Strikes {
		if err := validateValAddress(s.ValidatorAddress); err != nil {
			return fmt.Errorf("invalid strikes entry: %s", err.Error())
		}
		if s.Strikes < 0 {
			return fmt.Errorf("negative strikes for %s", s.ValidatorAddress.String())
		}
	}
	if data.UnpegSequence < StartSequence {
		return fmt.Errorf("unpeg sequence %d should not be negative", data.UnpegSequence)
	}
	return nil
}
