package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ValidatorClaim is one validator's claim as reported by queries
type ValidatorClaim struct {
	Validator sdk.ValAddress `json:"validator"`
	Claim     string         `json:"claim"`
}

// ProphecyResponse is the query view of a prophecy. Claims are sorted by validator address.
type ProphecyResponse struct {
	ID     string           `json:"id"`
	Status Status           `json:"status"`
	Claims []ValidatorClaim `json:"claims"`
}

func NewProphecyResponse(prophecy Prophecy) (ProphecyResponse, error) {
	claims := make([]ValidatorClaim, 0, len(prophecy.ValidatorClaims))
	for _, addr := range sortedKeys(prophecy.ValidatorClaims) {
		valAddr, err := sdk.ValAddressFromBech32(addr)
		if err != nil {
			return ProphecyResponse{}, err
		}
		claims = append(claims, ValidatorClaim{Validator: valAddr, Claim: prophecy.ValidatorClaims[addr]})
	}
	return ProphecyResponse{
		ID:     prophecy.ID,
		Status: prophecy.Status,
		Claims: claims,
	}, nil
}
