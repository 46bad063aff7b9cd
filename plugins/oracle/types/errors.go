package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 11

	// oracle reserves error 1000-1100
	CodeProphecyNotFound              sdk.CodeType = 1000
	CodeMinimumConsensusNeededInvalid sdk.CodeType = 1001
	CodeNoClaims                      sdk.CodeType = 1002
	CodeInvalidIdentifier             sdk.CodeType = 1003
	CodeProphecyFinalized             sdk.CodeType = 1004
	CodeDuplicateMessage              sdk.CodeType = 1005
	CodeInvalidClaim                  sdk.CodeType = 1006
	CodeInvalidValidator              sdk.CodeType = 1007
	CodeInternalDB                    sdk.CodeType = 1008
)

func ErrProphecyNotFound() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeProphecyNotFound, "prophecy with given id not found")
}

func ErrMinimumConsensusNeededInvalid() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeMinimumConsensusNeededInvalid, "minimum consensus proportion of validator staking power must be > 0 and <= 1")
}

func ErrNoClaims() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeNoClaims, "cannot create prophecy without initial claim")
}

func ErrInvalidIdentifier() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidIdentifier, "invalid identifier provided, must be a nonempty string")
}

func ErrProphecyFinalized() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeProphecyFinalized, "prophecy already finalized")
}

func ErrDuplicateMessage() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeDuplicateMessage, "already processed message from validator for this id")
}

func ErrInvalidClaim() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidClaim, "claim cannot be empty string")
}

func ErrInvalidValidator() sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidValidator, "claim must be made by actively bonded validator")
}

func ErrInternalDB(err error) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInternalDB, "failed prophecy serialization/deserialization: "+err.Error())
}
