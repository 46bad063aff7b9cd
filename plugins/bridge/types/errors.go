package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 12

	CodeInvalidTxHash           sdk.CodeType = 1
	CodeInvalidMainchainAddress sdk.CodeType = 2
	CodeInvalidAmount           sdk.CodeType = 3
	CodeInvalidSequence         sdk.CodeType = 4
	CodeDuplicateInvitation     sdk.CodeType = 5
	CodeInvitationNotFound      sdk.CodeType = 6
	CodeInvalidClaim            sdk.CodeType = 7
	CodeUnpegRecordNotFound     sdk.CodeType = 8
)

//----------------------------------------
// Error constructors

func ErrInvalidTxHash(hash string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidTxHash,
		fmt.Sprintf("invalid tx hash %q, expected %d hex characters", hash, TxHashLength))
}

func ErrInvalidMainchainAddress(msg string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidMainchainAddress, fmt.Sprintf("invalid mainchain address: %s", msg))
}

func ErrInvalidAmount(msg string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidAmount, msg)
}

func ErrInvalidSequence(msg string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidSequence, msg)
}

func ErrDuplicateInvitation(validator sdk.ValAddress) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeDuplicateInvitation,
		fmt.Sprintf("validator %s already has a pending invitation", validator.String()))
}

func ErrInvitationNotFound(validator sdk.ValAddress) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvitationNotFound,
		fmt.Sprintf("no pending invitation for validator %s", validator.String()))
}

func ErrInvalidClaim(msg string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidClaim, fmt.Sprintf("failed to parse claim: %s", msg))
}

func ErrUnpegRecordNotFound(sequence int64) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeUnpegRecordNotFound, fmt.Sprintf("unpeg record %d not found", sequence))
}
