package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	UnpegSequenceKey = "unpegSequence"
)

var (
	unpegRecordKeyPrefix = []byte("unpeg:")
	invitationKeyPrefix  = []byte("invitation:")
	strikesKeyPrefix     = []byte("strikes:")
)

func GetUnpegRecordKey(sequence int64) []byte {
	return append(append([]byte{}, unpegRecordKeyPrefix...), []byte(strconv.FormatInt(sequence, 10))...)
}

func GetInvitationKey(validator sdk.ValAddress) []byte {
	return append(append([]byte{}, invitationKeyPrefix...), validator.Bytes()...)
}

func InvitationKeyPrefix() []byte {
	return invitationKeyPrefix
}

func GetStrikesKey(validator sdk.ValAddress) []byte {
	return append(append([]byte{}, strikesKeyPrefix...), validator.Bytes()...)
}

func StrikesKeyPrefix() []byte {
	return strikesKeyPrefix
}
