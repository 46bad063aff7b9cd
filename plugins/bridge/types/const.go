package types

const (
	ModuleName  = "bridge"
	RouteBridge = "bridge"

	PegClaimMsgType                   = "pegClaim"
	UnpegMsgType                      = "unpeg"
	UnpegNotCosignedClaimMsgType      = "unpegNotCosignedClaim"
	RequestInvitationMsgType          = "requestInvitation"
	InvitationNotCosignedClaimMsgType = "invitationNotCosignedClaim"

	StartSequence int64 = 0

	// TxHashLength is the hex length of ProximaX and tendermint transaction hashes
	TxHashLength = 64
)
