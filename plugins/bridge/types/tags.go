package types

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	TagAction          = "action"
	TagSender          = "sender"
	TagMainchainTxHash = "mainchain_tx_hash"
	TagTxHash          = "tx_hash"
	TagStatus          = "status"
	TagSequence        = "sequence"
	TagToAddress       = "to_address"
	TagAmount          = "amount"

	TagMainchainAddress      = "mainchain_address"
	TagValidatorAddress      = "validator_address"
	TagFirstCosignerAddress  = "first_cosigner_address"
	TagNotCosignedValidators = "not_cosigned_validators"
)

// CoinsTag renders coins as "100:xpx,5:pxb", the form sdk.ParseCoins reads back
func CoinsTag(coins sdk.Coins) string {
	parts := make([]string, 0, len(coins))
	for _, coin := range coins {
		parts = append(parts, fmt.Sprintf("%d:%s", coin.Amount, coin.Denom))
	}
	return strings.Join(parts, ",")
}
