package types

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// MainchainAddressLength is the length of a plain ProximaX address
	MainchainAddressLength = 40
	mainchainAddressBytes  = 25
)

// NormalizeMainchainAddress strips the '-' separators of a pretty printed
// ProximaX address and upper-cases it.
func NormalizeMainchainAddress(address string) string {
	return strings.ToUpper(strings.Replace(address, "-", "", -1))
}

// ValidateMainchainAddress checks address is a plain or pretty printed ProximaX address
func ValidateMainchainAddress(address string) sdk.Error {
	if len(address) == 0 {
		return ErrInvalidMainchainAddress("address should not be empty")
	}
	plain := NormalizeMainchainAddress(address)
	if len(plain) != MainchainAddressLength {
		return ErrInvalidMainchainAddress(fmt.Sprintf("%s should have %d characters", address, MainchainAddressLength))
	}
	decoded, err := base32.StdEncoding.DecodeString(plain)
	if err != nil {
		return ErrInvalidMainchainAddress(fmt.Sprintf("%s is not base32 encoded", address))
	}
	if len(decoded) != mainchainAddressBytes {
		return ErrInvalidMainchainAddress(fmt.Sprintf("%s should decode to %d bytes", address, mainchainAddressBytes))
	}
	return nil
}

// NormalizeTxHash upper-cases a hex tx hash. Claims about one tx share a single
// prophecy whatever case the hash was submitted in.
func NormalizeTxHash(hash string) string {
	return strings.ToUpper(hash)
}

func ValidateTxHash(hash string) sdk.Error {
	if len(hash) != TxHashLength {
		return ErrInvalidTxHash(hash)
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return ErrInvalidTxHash(hash)
	}
	return nil
}

func validateValAddress(address sdk.ValAddress) sdk.Error {
	if len(address) != sdk.AddrLen {
		return sdk.ErrInvalidAddress(fmt.Sprintf("validator address %q should have %d bytes", address.String(), sdk.AddrLen))
	}
	return nil
}

func validateAccAddress(address sdk.AccAddress) sdk.Error {
	if len(address) != sdk.AddrLen {
		return sdk.ErrInvalidAddress(fmt.Sprintf("address %q should have %d bytes", address.String(), sdk.AddrLen))
	}
	return nil
}

func validateAmount(amount sdk.Coins) sdk.Error {
	if !amount.IsValid() || !amount.IsPositive() {
		return ErrInvalidAmount(fmt.Sprintf("amount %q should be valid positive coins", amount.String()))
	}
	return nil
}
