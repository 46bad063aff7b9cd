package types // noalias

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

// BankKeeper defines the coin operations the bridge needs
type BankKeeper interface {
	AddCoins(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coins) (sdk.Coins, sdk.Tags, sdk.Error)
	SubtractCoins(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coins) (sdk.Coins, sdk.Tags, sdk.Error)
}

// OracleKeeper defines the expected oracle keeper
type OracleKeeper interface {
	ProcessClaim(ctx sdk.Context, claim oracle.Claim) (oracle.Status, sdk.Error)
	GetProphecy(ctx sdk.Context, id string) (oracle.Prophecy, bool)
	DeleteProphecy(ctx sdk.Context, id string)
	GetProphecyParams(ctx sdk.Context) oracle.ProphecyParams
	SetProphecyParams(ctx sdk.Context, params oracle.ProphecyParams) sdk.Error
}
