package bridge

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

// InitGenesis sets the consensus threshold and imports pending invitations and strikes
func InitGenesis(ctx sdk.Context, keeper Keeper, data types.GenesisState) error {
	if err := types.ValidateGenesis(data); err != nil {
		return err
	}
	if err := keeper.OracleKeeper().SetProphecyParams(ctx, oracle.ProphecyParams{ConsensusNeeded: data.ConsensusNeeded}); err != nil {
		return err
	}
	for _, invitation := range data.Invitations {
		keeper.SetInvitation(ctx, invitation)
	}
	for _, s := range data.Strikes {
		keeper.SetStrikes(ctx, s.ValidatorAddress, s.Strikes)
	}
	keeper.SetSequence(ctx, types.UnpegSequenceKey, data.UnpegSequence)
	return nil
}

func ExportGenesis(ctx sdk.Context, keeper Keeper) types.GenesisState {
	return types.NewGenesisState(
		keeper.OracleKeeper().GetProphecyParams(ctx).ConsensusNeeded,
		keeper.GetInvitations(ctx),
		keeper.GetAllStrikes(ctx),
		keeper.GetCurrentSequence(ctx, types.UnpegSequenceKey),
	)
}
