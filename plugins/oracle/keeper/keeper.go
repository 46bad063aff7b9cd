package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/params"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/plugins/oracle/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

var (
	prophecyKeyPrefix = []byte("prophecy:")

	ParamStoreKeyProphecyParams = []byte("prophecyparams")
)

func ParamTypeTable() params.TypeTable {
	return params.NewTypeTable(
		ParamStoreKeyProphecyParams, types.ProphecyParams{},
	)
}

// Keeper maintains the link to data storage and
// exposes getter/setter methods for the various parts of the state machine
type Keeper struct {
	cdc      *wire.Codec
	storeKey sdk.StoreKey

	paramSpace params.Subspace

	stakeKeeper types.StakingKeeper
}

// NewKeeper creates new instances of the oracle Keeper
func NewKeeper(cdc *wire.Codec, storeKey sdk.StoreKey, paramSpace params.Subspace, stakeKeeper types.StakingKeeper) Keeper {
	return Keeper{
		cdc:         cdc,
		storeKey:    storeKey,
		paramSpace:  paramSpace.WithTypeTable(ParamTypeTable()),
		stakeKeeper: stakeKeeper,
	}
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "oracle")
}

func prophecyKey(id string) []byte {
	return append(append([]byte{}, prophecyKeyPrefix...), []byte(id)...)
}

// GetProphecyParams returns the stored params, falling back to the defaults before genesis sets them
func (k Keeper) GetProphecyParams(ctx sdk.Context) types.ProphecyParams {
	prophecyParams := types.DefaultProphecyParams()
	k.paramSpace.GetIfExists(ctx, ParamStoreKeyProphecyParams, &prophecyParams)
	return prophecyParams
}

func (k Keeper) SetProphecyParams(ctx sdk.Context, prophecyParams types.ProphecyParams) sdk.Error {
	if err := prophecyParams.Validate(); err != nil {
		return types.ErrMinimumConsensusNeededInvalid()
	}
	k.paramSpace.Set(ctx, ParamStoreKeyProphecyParams, prophecyParams)
	return nil
}

// GetProphecy gets the entire prophecy data struct for a given id
func (k Keeper) GetProphecy(ctx sdk.Context, id string) (types.Prophecy, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(prophecyKey(id))
	if bz == nil {
		return types.Prophecy{}, false
	}

	var dbProphecy types.DBProphecy
	k.cdc.MustUnmarshalBinaryBare(bz, &dbProphecy)

	deSerializedProphecy, err := dbProphecy.DeserializeFromDB()
	if err != nil {
		k.Logger(ctx).Error("failed to deserialize prophecy", "id", id, "err", err)
		return types.Prophecy{}, false
	}

	return deSerializedProphecy, true
}

// DeleteProphecy delete prophecy for a given id
func (k Keeper) DeleteProphecy(ctx sdk.Context, id string) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(prophecyKey(id))
}

// setProphecy saves a prophecy with an initial claim
func (k Keeper) setProphecy(ctx sdk.Context, prophecy types.Prophecy) sdk.Error {
	serializedProphecy, err := prophecy.SerializeForDB()
	if err != nil {
		return types.ErrInternalDB(err)
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(prophecyKey(prophecy.ID), k.cdc.MustMarshalBinaryBare(serializedProphecy))
	return nil
}

// ProcessClaim adds claim to the prophecy it belongs to and reports the resulting status
func (k Keeper) ProcessClaim(ctx sdk.Context, claim types.Claim) (types.Status, sdk.Error) {
	if !k.checkActiveValidator(ctx, claim.ValidatorAddress) {
		return types.Status{}, types.ErrInvalidValidator()
	}

	if claim.ID == "" {
		return types.Status{}, types.ErrInvalidIdentifier()
	}

	if claim.Content == "" {
		return types.Status{}, types.ErrInvalidClaim()
	}

	prophecy, found := k.GetProphecy(ctx, claim.ID)
	if !found {
		prophecy = types.NewProphecy(claim.ID)
	}

	switch prophecy.Status.Text {
	case types.PendingStatusText:
		// continue processing
	default:
		return types.Status{}, types.ErrProphecyFinalized()
	}

	if prophecy.HasClaimFrom(claim.ValidatorAddress) {
		return types.Status{}, types.ErrDuplicateMessage()
	}

	prophecy.AddClaim(claim.ValidatorAddress, claim.Content)
	prophecy = k.processCompletion(ctx, prophecy)

	if err := k.setProphecy(ctx, prophecy); err != nil {
		return types.Status{}, err
	}
	k.Logger(ctx).Debug("processed claim", "id", claim.ID,
		"validator", claim.ValidatorAddress.String(), "status", prophecy.Status.Text.String())
	return prophecy.Status, nil
}

func (k Keeper) checkActiveValidator(ctx sdk.Context, validatorAddress sdk.ValAddress) bool {
	validator, found := k.stakeKeeper.GetValidator(ctx, validatorAddress)
	if !found {
		return false
	}

	return validator.GetStatus() == sdk.Bonded
}

// processCompletion looks at a given prophecy
// and assesses whether the claim with the highest power on that prophecy has enough
// power to be considered successful, or alternatively,
// will never be able to become successful due to not enough validation power being
// left to push it over the threshold required for consensus.
func (k Keeper) processCompletion(ctx sdk.Context, prophecy types.Prophecy) types.Prophecy {
	highestClaim, highestClaimPower, totalClaimsPower := prophecy.FindHighestClaim(ctx, k.stakeKeeper)
	totalPower := k.stakeKeeper.GetLastTotalPower(ctx)
	if totalPower <= 0 {
		return prophecy
	}

	highestConsensusRatio := sdk.NewDec(highestClaimPower).Quo(sdk.NewDec(totalPower))
	remainingPossibleClaimPower := totalPower - totalClaimsPower
	highestPossibleClaimPower := highestClaimPower + remainingPossibleClaimPower
	highestPossibleConsensusRatio := sdk.NewDec(highestPossibleClaimPower).Quo(sdk.NewDec(totalPower))

	consensusNeeded := k.GetProphecyParams(ctx).ConsensusNeeded
	if highestConsensusRatio.GTE(consensusNeeded) {
		prophecy.Status.Text = types.SuccessStatusText
		prophecy.Status.FinalClaim = highestClaim
	} else if highestPossibleConsensusRatio.LT(consensusNeeded) {
		prophecy.Status.Text = types.FailedStatusText
	}
	return prophecy
}
