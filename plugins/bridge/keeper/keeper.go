package keeper

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/pubsub"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
	"github.com/lcnem/proximax-pegzone/wire"
)

// Keeper maintains the link to data storage and
// exposes getter/setter methods for the various parts of the state machine
type Keeper struct {
	cdc *wire.Codec // The wire codec for binary encoding/decoding.

	storeKey sdk.StoreKey // The key used to access the store from the Context.

	oracleKeeper types.OracleKeeper

	// The reference to the CoinKeeper to modify balances
	bankKeeper types.BankKeeper

	PbsbServer *pubsub.Server
}

// NewKeeper creates new instances of the bridge Keeper
func NewKeeper(cdc *wire.Codec, storeKey sdk.StoreKey, oracleKeeper types.OracleKeeper, bankKeeper types.BankKeeper) Keeper {
	return Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		oracleKeeper: oracleKeeper,
		bankKeeper:   bankKeeper,
	}
}

func (k *Keeper) SetPbsbServer(server *pubsub.Server) {
	k.PbsbServer = server
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", types.ModuleName)
}

func (k Keeper) OracleKeeper() types.OracleKeeper {
	return k.oracleKeeper
}

func (k Keeper) IncreaseSequence(ctx sdk.Context, key string) {
	currentSequence := k.GetCurrentSequence(ctx, key)
	k.SetSequence(ctx, key, currentSequence+1)
}

func (k Keeper) SetSequence(ctx sdk.Context, key string, sequence int64) {
	store := ctx.KVStore(k.storeKey)
	store.Set([]byte(key), []byte(strconv.FormatInt(sequence, 10)))
}

func (k Keeper) GetCurrentSequence(ctx sdk.Context, key string) int64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get([]byte(key))
	if bz == nil {
		return types.StartSequence
	}

	sequence, err := strconv.ParseInt(string(bz), 10, 64)
	if err != nil {
		panic(fmt.Errorf("wrong sequence, key=%s, sequence=%s", key, string(bz)))
	}
	return sequence
}

// ProcessPegClaim records a validator's view of a mainchain deposit and mints
// the pegged coins once enough power agrees on it.
func (k Keeper) ProcessPegClaim(ctx sdk.Context, msg types.MsgPegClaim) (oracle.Status, sdk.Error) {
	claim, err := types.CreateOracleClaimFromPegClaimMsg(msg)
	if err != nil {
		return oracle.Status{}, err
	}
	status, err := k.oracleKeeper.ProcessClaim(ctx, claim)
	if err != nil {
		return oracle.Status{}, err
	}

	switch status.Text {
	case oracle.SuccessStatusText:
		pegClaim, err := types.GetPegClaimFromOracleClaim(status.FinalClaim)
		if err != nil {
			return oracle.Status{}, err
		}
		if _, _, err := k.bankKeeper.AddCoins(ctx, pegClaim.ToAddress, pegClaim.Amount); err != nil {
			return oracle.Status{}, err
		}
		k.Logger(ctx).Info("peg succeeded", "mainchain_tx_hash", pegClaim.MainchainTxHash,
			"to", pegClaim.ToAddress.String(), "amount", pegClaim.Amount.String())
	case oracle.FailedStatusText:
		k.oracleKeeper.DeleteProphecy(ctx, claim.ID)
		k.Logger(ctx).Info("peg claim failed", "mainchain_tx_hash", msg.MainchainTxHash)
	}
	return status, nil
}

// ProcessUnpeg burns the coins of the sender and records the payout the cosigners owe
func (k Keeper) ProcessUnpeg(ctx sdk.Context, msg types.MsgUnpeg) (types.UnpegRecord, sdk.Error) {
	if _, _, err := k.bankKeeper.SubtractCoins(ctx, msg.Address, msg.Amount); err != nil {
		return types.UnpegRecord{}, err
	}

	sequence := k.GetCurrentSequence(ctx, types.UnpegSequenceKey)
	record := types.UnpegRecord{
		Sequence:             sequence,
		From:                 msg.Address,
		MainchainAddress:     msg.MainchainAddress,
		Amount:               msg.Amount,
		FirstCosignerAddress: msg.FirstCosignerAddress,
		Height:               ctx.BlockHeight(),
	}
	ctx.KVStore(k.storeKey).Set(types.GetUnpegRecordKey(sequence), k.cdc.MustMarshalBinaryBare(record))
	k.IncreaseSequence(ctx, types.UnpegSequenceKey)
	return record, nil
}

func (k Keeper) GetUnpegRecord(ctx sdk.Context, sequence int64) (types.UnpegRecord, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetUnpegRecordKey(sequence))
	if bz == nil {
		return types.UnpegRecord{}, false
	}
	var record types.UnpegRecord
	k.cdc.MustUnmarshalBinaryBare(bz, &record)
	return record, true
}

// ProcessUnpegNotCosignedClaim strikes every listed validator once the claim is agreed on
func (k Keeper) ProcessUnpegNotCosignedClaim(ctx sdk.Context, msg types.MsgUnpegNotCosignedClaim) (oracle.Status, sdk.Error) {
	claim, err := types.CreateOracleClaimFromUnpegNotCosignedClaimMsg(msg)
	if err != nil {
		return oracle.Status{}, err
	}
	status, err := k.oracleKeeper.ProcessClaim(ctx, claim)
	if err != nil {
		return oracle.Status{}, err
	}

	switch status.Text {
	case oracle.SuccessStatusText:
		notCosigned, err := types.GetUnpegNotCosignedClaimFromOracleClaim(status.FinalClaim)
		if err != nil {
			return oracle.Status{}, err
		}
		for _, validator := range notCosigned.NotCosignedValidators {
			k.AddStrike(ctx, validator)
		}
	case oracle.FailedStatusText:
		k.oracleKeeper.DeleteProphecy(ctx, claim.ID)
	}
	return status, nil
}

// ProcessRequestInvitation stores a pending invitation. A validator has at most one.
func (k Keeper) ProcessRequestInvitation(ctx sdk.Context, msg types.MsgRequestInvitation) (types.Invitation, sdk.Error) {
	if _, found := k.GetInvitation(ctx, msg.Address); found {
		return types.Invitation{}, types.ErrDuplicateInvitation(msg.Address)
	}
	invitation := types.NewInvitation(msg, ctx.BlockHeight())
	k.SetInvitation(ctx, invitation)
	return invitation, nil
}

// ProcessInvitationNotCosignedClaim strikes the first cosigner of an invitation
// once enough power agrees it was not cosigned, and drops the invitation.
func (k Keeper) ProcessInvitationNotCosignedClaim(ctx sdk.Context, msg types.MsgInvitationNotCosignedClaim) (oracle.Status, sdk.Error) {
	invitation, found := k.GetInvitation(ctx, msg.ValidatorAddress)
	if !found || !invitation.Matches(msg.Claim()) {
		return oracle.Status{}, types.ErrInvitationNotFound(msg.ValidatorAddress)
	}

	claim, err := types.CreateOracleClaimFromInvitationNotCosignedClaimMsg(msg)
	if err != nil {
		return oracle.Status{}, err
	}
	status, err := k.oracleKeeper.ProcessClaim(ctx, claim)
	if err != nil {
		return oracle.Status{}, err
	}

	switch status.Text {
	case oracle.SuccessStatusText:
		notCosigned, err := types.GetInvitationNotCosignedClaimFromOracleClaim(status.FinalClaim)
		if err != nil {
			return oracle.Status{}, err
		}
		k.AddStrike(ctx, notCosigned.FirstCosignerAddress)
		k.DeleteInvitation(ctx, notCosigned.ValidatorAddress)
		k.Logger(ctx).Info("invitation was not cosigned", "validator", notCosigned.ValidatorAddress.String(),
			"first_cosigner", notCosigned.FirstCosignerAddress.String())
	case oracle.FailedStatusText:
		k.oracleKeeper.DeleteProphecy(ctx, claim.ID)
	}
	return status, nil
}

func (k Keeper) GetInvitation(ctx sdk.Context, validator sdk.ValAddress) (types.Invitation, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetInvitationKey(validator))
	if bz == nil {
		return types.Invitation{}, false
	}
	var invitation types.Invitation
	k.cdc.MustUnmarshalBinaryBare(bz, &invitation)
	return invitation, true
}

func (k Keeper) SetInvitation(ctx sdk.Context, invitation types.Invitation) {
	ctx.KVStore(k.storeKey).Set(types.GetInvitationKey(invitation.ValidatorAddress), k.cdc.MustMarshalBinaryBare(invitation))
}

func (k Keeper) DeleteInvitation(ctx sdk.Context, validator sdk.ValAddress) {
	ctx.KVStore(k.storeKey).Delete(types.GetInvitationKey(validator))
}

// GetInvitations returns all pending invitations ordered by validator address bytes
func (k Keeper) GetInvitations(ctx sdk.Context) []types.Invitation {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.InvitationKeyPrefix())
	defer iter.Close()

	var invitations []types.Invitation
	for ; iter.Valid(); iter.Next() {
		var invitation types.Invitation
		k.cdc.MustUnmarshalBinaryBare(iter.Value(), &invitation)
		invitations = append(invitations, invitation)
	}
	return invitations
}

func (k Keeper) GetStrikes(ctx sdk.Context, validator sdk.ValAddress) int64 {
	bz := ctx.KVStore(k.storeKey).Get(types.GetStrikesKey(validator))
	if bz == nil {
		return 0
	}
	strikes, err := strconv.ParseInt(string(bz), 10, 64)
	if err != nil {
		panic(fmt.Errorf("wrong strikes, validator=%s, strikes=%s", validator.String(), string(bz)))
	}
	return strikes
}

func (k Keeper) SetStrikes(ctx sdk.Context, validator sdk.ValAddress, strikes int64) {
	ctx.KVStore(k.storeKey).Set(types.GetStrikesKey(validator), []byte(strconv.FormatInt(strikes, 10)))
}

func (k Keeper) AddStrike(ctx sdk.Context, validator sdk.ValAddress) {
	strikes := k.GetStrikes(ctx, validator) + 1
	k.SetStrikes(ctx, validator, strikes)
	k.Logger(ctx).Info("validator struck for a missing cosignature", "validator", validator.String(), "strikes", strikes)
}

// GetAllStrikes returns every validator with at least one strike
func (k Keeper) GetAllStrikes(ctx sdk.Context) []types.ValidatorStrikes {
	store := ctx.KVStore(k.storeKey)
	iter := sdk.KVStorePrefixIterator(store, types.StrikesKeyPrefix())
	defer iter.Close()

	var all []types.ValidatorStrikes
	for ; iter.Valid(); iter.Next() {
		strikes, err := strconv.ParseInt(string(iter.Value()), 10, 64)
		if err != nil {
			panic(fmt.Errorf("wrong strikes, key=%X", iter.Key()))
		}
		all = append(all, types.ValidatorStrikes{
			ValidatorAddress: sdk.ValAddress(iter.Key()[len(types.StrikesKeyPrefix()):]),
			Strikes:          strikes,
		})
	}
	return all
}
