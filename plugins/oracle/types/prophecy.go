package types

import (
	"encoding/json"
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultParamspace is the params subspace holding ProphecyParams
const DefaultParamspace = "oracle"

// DefaultConsensusNeeded defines the default consensus value required for a
// prophecy to be finalized
var DefaultConsensusNeeded sdk.Dec = sdk.NewDecWithPrec(7, 1)

type ProphecyParams struct {
	ConsensusNeeded sdk.Dec `json:"consensus_needed"` // minimum share of the last total power a claim needs
}

func DefaultProphecyParams() ProphecyParams {
	return ProphecyParams{ConsensusNeeded: DefaultConsensusNeeded}
}

func (p ProphecyParams) Validate() error {
	if p.ConsensusNeeded.IsNil() || !p.ConsensusNeeded.GT(sdk.ZeroDec()) || p.ConsensusNeeded.GT(sdk.OneDec()) {
		return ErrMinimumConsensusNeededInvalid()
	}
	return nil
}

// Prophecy is a struct that contains all the metadata of an oracle ritual.
// Claims are indexed by the claim's validator bech32 address and by the claim's json value to allow
// for constant lookup times for any validation/verifiation checks of duplicate claims
type Prophecy struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	//WARNING: Mappings are nondeterministic in Amino,
	// an so iterating over them could result in consensus failure. Iterate over sorted keys only.

	//This is a mapping from a claim to the list of validators that made that claim.
	ClaimValidators map[string][]sdk.ValAddress `json:"claim_validators"`
	//This is a mapping from a validator bech32 address to their claim
	ValidatorClaims map[string]string `json:"validator_claims"`
}

// DBProphecy is what the prophecy becomes when being saved to the database.
// Tendermint/Amino does not support maps so we must serialize those variables into bytes.
type DBProphecy struct {
	ID              string `json:"id"`
	Status          Status `json:"status"`
	ValidatorClaims []byte `json:"validator_claims"`
}

// SerializeForDB serializes a prophecy into a DBProphecy
func (prophecy Prophecy) SerializeForDB() (DBProphecy, error) {
	validatorClaims, err := json.Marshal(prophecy.ValidatorClaims)
	if err != nil {
		return DBProphecy{}, err
	}

	return DBProphecy{
		ID:              prophecy.ID,
		Status:          prophecy.Status,
		ValidatorClaims: validatorClaims,
	}, nil
}

// DeserializeFromDB deserializes a DBProphecy into a prophecy
func (dbProphecy DBProphecy) DeserializeFromDB() (Prophecy, error) {
	var validatorClaims map[string]string
	if err := json.Unmarshal(dbProphecy.ValidatorClaims, &validatorClaims); err != nil {
		return Prophecy{}, err
	}

	claimValidators, err := buildClaimValidators(validatorClaims)
	if err != nil {
		return Prophecy{}, err
	}

	return Prophecy{
		ID:              dbProphecy.ID,
		Status:          dbProphecy.Status,
		ClaimValidators: claimValidators,
		ValidatorClaims: validatorClaims,
	}, nil
}

func buildClaimValidators(validatorClaims map[string]string) (map[string][]sdk.ValAddress, error) {
	claimValidators := make(map[string][]sdk.ValAddress)
	for _, addr := range sortedKeys(validatorClaims) {
		valAddr, err := sdk.ValAddressFromBech32(addr)
		if err != nil {
			return nil, fmt.Errorf("unmarshal validator address err, address=%s", addr)
		}
		claim := validatorClaims[addr]
		claimValidators[claim] = append(claimValidators[claim], valAddr)
	}
	return claimValidators, nil
}

// FindHighestClaim looks through all the existing claims on a given prophecy. It adds up the total power across
// all claims and returns the highest claim, power for that claim, and total power claimed on the prophecy overall.
// Claims with equal power are resolved by their lexical order so every node picks the same one.
func (prophecy Prophecy) FindHighestClaim(ctx sdk.Context, stakeKeeper StakingKeeper) (string, int64, int64) {
	claims := make([]string, 0, len(prophecy.ClaimValidators))
	for claim := range prophecy.ClaimValidators {
		claims = append(claims, claim)
	}
	sort.Strings(claims)

	totalClaimsPower := int64(0)
	highestClaimPower := int64(-1)
	highestClaim := ""
	for _, claim := range claims {
		claimPower := int64(0)
		for _, validatorAddr := range prophecy.ClaimValidators[claim] {
			validator, found := stakeKeeper.GetValidator(ctx, validatorAddr)
			// a validator that left the bonded set no longer counts towards the claim
			if found && validator.GetStatus() == sdk.Bonded {
				claimPower += stakeKeeper.GetLastValidatorPower(ctx, validatorAddr)
			}
		}
		totalClaimsPower += claimPower
		if claimPower > highestClaimPower {
			highestClaimPower = claimPower
			highestClaim = claim
		}
	}
	return highestClaim, highestClaimPower, totalClaimsPower
}

// AddClaim adds a given claim to this prophecy
func (prophecy Prophecy) AddClaim(validator sdk.ValAddress, claim string) {
	prophecy.ValidatorClaims[validator.String()] = claim
	prophecy.ClaimValidators[claim] = append(prophecy.ClaimValidators[claim], validator)
}

// HasClaimFrom reports whether validator already claimed on this prophecy
func (prophecy Prophecy) HasClaimFrom(validator sdk.ValAddress) bool {
	_, ok := prophecy.ValidatorClaims[validator.String()]
	return ok
}

// NewProphecy returns a new Prophecy, initialized in pending status
func NewProphecy(id string) Prophecy {
	return Prophecy{
		ID:              id,
		Status:          NewStatus(PendingStatusText, ""),
		ClaimValidators: make(map[string][]sdk.ValAddress),
		ValidatorClaims: make(map[string]string),
	}
}

// Status is a struct that contains the status of a given prophecy
type Status struct {
	Text       StatusText `json:"text"`
	FinalClaim string     `json:"final_claim"`
}

// NewStatus returns a new Status with the given data contained
func NewStatus(text StatusText, finalClaim string) Status {
	return Status{
		Text:       text,
		FinalClaim: finalClaim,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
