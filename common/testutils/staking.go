package testutils

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/stake"
)

// FakeStakingKeeper serves validator sets to keepers under test without a stake store.
type FakeStakingKeeper struct {
	validators map[string]stake.Validator
	powers     map[string]int64
}

func NewFakeStakingKeeper() *FakeStakingKeeper {
	return &FakeStakingKeeper{
		validators: make(map[string]stake.Validator),
		powers:     make(map[string]int64),
	}
}

// AddBondedValidator registers a bonded validator with the given last power
func (k *FakeStakingKeeper) AddBondedValidator(addr sdk.ValAddress, power int64) {
	k.validators[addr.String()] = stake.Validator{OperatorAddr: addr, Status: sdk.Bonded}
	k.powers[addr.String()] = power
}

func (k *FakeStakingKeeper) Unbond(addr sdk.ValAddress) {
	if v, ok := k.validators[addr.String()]; ok {
		v.Status = sdk.Unbonded
		k.validators[addr.String()] = v
	}
}

func (k *FakeStakingKeeper) GetValidator(_ sdk.Context, addr sdk.ValAddress) (stake.Validator, bool) {
	v, ok := k.validators[addr.String()]
	return v, ok
}

func (k *FakeStakingKeeper) GetLastValidatorPower(_ sdk.Context, operator sdk.ValAddress) int64 {
	return k.powers[operator.String()]
}

func (k *FakeStakingKeeper) GetLastTotalPower(_ sdk.Context) int64 {
	var total int64
	for addr, v := range k.validators {
		if v.Status == sdk.Bonded {
			total += k.powers[addr]
		}
	}
	return total
}
