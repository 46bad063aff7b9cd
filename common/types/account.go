package types

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"

	"github.com/lcnem/proximax-pegzone/wire"
)

var _ NamedAccount = (*AppAccount)(nil)

type NamedAccount interface {
	sdk.Account
	GetName() string
	SetName(string)
}

// AppAccount holds pegged coins on the zone. The name is only a label set at genesis.
type AppAccount struct {
	auth.BaseAccount
	Name string `json:"name"`
}

// nolint
func (acc AppAccount) GetName() string      { return acc.Name }
func (acc *AppAccount) SetName(name string) { acc.Name = name }

func (acc *AppAccount) Clone() sdk.Account {
	baseAcc := acc.BaseAccount.Clone().(*auth.BaseAccount)
	return &AppAccount{
		BaseAccount: *baseAcc,
		Name:        acc.Name,
	}
}

func (acc AppAccount) String() string {
	res := struct {
		Name          string    `json:"name"`
		Address       string    `json:"address"`
		AccountNumber int64     `json:"id"`
		Sequence      int64     `json:"sequence"`
		Coins         sdk.Coins `json:"coins"`
	}{
		Name:          acc.GetName(),
		Address:       acc.GetAddress().String(),
		AccountNumber: acc.GetAccountNumber(),
		Sequence:      acc.GetSequence(),
		Coins:         acc.GetCoins(),
	}
	str, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return "Invalid account"
	}
	return string(str)
}

// GetAccountDecoder decodes accounts stored by the app
func GetAccountDecoder(cdc *wire.Codec) auth.AccountDecoder {
	return func(accBytes []byte) (res sdk.Account, err error) {
		if len(accBytes) == 0 {
			return nil, sdk.ErrTxDecode("accBytes are empty")
		}
		acct := new(AppAccount)
		err = cdc.UnmarshalBinaryBare(accBytes, &acct)
		if err != nil {
			return nil, err
		}
		return acct, err
	}
}

// ProtoAppAccount is the account prototype used by the account keeper
func ProtoAppAccount() sdk.Account {
	return &AppAccount{}
}
