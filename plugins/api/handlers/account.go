package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

// AccountReqHandler queries for an account and returns its information.
func AccountReqHandler(cdc *wire.Codec, query QueryFn) http.HandlerFunc {
	type response struct {
		Name          string    `json:"name"`
		Address       string    `json:"address"`
		AccountNumber int64     `json:"account_number"`
		Sequence      int64     `json:"sequence"`
		Coins         sdk.Coins `json:"coins"`
	}

	accDecoder := types.GetAccountDecoder(cdc)

	return func(w http.ResponseWriter, r *http.Request) {
		bech32addr := mux.Vars(r)["address"]

		if _, err := sdk.AccAddressFromBech32(bech32addr); err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := query(fmt.Sprintf("/account/%s", bech32addr))
		if err != nil {
			throw(w, http.StatusInternalServerError, fmt.Sprintf("couldn't query account. Error: %s", err.Error()))
			return
		}

		// the query will return empty if there is no data for this account
		if len(res) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		account, err := accDecoder(res)
		if err != nil {
			errMsg := fmt.Sprintf("couldn't parse query result. Result: %s. Error: %s", res, err.Error())
			throw(w, http.StatusInternalServerError, errMsg)
			return
		}

		resp := response{
			Address:       account.GetAddress().String(),
			AccountNumber: account.GetAccountNumber(),
			Sequence:      account.GetSequence(),
			Coins:         account.GetCoins(),
		}
		if named, ok := account.(types.NamedAccount); ok {
			resp.Name = named.GetName()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
