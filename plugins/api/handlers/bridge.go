package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const bridgeQueryPrefix = "/bridge"

// bridgeQueryHandler forwards a REST request to one of the bridge ABCI query paths.
// The node already renders the result as indented JSON.
func bridgeQueryHandler(query QueryFn, buildPath func(vars map[string]string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := buildPath(mux.Vars(r))
		if err != nil {
			throw(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := query(bridgeQueryPrefix + path)
		if err != nil {
			status := http.StatusInternalServerError
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				status = http.StatusNotFound
			}
			throw(w, status, fmt.Sprintf("couldn't query bridge. Error: %s", err.Error()))
			return
		}
		if len(res) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(res)
	}
}

func validatorPath(kind string) func(vars map[string]string) (string, error) {
	return func(vars map[string]string) (string, error) {
		validator := vars["validator"]
		if _, err := sdk.ValAddressFromBech32(validator); err != nil {
			return "", err
		}
		return fmt.Sprintf("/%s/%s", kind, validator), nil
	}
}

// ProphecyReqHandler returns the prophecy of a peg or not-cosigned claim
func ProphecyReqHandler(query QueryFn) http.HandlerFunc {
	return bridgeQueryHandler(query, func(vars map[string]string) (string, error) {
		return "/prophecy/" + strings.ToUpper(vars["hash"]), nil
	})
}

// InvitationReqHandler returns the pending invitation of a validator
func InvitationReqHandler(query QueryFn) http.HandlerFunc {
	return bridgeQueryHandler(query, validatorPath("invitation"))
}

// StrikesReqHandler returns the missed cosignature count of a validator
func StrikesReqHandler(query QueryFn) http.HandlerFunc {
	return bridgeQueryHandler(query, validatorPath("strikes"))
}

// UnpegReqHandler returns the unpeg record with the given sequence
func UnpegReqHandler(query QueryFn) http.HandlerFunc {
	return bridgeQueryHandler(query, func(vars map[string]string) (string, error) {
		return "/unpeg/" + vars["sequence"], nil
	})
}

func SequenceReqHandler(query QueryFn) http.HandlerFunc {
	return bridgeQueryHandler(query, func(map[string]string) (string, error) {
		return "/sequence", nil
	})
}
