package handlers

import (
	"fmt"
	"net/http"

	"github.com/lcnem/proximax-pegzone/version"
)

// QueryFn runs an ABCI query against the connected node
type QueryFn func(path string) ([]byte, error)

// CLIVersionReqHandler handles requests to the cli version REST handler endpoint
func CLIVersionReqHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(version.Version))
}

// NodeVersionReqHandler handles requests to the connected node version REST handler endpoint
func NodeVersionReqHandler(query QueryFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := query("/app/version")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(fmt.Sprintf("Could't query version. Error: %s", err.Error())))
			return
		}
		w.Write(version)
	}
}

func throw(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(message))
}
