package api

import (
	"github.com/gorilla/mux"

	"github.com/cosmos/cosmos-sdk/client/context"

	"github.com/lcnem/proximax-pegzone/plugins/api/handlers"
	"github.com/lcnem/proximax-pegzone/wire"
)

type server struct {
	router *mux.Router

	// handler dependencies
	ctx context.CLIContext
	cdc *wire.Codec

	query handlers.QueryFn
}

// NewServer provides a new server structure.
func newServer(ctx context.CLIContext, cdc *wire.Codec) *server {
	return &server{
		router: mux.NewRouter(),
		ctx:    ctx,
		cdc:    cdc,
		query: func(path string) ([]byte, error) {
			return ctx.Query(path, nil)
		},
	}
}
