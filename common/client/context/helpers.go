package context

import (
	"github.com/pkg/errors"

	"github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"

	"github.com/cosmos/cosmos-sdk/client/context"
)

// QueryABCI runs a custom app query such as "/bridge/unpeg/3" against the connected node
func QueryABCI(ctx context.CLIContext, path string) (res []byte, err error) {
	return query(ctx, path, nil)
}

func query(ctx context.CLIContext, path string, key common.HexBytes) (res []byte, err error) {
	node, err := ctx.GetNode()
	if err != nil {
		return res, err
	}
	opts := rpcclient.ABCIQueryOptions{
		Height: ctx.Height,
		Prove:  !ctx.TrustNode,
	}
	result, err := node.ABCIQueryWithOptions(path, key, opts)
	if err != nil {
		return res, errors.Wrapf(err, "query %s", path)
	}
	resp := result.Response
	if resp.Code != uint32(0) {
		return res, errors.Errorf("query failed: (%d) %s", resp.Code, resp.Log)
	}
	return resp.Value, nil
}
