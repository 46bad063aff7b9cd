package cli

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/client/context"
	"github.com/spf13/cobra"

	clictx "github.com/lcnem/proximax-pegzone/common/client/context"
	"github.com/lcnem/proximax-pegzone/wire"
)

const queryRoute = "bridge"

func queryAndPrint(cdc *wire.Codec, path string) error {
	cliCtx := context.NewCLIContext().WithCodec(cdc)
	res, err := clictx.QueryABCI(cliCtx, fmt.Sprintf("/%s/%s", queryRoute, path))
	if err != nil {
		return err
	}
	if len(res) == 0 {
		fmt.Println("No result")
		return nil
	}
	fmt.Println(string(res))
	return nil
}

func QueryProphecyCmd(cdc *wire.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "prophecy [tx-hash]",
		Short: "query the prophecy of a bridge claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryAndPrint(cdc, "prophecy/"+args[0])
		},
	}
}

func QueryInvitationCmd(cdc *wire.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "invitation [validator]",
		Short: "query the pending invitation of a validator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryAndPrint(cdc, "invitation/"+args[0])
		},
	}
}

func QueryStrikesCmd(cdc *wire.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "strikes [validator]",
		Short: "query how many cosignatures a validator missed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryAndPrint(cdc, "strikes/"+args[0])
		},
	}
}

func QueryUnpegCmd(cdc *wire.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "unpeg [sequence]",
		Short: "query an unpeg record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryAndPrint(cdc, "unpeg/"+args[0])
		},
	}
}

func QuerySequenceCmd(cdc *wire.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "sequence",
		Short: "query the next unpeg sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryAndPrint(cdc, "sequence")
		},
	}
}
