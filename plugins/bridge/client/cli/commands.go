package cli

import (
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/lcnem/proximax-pegzone/wire"
)

func AddCommands(cmd *cobra.Command, cdc *wire.Codec) {
	bridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "ProximaX bridge commands",
	}

	bridgeCmd.AddCommand(
		client.PostCommands(
			PegClaimCmd(cdc),
			UnpegCmd(cdc),
			UnpegNotCosignedClaimCmd(cdc),
			RequestInvitationCmd(cdc),
			InvitationNotCosignedClaimCmd(cdc),
		)...,
	)

	bridgeCmd.AddCommand(client.LineBreak)

	bridgeCmd.AddCommand(
		client.GetCommands(
			QueryProphecyCmd(cdc),
			QueryInvitationCmd(cdc),
			QueryStrikesCmd(cdc),
			QueryUnpegCmd(cdc),
			QuerySequenceCmd(cdc),
		)...,
	)
	cmd.AddCommand(bridgeCmd)
}
