package cli

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lcnem/proximax-pegzone/common/client"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/wire"
)

const (
	flagMainchainTxHash  = "mainchain-tx-hash"
	flagTxHash           = "tx-hash"
	flagToAddress        = "to"
	flagAmount           = "amount"
	flagMainchainAddress = "mainchain-address"
	flagFirstCosigner    = "first-cosigner"
	flagValidator        = "validator"
	flagNotCosigned      = "not-cosigned"
)

func PegClaimCmd(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peg-claim",
		Short: "claim that a deposit to the mainchain multisig happened",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, txBldr := client.PrepareCtx(cdc)
			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}

			to, err := sdk.AccAddressFromBech32(viper.GetString(flagToAddress))
			if err != nil {
				return err
			}
			amount, err := sdk.ParseCoins(viper.GetString(flagAmount))
			if err != nil {
				return err
			}

			msg := types.NewMsgPegClaim(sdk.ValAddress(from), viper.GetString(flagMainchainTxHash), to, amount)
			if sdkErr := msg.ValidateBasic(); sdkErr != nil {
				return fmt.Errorf("%v", sdkErr.Data())
			}
			return client.SendOrPrintTx(cliCtx, txBldr, msg)
		},
	}

	cmd.Flags().String(flagMainchainTxHash, "", "hash of the mainchain deposit transaction")
	cmd.Flags().String(flagToAddress, "", "address receiving the pegged coins")
	cmd.Flags().String(flagAmount, "", "amount deposited, e.g. 100:xpx")
	return cmd
}

func UnpegCmd(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpeg",
		Short: "burn pegged coins and request the payout on the mainchain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, txBldr := client.PrepareCtx(cdc)
			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}

			amount, err := sdk.ParseCoins(viper.GetString(flagAmount))
			if err != nil {
				return err
			}
			firstCosigner, err := sdk.ValAddressFromBech32(viper.GetString(flagFirstCosigner))
			if err != nil {
				return err
			}

			msg := types.NewMsgUnpeg(from, viper.GetString(flagMainchainAddress), amount, firstCosigner)
			if sdkErr := msg.ValidateBasic(); sdkErr != nil {
				return fmt.Errorf("%v", sdkErr.Data())
			}
			return client.SendOrPrintTx(cliCtx, txBldr, msg)
		},
	}

	cmd.Flags().String(flagMainchainAddress, "", "mainchain address receiving the payout")
	cmd.Flags().String(flagAmount, "", "amount to unpeg, e.g. 100:xpx")
	cmd.Flags().String(flagFirstCosigner, "", "validator that initiates the multisig payout")
	return cmd
}

func UnpegNotCosignedClaimCmd(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpeg-not-cosigned-claim",
		Short: "claim that validators did not cosign an unpeg payout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, txBldr := client.PrepareCtx(cdc)
			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}

			var validators []sdk.ValAddress
			for _, s := range strings.Split(viper.GetString(flagNotCosigned), ",") {
				if s = strings.TrimSpace(s); s == "" {
					continue
				}
				validator, err := sdk.ValAddressFromBech32(s)
				if err != nil {
					return err
				}
				validators = append(validators, validator)
			}

			msg := types.NewMsgUnpegNotCosignedClaim(sdk.ValAddress(from), viper.GetString(flagTxHash), validators)
			if sdkErr := msg.ValidateBasic(); sdkErr != nil {
				return fmt.Errorf("%v", sdkErr.Data())
			}
			return client.SendOrPrintTx(cliCtx, txBldr, msg)
		},
	}

	cmd.Flags().String(flagTxHash, "", "hash of the unpeg transaction on this chain")
	cmd.Flags().String(flagNotCosigned, "", "comma separated validators that did not cosign")
	return cmd
}

func RequestInvitationCmd(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-invitation",
		Short: "ask to be invited to the mainchain multisig account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, txBldr := client.PrepareCtx(cdc)
			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}

			firstCosigner, err := sdk.ValAddressFromBech32(viper.GetString(flagFirstCosigner))
			if err != nil {
				return err
			}

			msg := types.NewMsgRequestInvitation(sdk.ValAddress(from), viper.GetString(flagMainchainAddress), firstCosigner)
			if sdkErr := msg.ValidateBasic(); sdkErr != nil {
				return fmt.Errorf("%v", sdkErr.Data())
			}
			return client.SendOrPrintTx(cliCtx, txBldr, msg)
		},
	}

	cmd.Flags().String(flagMainchainAddress, "", "mainchain address of the validator to invite")
	cmd.Flags().String(flagFirstCosigner, "", "validator that initiates the multisig modification")
	return cmd
}

func InvitationNotCosignedClaimCmd(cdc *wire.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invitation-not-cosigned-claim",
		Short: "claim that the first cosigner did not cosign an invitation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, txBldr := client.PrepareCtx(cdc)
			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}

			validator, err := sdk.ValAddressFromBech32(viper.GetString(flagValidator))
			if err != nil {
				return err
			}
			firstCosigner, err := sdk.ValAddressFromBech32(viper.GetString(flagFirstCosigner))
			if err != nil {
				return err
			}

			msg := types.NewMsgInvitationNotCosignedClaim(sdk.ValAddress(from), viper.GetString(flagTxHash),
				validator, viper.GetString(flagMainchainAddress), firstCosigner)
			if sdkErr := msg.ValidateBasic(); sdkErr != nil {
				return fmt.Errorf("%v", sdkErr.Data())
			}
			return client.SendOrPrintTx(cliCtx, txBldr, msg)
		},
	}

	cmd.Flags().String(flagTxHash, "", "hash of the request-invitation transaction on this chain")
	cmd.Flags().String(flagValidator, "", "validator that requested the invitation")
	cmd.Flags().String(flagMainchainAddress, "", "mainchain address of the invited validator")
	cmd.Flags().String(flagFirstCosigner, "", "validator that did not cosign")
	return cmd
}
