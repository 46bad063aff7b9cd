package relayer

import (
	"context"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/mainchain"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
)

const seenCacheSize = 4096

// Mainchain is the part of the ProximaX REST api the relayers read
type Mainchain interface {
	Transactions(ctx context.Context, account string) ([]mainchain.Transaction, error)
	PartialTransactions(ctx context.Context, publicKey string) ([]mainchain.Transaction, error)
	AccountPublicKey(ctx context.Context, address string) (string, error)
}

type ProximaxConfig struct {
	Validator       sdk.ValAddress
	MultisigAddress string
	MosaicID        string
	// denom minted on the peg zone
	Denom        string
	PollInterval time.Duration
}

// ProximaxRelayer watches the multisig account for deposits and claims them on the peg zone
type ProximaxRelayer struct {
	cfg         ProximaxConfig
	mainchain   Mainchain
	broadcaster Broadcaster
	seen        *lru.Cache
	metrics     *Metrics
	logger      log.Logger
}

func NewProximaxRelayer(cfg ProximaxConfig, mc Mainchain, b Broadcaster, metrics *Metrics, logger log.Logger) (*ProximaxRelayer, error) {
	if sdkErr := types.ValidateMainchainAddress(cfg.MultisigAddress); sdkErr != nil {
		return nil, errors.New(sdkErr.Error())
	}
	cfg.MultisigAddress = types.NormalizeMainchainAddress(cfg.MultisigAddress)
	seen, err := lru.New(seenCacheSize)
	if err != nil {
		return nil, err
	}
	return &ProximaxRelayer{
		cfg:         cfg,
		mainchain:   mc,
		broadcaster: b,
		seen:        seen,
		metrics:     metrics,
		logger:      logger.With("module", "proximax"),
	}, nil
}

func (r *ProximaxRelayer) Run(ctx context.Context) error {
	r.logger.Info("watching multisig", "address", r.cfg.MultisigAddress, "validator", r.cfg.Validator.String())
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if err := r.Poll(ctx); err != nil {
			r.logger.Error("poll mainchain failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll claims every deposit not claimed yet by this relayer
func (r *ProximaxRelayer) Poll(ctx context.Context) error {
	txs, err := r.mainchain.Transactions(ctx, r.cfg.MultisigAddress)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		for _, transfer := range tx.Transfers {
			if transfer.Recipient != r.cfg.MultisigAddress {
				continue
			}
			if r.seen.Contains(transfer.Hash) {
				continue
			}
			r.metrics.DepositsSeen.Add(1)
			msg, err := r.pegClaim(transfer)
			if err != nil {
				// never claimable, don't look at it again
				r.logger.Info("skip deposit", "hash", transfer.Hash, "err", err)
				r.seen.Add(transfer.Hash, struct{}{})
				continue
			}
			if err := r.broadcaster.Broadcast(msg); err != nil {
				r.metrics.ClaimsFailed.With("msg_type", msg.Type()).Add(1)
				r.logger.Error("peg claim failed", "hash", transfer.Hash, "err", err)
				continue
			}
			r.metrics.ClaimsSubmitted.With("msg_type", msg.Type()).Add(1)
			r.logger.Info("peg claim sent", "hash", transfer.Hash, "to", msg.ToAddress.String(), "amount", msg.Amount.String())
			r.seen.Add(transfer.Hash, struct{}{})
		}
	}
	return nil
}

// the transfer message carries the peg zone recipient
func (r *ProximaxRelayer) pegClaim(transfer mainchain.Transfer) (bridge.MsgPegClaim, error) {
	var msg bridge.MsgPegClaim
	amount := transfer.Amount(r.cfg.MosaicID)
	if amount == 0 {
		return msg, errors.Errorf("no %s mosaic", r.cfg.MosaicID)
	}
	to, err := sdk.AccAddressFromBech32(strings.TrimSpace(transfer.Message))
	if err != nil {
		return msg, errors.Wrapf(err, "invalid recipient %q", transfer.Message)
	}
	msg = bridge.NewMsgPegClaim(r.cfg.Validator, transfer.Hash, to, sdk.Coins{sdk.NewCoin(r.cfg.Denom, int64(amount))})
	if sdkErr := msg.ValidateBasic(); sdkErr != nil {
		return msg, errors.New(sdkErr.Error())
	}
	return msg, nil
}
