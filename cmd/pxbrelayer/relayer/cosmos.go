package relayer

import (
	"context"
	"strconv"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"

	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/mainchain"
	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/txs"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
)

const (
	subscriber = "pxbrelayer"
	txQuery    = "tm.event='Tx'"
)

// EventSource is the websocket side of a tendermint rpc client
type EventSource interface {
	Start() error
	Stop() error
	Subscribe(ctx context.Context, subscriber, query string, outCapacity ...int) (<-chan ctypes.ResultEvent, error)
	UnsubscribeAll(ctx context.Context, subscriber string) error
}

type CosmosConfig struct {
	Validator sdk.ValAddress
	// public key of the mainchain multisig account
	MultisigPublicKey string
	// how long cosigners have to sign before a not cosigned claim is sent
	CosignTimeout time.Duration
	// wait before asking the mainchain again after a failed lookup
	RecheckInterval time.Duration
	TickInterval    time.Duration
}

// CosmosRelayer turns peg zone events into cosign obligations and reports the
// ones the mainchain does not show in time
type CosmosRelayer struct {
	cfg         CosmosConfig
	events      EventSource
	mainchain   Mainchain
	broadcaster Broadcaster
	queue       *DeadlineQueue
	metrics     *Metrics
	logger      log.Logger
}

func NewCosmosRelayer(cfg CosmosConfig, events EventSource, mc Mainchain, b Broadcaster, metrics *Metrics, logger log.Logger) *CosmosRelayer {
	cfg.MultisigPublicKey = strings.ToUpper(cfg.MultisigPublicKey)
	return &CosmosRelayer{
		cfg:         cfg,
		events:      events,
		mainchain:   mc,
		broadcaster: b,
		queue:       NewDeadlineQueue(),
		metrics:     metrics,
		logger:      logger.With("module", "cosmos"),
	}
}

func (r *CosmosRelayer) Run(ctx context.Context) error {
	if err := r.events.Start(); err != nil {
		return errors.Wrap(err, "start rpc client")
	}
	defer r.events.Stop()

	out, err := r.events.Subscribe(ctx, subscriber, txQuery, 1000)
	if err != nil {
		return errors.Wrap(err, "subscribe to tx events")
	}
	defer r.events.UnsubscribeAll(context.Background(), subscriber)
	r.logger.Info("subscribed to tx events", "validator", r.cfg.Validator.String())

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-out:
			if !ok {
				return errors.New("event subscription closed")
			}
			r.HandleEvent(ev.Events)
		case now := <-ticker.C:
			r.CheckDeadlines(ctx, now)
		}
	}
}

// HandleEvent records the obligations created by a tx and drops the ones a
// finalized claim already settled
func (r *CosmosRelayer) HandleEvent(events map[string][]string) {
	attrs := txs.NormalizeEvents(events)
	if h, err := strconv.ParseInt(attrs["height"], 10, 64); err == nil {
		r.metrics.EventHeight.Set(float64(h))
	}

	switch attrs.Action() {
	case types.UnpegMsgType:
		ev, err := txs.ParseUnpegEvent(attrs)
		if err != nil {
			r.logger.Error("bad unpeg event", "err", err)
			return
		}
		r.track(&Obligation{Kind: UnpegObligation, TxHash: ev.TxHash, Unpeg: ev}, ev.FirstCosignerAddress)
	case types.RequestInvitationMsgType:
		ev, err := txs.ParseRequestInvitationEvent(attrs)
		if err != nil {
			r.logger.Error("bad request invitation event", "err", err)
			return
		}
		r.track(&Obligation{Kind: InvitationObligation, TxHash: ev.TxHash, Invitation: ev}, ev.FirstCosignerAddress)
	case types.UnpegNotCosignedClaimMsgType:
		msg, err := txs.UnpegNotCosignedClaimEventToCosmosMsg(attrs)
		if err != nil {
			r.logger.Error("bad unpeg not cosigned claim event", "err", err)
			return
		}
		r.settle(msg.TxHash, attrs.Status())
	case types.InvitationNotCosignedClaimMsgType:
		msg, err := txs.InvitationNotCosignedClaimEventToCosmosMsg(attrs)
		if err != nil {
			r.logger.Error("bad invitation not cosigned claim event", "err", err)
			return
		}
		r.settle(msg.TxHash, attrs.Status())
	case types.PegClaimMsgType:
		msg, err := txs.PegClaimEventToCosmosMsg(attrs)
		if err != nil {
			r.logger.Error("bad peg claim event", "err", err)
			return
		}
		r.logger.Debug("peg claim", "mainchainTx", msg.MainchainTxHash, "validator", msg.Address.String(), "status", attrs.Status())
	}
	r.metrics.PendingObligations.Set(float64(r.queue.Len()))
}

func (r *CosmosRelayer) track(o *Obligation, firstCosigner sdk.ValAddress) {
	if firstCosigner.Equals(r.cfg.Validator) {
		// nobody reports itself
		return
	}
	o.Deadline = time.Now().Add(r.cfg.CosignTimeout)
	if r.queue.Push(o) {
		r.logger.Info("tracking cosign obligation", "kind", o.Kind.String(), "tx", o.TxHash, "deadline", o.Deadline)
	}
}

func (r *CosmosRelayer) settle(txHash string, status string) {
	if status == oracle.PendingStatusText.String() {
		return
	}
	if r.queue.Remove(strings.ToUpper(txHash)) {
		r.logger.Info("cosign obligation settled by the peg zone", "tx", txHash, "status", status)
	}
}

// Pending is the number of obligations waiting for their deadline
func (r *CosmosRelayer) Pending() int {
	return r.queue.Len()
}

// CheckDeadlines looks up every obligation due at now on the mainchain and
// claims the ones without cosignature
func (r *CosmosRelayer) CheckDeadlines(ctx context.Context, now time.Time) {
	for _, o := range r.queue.PopDue(now) {
		var cosigned bool
		var err error
		switch o.Kind {
		case UnpegObligation:
			cosigned, err = r.unpegCosigned(ctx, o.TxHash, o.Unpeg)
		case InvitationObligation:
			cosigned, err = r.invitationCosigned(ctx, o.Invitation)
		}
		if err != nil {
			r.logger.Error("mainchain lookup failed", "kind", o.Kind.String(), "tx", o.TxHash, "err", err)
			o.Deadline = now.Add(r.cfg.RecheckInterval)
			r.queue.Push(o)
			continue
		}
		if cosigned {
			r.logger.Info("cosign obligation met", "kind", o.Kind.String(), "tx", o.TxHash)
			continue
		}
		r.claim(o)
	}
	r.metrics.PendingObligations.Set(float64(r.queue.Len()))
}

func (r *CosmosRelayer) claim(o *Obligation) {
	var msg sdk.Msg
	switch o.Kind {
	case UnpegObligation:
		msg = bridge.NewMsgUnpegNotCosignedClaim(r.cfg.Validator, o.TxHash, []sdk.ValAddress{o.Unpeg.FirstCosignerAddress})
	case InvitationObligation:
		inv := o.Invitation
		msg = bridge.NewMsgInvitationNotCosignedClaim(r.cfg.Validator, o.TxHash, inv.ValidatorAddress, inv.MainchainAddress, inv.FirstCosignerAddress)
	default:
		return
	}
	if err := msg.ValidateBasic(); err != nil {
		r.logger.Error("drop invalid claim", "tx", o.TxHash, "err", err.Error())
		return
	}
	if err := r.broadcaster.Broadcast(msg); err != nil {
		r.metrics.ClaimsFailed.With("msg_type", msg.Type()).Add(1)
		r.logger.Error("not cosigned claim failed", "tx", o.TxHash, "err", err)
		return
	}
	r.metrics.ClaimsSubmitted.With("msg_type", msg.Type()).Add(1)
	r.logger.Info("not cosigned claim sent", "kind", o.Kind.String(), "tx", o.TxHash)
}

// the payout of an unpeg is a multisig transfer to the mainchain address whose
// message is the unpeg tx hash. A partial aggregate counts, the first cosigner
// only has to start it.
func (r *CosmosRelayer) unpegCosigned(ctx context.Context, txHash string, ev txs.UnpegEvent) (bool, error) {
	recipient := types.NormalizeMainchainAddress(ev.MainchainAddress)
	pays := func(list []mainchain.Transaction) bool {
		for _, tx := range list {
			for _, t := range tx.Transfers {
				if t.Recipient == recipient && strings.EqualFold(strings.TrimSpace(t.Message), txHash) {
					return true
				}
			}
		}
		return false
	}
	return r.findInMultisig(ctx, pays)
}

// an invitation is cosigned once a multisig modification adds the invitee key
func (r *CosmosRelayer) invitationCosigned(ctx context.Context, ev txs.RequestInvitationEvent) (bool, error) {
	publicKey, err := r.mainchain.AccountPublicKey(ctx, types.NormalizeMainchainAddress(ev.MainchainAddress))
	if err != nil && errors.Cause(err) != mainchain.ErrNotFound {
		return false, err
	}
	if publicKey == "" {
		return false, nil
	}
	adds := func(list []mainchain.Transaction) bool {
		for _, tx := range list {
			for _, m := range tx.Modifications {
				for _, added := range m.Added {
					if added == publicKey {
						return true
					}
				}
			}
		}
		return false
	}
	return r.findInMultisig(ctx, adds)
}

func (r *CosmosRelayer) findInMultisig(ctx context.Context, match func([]mainchain.Transaction) bool) (bool, error) {
	confirmed, err := r.mainchain.Transactions(ctx, r.cfg.MultisigPublicKey)
	if err != nil {
		return false, err
	}
	if match(confirmed) {
		return true, nil
	}
	partial, err := r.mainchain.PartialTransactions(ctx, r.cfg.MultisigPublicKey)
	if err != nil {
		return false, err
	}
	return match(partial), nil
}
