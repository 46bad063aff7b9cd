package relayer

import (
	"sync"
	"time"

	"github.com/cosmos/cosmos-sdk/client/context"
	"github.com/cosmos/cosmos-sdk/client/keys"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	txbuilder "github.com/cosmos/cosmos-sdk/x/auth/client/txbuilder"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/common/client"
	"github.com/lcnem/proximax-pegzone/wire"
)

// Broadcaster signs msgs with the validator operator key and sends them to the peg zone
type Broadcaster interface {
	Broadcast(msg sdk.Msg) error
}

type BroadcasterConfig struct {
	// keybase directory of the validator operator key
	Home       string
	From       string
	Passphrase string
	ChainID    string
	Retries    int
	RetryWait  time.Duration
}

type keyBroadcaster struct {
	mtx sync.Mutex

	cfg     BroadcasterConfig
	cliCtx  context.CLIContext
	txBldr  txbuilder.TxBuilder
	from    sdk.AccAddress
	synced  bool
	retrier *retrier.Retrier
	logger  log.Logger
}

// NewBroadcaster builds the cli context from viper, so the "node" flag must be set
func NewBroadcaster(cdc *wire.Codec, cfg BroadcasterConfig, logger log.Logger) (Broadcaster, error) {
	viper.Set("home", cfg.Home)
	viper.Set("chain-id", cfg.ChainID)
	viper.Set("from", cfg.From)
	viper.Set("trust-node", true)
	cliCtx, txBldr := client.PrepareCtx(cdc)
	txBldr = txBldr.WithChainID(cfg.ChainID)

	keybase, err := keys.GetKeyBaseFromDir(cfg.Home)
	if err != nil {
		return nil, errors.Wrapf(err, "open keybase in %s", cfg.Home)
	}
	info, err := keybase.Get(cfg.From)
	if err != nil {
		return nil, errors.Wrapf(err, "key %s", cfg.From)
	}

	return &keyBroadcaster{
		cfg:     cfg,
		cliCtx:  cliCtx,
		txBldr:  txBldr,
		from:    sdk.AccAddress(info.GetPubKey().Address()),
		retrier: retrier.New(retrier.ExponentialBackoff(cfg.Retries, cfg.RetryWait), nil),
		logger:  logger,
	}, nil
}

func (b *keyBroadcaster) Broadcast(msg sdk.Msg) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.retrier.Run(func() error {
		err := b.broadcast(msg)
		if err != nil {
			// the sequence is reloaded from the chain on the next attempt
			b.synced = false
			b.logger.Info("broadcast failed", "msg", msg.Type(), "err", err)
		}
		return err
	})
}

func (b *keyBroadcaster) sync() error {
	accNum, err := b.cliCtx.GetAccountNumber(b.from)
	if err != nil {
		return errors.Wrap(err, "get account number")
	}
	seq, err := b.cliCtx.GetAccountSequence(b.from)
	if err != nil {
		return errors.Wrap(err, "get account sequence")
	}
	b.txBldr = b.txBldr.WithAccountNumber(accNum).WithSequence(seq)
	b.synced = true
	return nil
}

func (b *keyBroadcaster) broadcast(msg sdk.Msg) error {
	if !b.synced {
		if err := b.sync(); err != nil {
			return err
		}
	}

	signMsg := txbuilder.StdSignMsg{
		ChainID:       b.txBldr.ChainID,
		AccountNumber: b.txBldr.AccountNumber,
		Sequence:      b.txBldr.Sequence,
		Memo:          b.txBldr.Memo,
		Msgs:          []sdk.Msg{msg},
		Source:        auth.DefaultSource,
	}
	keybase, err := keys.GetKeyBaseFromDir(b.cfg.Home)
	if err != nil {
		return err
	}
	sigBytes, pubKey, err := keybase.Sign(b.cfg.From, b.cfg.Passphrase, signMsg.Bytes())
	if err != nil {
		return errors.Wrap(err, "sign tx")
	}
	sig := auth.StdSignature{PubKey: pubKey, Signature: sigBytes}
	txBytes, err := b.txBldr.Codec.MarshalBinaryLengthPrefixed(
		auth.NewStdTx(signMsg.Msgs, []auth.StdSignature{sig}, signMsg.Memo, auth.DefaultSource, nil))
	if err != nil {
		return err
	}

	if _, err = b.cliCtx.BroadcastTx(txBytes); err != nil {
		return errors.Wrap(err, "broadcast tx")
	}
	b.txBldr = b.txBldr.WithSequence(b.txBldr.Sequence + 1)
	return nil
}
