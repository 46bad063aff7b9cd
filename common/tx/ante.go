package tx

import (
	"bytes"
	"fmt"

	"github.com/cosmos/cosmos-sdk/baseapp"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	lru "github.com/hashicorp/golang-lru"
	"github.com/tendermint/tendermint/crypto"
	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/lcnem/proximax-pegzone/common/log"
)

const (
	maxMemoCharacters = 128

	defaultMaxCacheNumber = 30000
)

type sigLRUCache struct {
	*lru.Cache
}

func newSigLRUCache(cap int) *sigLRUCache {
	cache, err := lru.New(cap)
	if err != nil {
		panic(err)
	}

	return &sigLRUCache{
		cache,
	}
}

func (cache *sigLRUCache) getSig(txHash string) (ok bool) {
	_, ok = cache.Get(txHash)
	return ok
}

func (cache *sigLRUCache) addSig(txHash string) {
	if txHash != "" {
		cache.Add(txHash, true)
	}
}

// signature-key: txHash
// based on the assumption that tx hash will never collide.
var sigCache = newSigLRUCache(defaultMaxCacheNumber)

func InitSigCache(size int) {
	sigCache = newSigLRUCache(size)
}

// NewTxPreChecker verifies signatures without touching account state, so it
// can run ahead of CheckTx/DeliverTx. Verified tx hashes are cached and the
// AnteHandler skips the signature check for them.
func NewTxPreChecker() sdk.PreChecker {
	return func(ctx sdk.Context, txBytes []byte, tx sdk.Tx) sdk.Result {
		stdTx, ok := tx.(auth.StdTx)
		if !ok {
			return sdk.ErrInternal("tx must be StdTx").Result()
		}

		err := validateBasic(stdTx)
		if err != nil {
			return err.Result()
		}

		sigs := stdTx.GetSignatures()
		msgs := tx.GetMsgs()
		txHash := common.HexBytes(tmhash.Sum(txBytes)).String()
		chainID := ctx.ChainID()

		for i := 0; i < len(sigs); i++ {
			sig := sigs[i]
			signBytes := auth.StdSignBytes(chainID, sig.AccountNumber, sig.Sequence, msgs, stdTx.GetMemo(), stdTx.GetSource(), stdTx.GetData())
			res := processSig(txHash, sig, sig.PubKey, signBytes)
			if !res.IsOK() {
				return res
			}
		}
		return sdk.Result{}
	}
}

// NewAnteHandler returns an AnteHandler that checks and increments sequence
// numbers, checks signatures and account numbers. The zone charges no fees.
func NewAnteHandler(am auth.AccountKeeper) sdk.AnteHandler {
	return func(
		ctx sdk.Context, tx sdk.Tx, mode sdk.RunTxMode,
	) (newCtx sdk.Context, res sdk.Result, abort bool) {
		newCtx = ctx
		stdTx, ok := tx.(auth.StdTx)
		if !ok {
			return newCtx, sdk.ErrInternal("tx must be StdTx").Result(), true
		}

		if mode == sdk.RunTxModeDeliver ||
			mode == sdk.RunTxModeCheck ||
			mode == sdk.RunTxModeSimulate {
			err := validateBasic(stdTx)
			if err != nil {
				return newCtx, err.Result(), true
			}
		}

		sigs := stdTx.GetSignatures()
		signerAddrs := stdTx.GetSigners()
		msgs := tx.GetMsgs()

		var signerAccs = make([]sdk.Account, len(signerAddrs))
		txHash, _ := ctx.Value(baseapp.TxHashKey).(string)
		chainID := ctx.ChainID()
		for i := 0; i < len(sigs); i++ {
			signerAddr, sig := signerAddrs[i], sigs[i]
			signerAcc, err := processAccount(newCtx, am, signerAddr, sig)
			if err != nil {
				return newCtx, err.Result(), true
			}

			if mode == sdk.RunTxModeDeliver ||
				mode == sdk.RunTxModeCheck {
				signBytes := auth.StdSignBytes(chainID, sig.AccountNumber, sig.Sequence, msgs, stdTx.GetMemo(), stdTx.GetSource(), stdTx.GetData())
				res := processSig(txHash, sig, signerAcc.GetPubKey(), signBytes)
				if !res.IsOK() {
					return newCtx, res, true
				}
			} else if !signerAcc.GetPubKey().Equals(sig.PubKey) {
				// signatures were verified by the pre-checker against sig.PubKey
				return newCtx, sdk.ErrInvalidPubKey("PubKey of account does not match PubKey of signature").Result(), true
			}

			am.SetAccount(newCtx, signerAcc)
			signerAccs[i] = signerAcc
		}

		newCtx = auth.WithSigners(newCtx, signerAccs)
		return newCtx, sdk.Result{}, false
	}
}

func validateBasic(tx auth.StdTx) (err sdk.Error) {
	sigs := tx.GetSignatures()
	if len(sigs) == 0 {
		return sdk.ErrUnauthorized("no signers")
	}

	for _, sig := range sigs {
		if sig.PubKey == nil {
			return sdk.ErrInvalidPubKey("public key of signature should not be nil")
		}
	}

	signerAddrs := tx.GetSigners()
	if len(sigs) != len(signerAddrs) {
		return sdk.ErrUnauthorized("wrong number of signers")
	}
	for _, signerAddr := range signerAddrs {
		if len(signerAddr) != sdk.AddrLen {
			return sdk.ErrInvalidAddress("contains invalid signer address")
		}
	}

	if data := tx.GetData(); len(data) > 0 {
		return sdk.ErrUnauthorized("data field is not allowed to use in transaction")
	}

	if memo := tx.GetMemo(); len(memo) > maxMemoCharacters {
		return sdk.ErrMemoTooLarge(
			fmt.Sprintf("maximum number of characters is %d but received %d characters",
				maxMemoCharacters, len(memo)))
	}
	return nil
}

func processAccount(ctx sdk.Context, am auth.AccountKeeper,
	addr sdk.AccAddress, sig auth.StdSignature) (acc sdk.Account, err sdk.Error) {
	acc = am.GetAccount(ctx, addr)
	if acc == nil {
		return nil, sdk.ErrUnknownAddress(addr.String())
	}

	// accounts created at genesis have number 0 until the first block
	if ctx.BlockHeight() == 0 {
		if sig.AccountNumber != 0 {
			return nil, sdk.ErrInvalidSequence(
				fmt.Sprintf("Invalid account number for BlockHeight == 0. Got %d, expected 0", sig.AccountNumber))
		}
	} else {
		accnum := acc.GetAccountNumber()
		if accnum != sig.AccountNumber {
			return nil, sdk.ErrInvalidSequence(
				fmt.Sprintf("Invalid account number. Got %d, expected %d", sig.AccountNumber, accnum))
		}
	}

	seq := acc.GetSequence()
	if seq != sig.Sequence {
		return nil, sdk.ErrInvalidSequence(
			fmt.Sprintf("Invalid sequence. Got %d, expected %d", sig.Sequence, seq))
	}
	if errSeq := acc.SetSequence(seq + 1); errSeq != nil {
		return nil, sdk.ErrInternal("setting sequence on signer's account")
	}

	pubKey := acc.GetPubKey()
	if pubKey == nil {
		pubKey = sig.PubKey
		if pubKey == nil {
			return nil, sdk.ErrInvalidPubKey("PubKey not found")
		}
		if !bytes.Equal(pubKey.Address(), addr) {
			return nil, sdk.ErrInvalidPubKey(
				fmt.Sprintf("PubKey does not match Signer address %v", addr))
		}
		if errKey := acc.SetPubKey(pubKey); errKey != nil {
			return nil, sdk.ErrInternal("setting PubKey on signer's account")
		}
	}

	return acc, nil
}

func processSig(txHash string,
	sig auth.StdSignature, pubKey crypto.PubKey, signBytes []byte) (
	res sdk.Result) {

	if sigCache.getSig(txHash) {
		log.Debug("Tx hits sig cache", "txHash", txHash)
		return
	}

	if !pubKey.VerifyBytes(signBytes, sig.Signature) {
		return sdk.ErrUnauthorized("signature verification failed").Result()
	}

	sigCache.addSig(txHash)
	return
}
