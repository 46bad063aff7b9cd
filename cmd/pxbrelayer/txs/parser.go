package txs

import (
	"sort"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/plugins/bridge/types"
)

const (
	// the hash tendermint attaches to every tx event
	TxHashKey = "hash"
	// older nodes tag the claim sender with cosmos_sender
	CosmosSenderKey = "cosmos_sender"
)

// Attributes is a flat view of the events of a single tx
type Attributes map[string]string

// NormalizeEvents drops the event type prefix of every key ("tx.hash" -> "hash",
// "bridge.tx_hash" -> "tx_hash") and keeps the first value of each key. Keys are
// visited in sorted order so the result does not depend on map iteration.
func NormalizeEvents(events map[string][]string) Attributes {
	keys := make([]string, 0, len(events))
	for k := range events {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make(Attributes, len(events))
	for _, k := range keys {
		values := events[k]
		if len(values) == 0 {
			continue
		}
		name := k
		if i := strings.LastIndex(k, "."); i >= 0 {
			name = k[i+1:]
		}
		if _, ok := attrs[name]; ok {
			continue
		}
		attrs[name] = values[0]
	}
	return attrs
}

func (a Attributes) Action() string {
	return a[types.TagAction]
}

func (a Attributes) TxHash() string {
	return strings.ToUpper(a[TxHashKey])
}

// Status is the prophecy status reported by a claim event
func (a Attributes) Status() string {
	return a[types.TagStatus]
}

func (a Attributes) sender() (string, error) {
	if s, ok := a[CosmosSenderKey]; ok {
		return s, nil
	}
	if s, ok := a[types.TagSender]; ok {
		return s, nil
	}
	return "", errors.New("event has no sender")
}

func (a Attributes) require(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == "" {
		return "", errors.Errorf("event has no %s", key)
	}
	return v, nil
}

func (a Attributes) valAddress(key string) (sdk.ValAddress, error) {
	v, err := a.require(key)
	if err != nil {
		return nil, err
	}
	addr, err := sdk.ValAddressFromBech32(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", key)
	}
	return addr, nil
}

func (a Attributes) senderValAddress() (sdk.ValAddress, error) {
	s, err := a.sender()
	if err != nil {
		return nil, err
	}
	addr, err := sdk.ValAddressFromBech32(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sender")
	}
	return addr, nil
}

func (a Attributes) coins(key string) (sdk.Coins, error) {
	v, err := a.require(key)
	if err != nil {
		return nil, err
	}
	coins, err := sdk.ParseCoins(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", key)
	}
	return coins, nil
}

// PegClaimEventToCosmosMsg rebuilds the MsgPegClaim behind a pegClaim event
func PegClaimEventToCosmosMsg(attrs Attributes) (bridge.MsgPegClaim, error) {
	var msg bridge.MsgPegClaim
	sender, err := attrs.senderValAddress()
	if err != nil {
		return msg, err
	}
	hash, err := attrs.require(types.TagMainchainTxHash)
	if err != nil {
		return msg, err
	}
	to, err := attrs.require(types.TagToAddress)
	if err != nil {
		return msg, err
	}
	toAddress, err := sdk.AccAddressFromBech32(to)
	if err != nil {
		return msg, errors.Wrap(err, "invalid to_address")
	}
	amount, err := attrs.coins(types.TagAmount)
	if err != nil {
		return msg, err
	}

	msg = bridge.NewMsgPegClaim(sender, hash, toAddress, amount)
	if sdkErr := msg.ValidateBasic(); sdkErr != nil {
		return msg, errors.New(sdkErr.Error())
	}
	return msg, nil
}

// UnpegNotCosignedClaimEventToCosmosMsg rebuilds the MsgUnpegNotCosignedClaim behind an event.
// not_cosigned_validators is a comma separated list of operator addresses.
func UnpegNotCosignedClaimEventToCosmosMsg(attrs Attributes) (bridge.MsgUnpegNotCosignedClaim, error) {
	var msg bridge.MsgUnpegNotCosignedClaim
	sender, err := attrs.senderValAddress()
	if err != nil {
		return msg, err
	}
	txHash, err := attrs.require(types.TagTxHash)
	if err != nil {
		return msg, err
	}
	list, err := attrs.require(types.TagNotCosignedValidators)
	if err != nil {
		return msg, err
	}
	var validators []sdk.ValAddress
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		addr, err := sdk.ValAddressFromBech32(s)
		if err != nil {
			return msg, errors.Wrapf(err, "invalid not cosigned validator %q", s)
		}
		validators = append(validators, addr)
	}

	msg = bridge.NewMsgUnpegNotCosignedClaim(sender, txHash, validators)
	if sdkErr := msg.ValidateBasic(); sdkErr != nil {
		return msg, errors.New(sdkErr.Error())
	}
	return msg, nil
}

// InvitationNotCosignedClaimEventToCosmosMsg rebuilds the MsgInvitationNotCosignedClaim behind an event
func InvitationNotCosignedClaimEventToCosmosMsg(attrs Attributes) (bridge.MsgInvitationNotCosignedClaim, error) {
	var msg bridge.MsgInvitationNotCosignedClaim
	sender, err := attrs.senderValAddress()
	if err != nil {
		return msg, err
	}
	txHash, err := attrs.require(types.TagTxHash)
	if err != nil {
		return msg, err
	}
	validator, err := attrs.valAddress(types.TagValidatorAddress)
	if err != nil {
		return msg, err
	}
	mainchainAddress, err := attrs.require(types.TagMainchainAddress)
	if err != nil {
		return msg, err
	}
	firstCosigner, err := attrs.valAddress(types.TagFirstCosignerAddress)
	if err != nil {
		return msg, err
	}

	msg = bridge.NewMsgInvitationNotCosignedClaim(sender, txHash, validator, mainchainAddress, firstCosigner)
	if sdkErr := msg.ValidateBasic(); sdkErr != nil {
		return msg, errors.New(sdkErr.Error())
	}
	return msg, nil
}

// UnpegEvent is emitted when pegged coins are burnt for a mainchain payout
type UnpegEvent struct {
	TxHash               string
	Sequence             int64
	From                 sdk.AccAddress
	MainchainAddress     string
	Amount               sdk.Coins
	FirstCosignerAddress sdk.ValAddress
}

func ParseUnpegEvent(attrs Attributes) (UnpegEvent, error) {
	var ev UnpegEvent
	ev.TxHash = attrs.TxHash()
	if sdkErr := types.ValidateTxHash(ev.TxHash); sdkErr != nil {
		return ev, errors.New(sdkErr.Error())
	}
	seq, err := attrs.require(types.TagSequence)
	if err != nil {
		return ev, err
	}
	if ev.Sequence, err = strconv.ParseInt(seq, 10, 64); err != nil {
		return ev, errors.Wrap(err, "invalid sequence")
	}
	from, err := attrs.sender()
	if err != nil {
		return ev, err
	}
	if ev.From, err = sdk.AccAddressFromBech32(from); err != nil {
		return ev, errors.Wrap(err, "invalid sender")
	}
	if ev.MainchainAddress, err = attrs.require(types.TagMainchainAddress); err != nil {
		return ev, err
	}
	if ev.Amount, err = attrs.coins(types.TagAmount); err != nil {
		return ev, err
	}
	if ev.FirstCosignerAddress, err = attrs.valAddress(types.TagFirstCosignerAddress); err != nil {
		return ev, err
	}
	return ev, nil
}

// RequestInvitationEvent is emitted when a validator asks to join the mainchain multisig
type RequestInvitationEvent struct {
	TxHash               string
	ValidatorAddress     sdk.ValAddress
	MainchainAddress     string
	FirstCosignerAddress sdk.ValAddress
}

func ParseRequestInvitationEvent(attrs Attributes) (RequestInvitationEvent, error) {
	var ev RequestInvitationEvent
	ev.TxHash = attrs.TxHash()
	if sdkErr := types.ValidateTxHash(ev.TxHash); sdkErr != nil {
		return ev, errors.New(sdkErr.Error())
	}
	var err error
	if ev.ValidatorAddress, err = attrs.valAddress(types.TagValidatorAddress); err != nil {
		return ev, err
	}
	if ev.MainchainAddress, err = attrs.require(types.TagMainchainAddress); err != nil {
		return ev, err
	}
	if sdkErr := types.ValidateMainchainAddress(ev.MainchainAddress); sdkErr != nil {
		return ev, errors.New(sdkErr.Error())
	}
	if ev.FirstCosignerAddress, err = attrs.valAddress(types.TagFirstCosignerAddress); err != nil {
		return ev, err
	}
	return ev, nil
}
