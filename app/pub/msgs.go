package pub

import (
	"fmt"
	"strings"

	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

type msgType int8

const (
	bridgeEventsTpe msgType = iota
)

// the strings should be keep consistence with top level record name in schemas.go
func (this msgType) String() string {
	switch this {
	case bridgeEventsTpe:
		return "BridgeEvents"
	default:
		return "Unknown"
	}
}

type AvroOrJsonMsg interface {
	ToNativeMap() map[string]interface{}
	String() string
}

type BridgeEvents struct {
	Height    int64         `json:"height"`
	Timestamp int64         `json:"timestamp"` // milli seconds since Epoch
	NumOfMsgs int           `json:"numOfMsgs"` // number of individual events in this block
	Events    []BridgeEvent `json:"events"`
}

func (msg *BridgeEvents) String() string {
	return fmt.Sprintf("BridgeEvents at height: %d, numOfMsgs: %d", msg.Height, msg.NumOfMsgs)
}

func (msg *BridgeEvents) ToNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["height"] = msg.Height
	native["timestamp"] = msg.Timestamp
	native["numOfMsgs"] = msg.NumOfMsgs
	events := make([]interface{}, len(msg.Events))
	for idx, e := range msg.Events {
		events[idx] = e.toNativeMap()
	}
	native["events"] = events
	return native
}

// BridgeEvent keeps the field names of the bridge msgs on the wire
type BridgeEvent struct {
	TxHash   string `json:"tx_hash"`
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	Status   string `json:"status"`
	RefHash  string `json:"ref_hash"`
	Sequence int64  `json:"sequence"`
	To       string `json:"to_address"`
	Amount   string `json:"amount"`

	ValidatorAddress      string   `json:"validator_address"`
	MainchainAddress      string   `json:"mainchain_address"`
	FirstCosignerAddress  string   `json:"first_cosigner_address"`
	NotCosignedValidators []string `json:"not_cosigned_validators"`
}

func newBridgeEvent(e bridge.BridgeEvent) BridgeEvent {
	notCosigned := e.NotCosignedValidators
	if notCosigned == nil {
		notCosigned = []string{}
	}
	return BridgeEvent{
		TxHash:                e.TxHash,
		Type:                  e.Type,
		Sender:                e.Sender,
		Status:                e.Status,
		RefHash:               e.RefHash,
		Sequence:              e.Sequence,
		To:                    e.To,
		Amount:                e.Amount,
		ValidatorAddress:      e.ValidatorAddress,
		MainchainAddress:      e.MainchainAddress,
		FirstCosignerAddress:  e.FirstCosignerAddress,
		NotCosignedValidators: notCosigned,
	}
}

func (e BridgeEvent) String() string {
	return fmt.Sprintf("BridgeEvent{type: %s, txHash: %s, status: %s, ref: %s, notCosigned: %s}",
		e.Type, e.TxHash, e.Status, e.RefHash, strings.Join(e.NotCosignedValidators, ","))
}

func (e BridgeEvent) toNativeMap() map[string]interface{} {
	var native = make(map[string]interface{})
	native["tx_hash"] = e.TxHash
	native["type"] = e.Type
	native["sender"] = e.Sender
	native["status"] = e.Status
	native["ref_hash"] = e.RefHash
	native["sequence"] = e.Sequence
	native["to_address"] = e.To
	native["amount"] = e.Amount
	native["validator_address"] = e.ValidatorAddress
	native["mainchain_address"] = e.MainchainAddress
	native["first_cosigner_address"] = e.FirstCosignerAddress
	notCosigned := make([]interface{}, len(e.NotCosignedValidators))
	for i, v := range e.NotCosignedValidators {
		notCosigned[i] = v
	}
	native["not_cosigned_validators"] = notCosigned
	return native
}
