package sub

import (
	"time"

	"github.com/cosmos/cosmos-sdk/pubsub"

	"github.com/lcnem/proximax-pegzone/app/config"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

func SubscribeEvent(sub *pubsub.Subscriber, cfg *config.PublicationConfig) error {
	if cfg.PublishBridge {
		if err := SubscribeBridgeEvent(sub); err != nil {
			return err
		}
	}

	// commit events data from staging area to 'toPublish' when receiving `TxDeliverEvent`, represents the tx is successfully delivered.
	if err := sub.Subscribe(TxDeliverTopic, func(event pubsub.Event) {
		switch event.(type) {
		case TxDeliverSuccEvent:
			commit(cfg)
		case TxDeliverFailEvent:
			discard()
		default:
			sub.Logger.Debug("unknown event")
		}
	}); err != nil {
		return err
	}

	return nil
}

// -----------------------------------------------------
var (
	// events to be published, should be cleaned up each block
	toPublish = &ToPublishEvent{EventData: newEventStore()}
	// staging area for accepting events to store
	// should be moved to 'toPublish' when related tx successfully delivered
	stagingArea = newEventStore()
)

type ToPublishEvent struct {
	Height    int64
	Timestamp time.Time
	EventData *EventStore
}

type EventStore struct {
	// store for bridge topic
	BridgeData []bridge.BridgeEvent
}

func newEventStore() *EventStore {
	return &EventStore{}
}

func Clear() {
	toPublish = &ToPublishEvent{EventData: newEventStore()}
	stagingArea = newEventStore()
}

func ToPublish() *ToPublishEvent {
	return toPublish
}

func SetMeta(height int64, timestamp time.Time) {
	toPublish.Height = height
	toPublish.Timestamp = timestamp
}

func commit(cfg *config.PublicationConfig) {
	if cfg.PublishBridge {
		commitBridge()
	}
	// clear stagingArea data
	stagingArea = newEventStore()
}

func discard() {
	stagingArea = newEventStore()
}

// ---------------------------------------------------------------------
const TxDeliverTopic = pubsub.Topic("TxDeliver")

type TxDeliverEvent struct{}

func (event TxDeliverEvent) GetTopic() pubsub.Topic {
	return TxDeliverTopic
}

type TxDeliverSuccEvent struct {
	TxDeliverEvent
}
type TxDeliverFailEvent struct {
	TxDeliverEvent
}
