package sub

import (
	"github.com/cosmos/cosmos-sdk/pubsub"

	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

func SubscribeBridgeEvent(sub *pubsub.Subscriber) error {
	return sub.Subscribe(bridge.Topic, func(event pubsub.Event) {
		switch e := event.(type) {
		case bridge.BridgeEvent:
			stagingArea.BridgeData = append(stagingArea.BridgeData, e)
		default:
			sub.Logger.Info("unknown event type")
		}
	})
}

func commitBridge() {
	if len(stagingArea.BridgeData) > 0 {
		toPublish.EventData.BridgeData = append(toPublish.EventData.BridgeData, stagingArea.BridgeData...)
	}
}
