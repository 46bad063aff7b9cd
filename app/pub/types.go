package pub

import (
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

// intermediate data structure handed from the main thread to the publisher thread
type BlockInfoToPublish struct {
	height       int64
	timestamp    int64
	bridgeEvents []BridgeEvent
}

func NewBlockInfoToPublish(height int64, timestamp int64, events []bridge.BridgeEvent) BlockInfoToPublish {
	bridgeEvents := make([]BridgeEvent, 0, len(events))
	for _, e := range events {
		bridgeEvents = append(bridgeEvents, newBridgeEvent(e))
	}
	return BlockInfoToPublish{height, timestamp, bridgeEvents}
}
