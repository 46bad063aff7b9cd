package pub

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type MockBridgePublisher struct {
	BridgeEventsPublished []*BridgeEvents

	Lock             *sync.Mutex // as mock publisher is only used in testing, its no harm to have this granularity Lock
	MessagePublished uint32      // atomic integer used to determine the published messages
}

func (publisher *MockBridgePublisher) publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64) {
	publisher.Lock.Lock()
	defer publisher.Lock.Unlock()

	switch tpe {
	case bridgeEventsTpe:
		publisher.BridgeEventsPublished = append(publisher.BridgeEventsPublished, msg.(*BridgeEvents))
	default:
		panic(fmt.Errorf("does not support type %s", tpe.String()))
	}

	atomic.AddUint32(&publisher.MessagePublished, 1)
}

func (publisher *MockBridgePublisher) Stop() {
	publisher.Lock.Lock()
	defer publisher.Lock.Unlock()

	publisher.BridgeEventsPublished = make([]*BridgeEvents, 0)
}

func NewMockBridgePublisher() *MockBridgePublisher {
	return &MockBridgePublisher{
		BridgeEventsPublished: make([]*BridgeEvents, 0),
		Lock:                  &sync.Mutex{},
	}
}
