package pub

type AggregatedBridgePublisher struct {
	publishers []BridgePublisher
}

func (publisher *AggregatedBridgePublisher) publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64) {
	for _, pub := range publisher.publishers {
		pub.publish(msg, tpe, height, timestamp)
	}
}

func (publisher *AggregatedBridgePublisher) Stop() {
	for _, pub := range publisher.publishers {
		pub.Stop()
	}
}

func NewAggregatedBridgePublisher(publishers ...BridgePublisher) (publisher *AggregatedBridgePublisher) {
	return &AggregatedBridgePublisher{
		publishers,
	}
}
