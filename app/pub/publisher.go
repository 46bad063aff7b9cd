package pub

import (
	"fmt"
	"time"

	tmlog "github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/app/config"
)

var (
	Logger      tmlog.Logger
	Cfg         *config.PublicationConfig
	ToPublishCh chan BlockInfoToPublish
	IsLive      bool
)

type BridgePublisher interface {
	publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64)
	Stop()
}

// NewBridgePublisher builds the publishers enabled in cfg. Mock publishers are only built by tests.
func NewBridgePublisher(dataPath string, logger tmlog.Logger, cfg *config.PublicationConfig) BridgePublisher {
	Logger = logger.With("module", "pub")
	publishers := make([]BridgePublisher, 0, 2)
	if cfg.PublishKafka {
		publishers = append(publishers, NewKafkaBridgePublisher(logger, cfg))
	}
	if cfg.PublishLocal {
		publishers = append(publishers, NewLocalBridgePublisher(dataPath, logger, cfg))
	}
	if len(publishers) == 1 {
		return publishers[0]
	}
	return NewAggregatedBridgePublisher(publishers...)
}

// Setup initializes package level state and starts the publication loop in background
func Setup(publisher BridgePublisher, metrics *Metrics, logger tmlog.Logger, cfg *config.PublicationConfig) {
	Logger = logger.With("module", "pub")
	Cfg = cfg
	ToPublishCh = make(chan BlockInfoToPublish, cfg.PublicationChannelSize)
	IsLive = true
	go Publish(publisher, metrics, Logger, cfg, ToPublishCh)
}

func Publish(
	publisher BridgePublisher,
	metrics *Metrics,
	logger tmlog.Logger,
	cfg *config.PublicationConfig,
	toPublishCh <-chan BlockInfoToPublish) {
	var lastPublishedTime time.Time
	for blockInfo := range toPublishCh {
		logger.Debug("publisher queue status", "size", len(toPublishCh))
		if metrics != nil {
			metrics.PublicationQueueSize.Set(float64(len(toPublishCh)))
		}

		publishBlockTime := Timer(logger, fmt.Sprintf("publish bridge events, height=%d", blockInfo.height), func() {
			if cfg.PublishBridge && len(blockInfo.bridgeEvents) > 0 {
				duration := Timer(logger, "publish bridge events", func() {
					publishBridgeEvents(publisher, blockInfo.height, blockInfo.timestamp, blockInfo.bridgeEvents)
				})
				if metrics != nil {
					metrics.NumBridgeEvents.Set(float64(len(blockInfo.bridgeEvents)))
					metrics.PublishBridgeTimeMs.Set(float64(duration))
				}
			}

			if metrics != nil {
				metrics.PublicationHeight.Set(float64(blockInfo.height))
				blockInterval := time.Since(lastPublishedTime)
				lastPublishedTime = time.Now()
				metrics.PublicationBlockIntervalMs.Set(float64(blockInterval.Nanoseconds() / int64(time.Millisecond)))
			}
		})

		if metrics != nil {
			metrics.PublishBlockTimeMs.Set(float64(publishBlockTime))
		}
	}
}

func Stop(publisher BridgePublisher) {
	if !IsLive {
		Logger.Error("publication module has already been stopped")
		return
	}

	IsLive = false
	close(ToPublishCh)
	publisher.Stop()
}

func publishBridgeEvents(publisher BridgePublisher, height, timestamp int64, events []BridgeEvent) {
	msg := BridgeEvents{
		Height:    height,
		Timestamp: timestamp,
		NumOfMsgs: len(events),
		Events:    events,
	}
	publisher.publish(&msg, bridgeEventsTpe, height, timestamp)
}

func Timer(logger tmlog.Logger, description string, op func()) (durationMs int64) {
	start := time.Now()
	op()
	durationMs = time.Since(start).Nanoseconds() / int64(time.Millisecond)
	logger.Debug(description, "durationMs", durationMs)
	return durationMs
}
