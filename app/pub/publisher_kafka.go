package pub

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shopify/sarama"
	prometheusmetrics "github.com/deathowl/go-metrics-prometheus"
	"github.com/eapache/go-resiliency/breaker"
	"github.com/linkedin/goavro"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/app/config"
)

const (
	KafkaBrokerSep = ";"
)

type KafkaBridgePublisher struct {
	bridgeEventsCodec *goavro.Codec

	topic    string
	producer sarama.SyncProducer
}

func (publisher *KafkaBridgePublisher) newProducer(cfg *config.PublicationConfig) (saramaCfg *sarama.Config, err error) {
	saramaCfg = sarama.NewConfig()
	if saramaCfg.Version, err = sarama.ParseKafkaVersion(cfg.KafkaVersion); err != nil {
		return
	}
	if saramaCfg.ClientID, err = os.Hostname(); err != nil {
		return
	}

	saramaCfg.Producer.Partitioner = sarama.NewRandomPartitioner
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Retry.Max = 20
	saramaCfg.Producer.Compression = sarama.CompressionGZIP

	// keeps messages of consecutive blocks in order
	saramaCfg.Net.MaxOpenRequests = 1

	publisher.producer, err = publisher.connectWithRetry(strings.Split(cfg.BridgeKafka, KafkaBrokerSep), saramaCfg)
	if err != nil {
		Logger.Error("failed to create bridge events producer", "err", err)
	}
	return
}

func (publisher *KafkaBridgePublisher) prepareMessage(
	msgId string,
	timeStamp int64,
	msgTpe msgType,
	message []byte) *sarama.ProducerMessage {
	return &sarama.ProducerMessage{
		Topic:     publisher.topic,
		Partition: -1,
		Key:       sarama.StringEncoder(fmt.Sprintf("%s_%d_%s", msgId, timeStamp, msgTpe.String())),
		Value:     sarama.ByteEncoder(message),
	}
}

func (publisher *KafkaBridgePublisher) publish(avroMessage AvroOrJsonMsg, tpe msgType, height, timestamp int64) {
	msg, err := publisher.marshal(avroMessage, tpe)
	if err != nil {
		Logger.Error("failed to publish", "topic", publisher.topic, "msg", avroMessage.String(), "err", err)
		return
	}
	kafkaMsg := publisher.prepareMessage(strconv.FormatInt(height, 10), timestamp, tpe, msg)
	if partition, offset, err := publisher.publishWithRetry(kafkaMsg); err == nil {
		Logger.Info("published", "topic", publisher.topic, "msg", avroMessage.String(), "offset", offset, "partition", partition)
	} else {
		Logger.Error("failed to publish", "topic", publisher.topic, "msg", avroMessage.String(), "err", err)
	}
}

func (publisher *KafkaBridgePublisher) Stop() {
	Logger.Debug("start to stop KafkaBridgePublisher")
	// nil check because this method would be called when we failed to create producer
	if publisher.producer != nil {
		if err := publisher.producer.Close(); err != nil {
			Logger.Error("failed to stop producer for topic", "topic", publisher.topic, "err", err)
		}
	}
	Logger.Debug("finished stop KafkaBridgePublisher")
}

// endlessly retry on retriable errors, the abnormal situation should be reported by prometheus alarm
func (publisher *KafkaBridgePublisher) connectWithRetry(
	hostports []string,
	saramaCfg *sarama.Config) (producer sarama.SyncProducer, err error) {
	backOffInSeconds := time.Duration(1)

	for {
		if producer, err = sarama.NewSyncProducer(hostports, saramaCfg); err == sarama.ErrOutOfBrokers || err == breaker.ErrBreakerOpen {
			backOffInSeconds <<= 1
			Logger.Error("encountered retriable error, retrying...", "after", backOffInSeconds, "err", err)
			time.Sleep(backOffInSeconds * time.Second)
		} else {
			return
		}
	}
}

// endlessly retry on retriable errors, the abnormal situation should be reported by prometheus alarm
func (publisher *KafkaBridgePublisher) publishWithRetry(
	message *sarama.ProducerMessage) (partition int32, offset int64, err error) {
	backOffInSeconds := time.Duration(1)

	for {
		if partition, offset, err = publisher.producer.SendMessage(message); err == sarama.ErrOutOfBrokers || err == breaker.ErrBreakerOpen {
			backOffInSeconds <<= 1
			Logger.Error("encountered retriable error, retrying...", "after", backOffInSeconds, "err", err)
			time.Sleep(backOffInSeconds * time.Second)
		} else {
			return
		}
	}
}

func (publisher *KafkaBridgePublisher) marshal(msg AvroOrJsonMsg, tpe msgType) ([]byte, error) {
	native := msg.ToNativeMap()
	Logger.Debug("msgDetail", "msg", native)
	var codec *goavro.Codec
	switch tpe {
	case bridgeEventsTpe:
		codec = publisher.bridgeEventsCodec
	default:
		return nil, fmt.Errorf("doesn't support marshal kafka msg tpe: %s", tpe.String())
	}
	bb, err := codec.BinaryFromNative(nil, native)
	if err != nil {
		Logger.Error("failed to serialize message", "msg", msg, "err", err)
	}
	return bb, err
}

func (publisher *KafkaBridgePublisher) initAvroCodecs() (err error) {
	publisher.bridgeEventsCodec, err = goavro.NewCodec(bridgeEventsSchema)
	return err
}

func NewKafkaBridgePublisher(logger log.Logger, cfg *config.PublicationConfig) (publisher *KafkaBridgePublisher) {
	sarama.Logger = saramaLogger{logger.With("module", "sarama")}
	publisher = &KafkaBridgePublisher{
		topic: cfg.BridgeTopic,
	}

	if err := publisher.initAvroCodecs(); err != nil {
		logger.Error("failed to initialize avro codec", "err", err)
		panic(err)
	}

	if saramaCfg, err := publisher.newProducer(cfg); err != nil {
		logger.Error("failed to create new kafka producer", "err", err)
		panic(err)
	} else {
		// we have to use the same prometheus registerer with tendermint
		// so that we can share same host:port for prometheus daemon
		pClient := prometheusmetrics.NewPrometheusProvider(
			saramaCfg.MetricRegistry,
			"",
			"publication",
			prometheus.DefaultRegisterer,
			1*time.Second)
		go pClient.UpdatePrometheusMetrics()
	}

	return publisher
}
