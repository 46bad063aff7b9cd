package pub

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/natefinch/lumberjack"

	tmLogger "github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/app/config"
)

// Publish bridge events to the bridge dir in pxbd home,
// each message is written as one json line, the file is compressed and auto-rotated
type LocalBridgePublisher struct {
	producer *log.Logger
	tmLogger tmLogger.Logger
}

func (publisher *LocalBridgePublisher) publish(msg AvroOrJsonMsg, tpe msgType, height int64, timestamp int64) {
	if jsonBytes, err := json.Marshal(msg); err == nil {
		if err := publisher.producer.Output(2, fmt.Sprintln(string(jsonBytes))); err != nil {
			publisher.tmLogger.Error("failed to publish msg", "err", err, "height", height, "msg", msg.String())
		}
	} else {
		publisher.tmLogger.Error("failed to publish msg", "err", err, "height", height, "msg", msg.String())
	}
}

func (publisher *LocalBridgePublisher) Stop() {
	publisher.tmLogger.Info("local publisher stopped")
}

func NewLocalBridgePublisher(
	dataPath string,
	tmLogger tmLogger.Logger,
	cfg *config.PublicationConfig) (publisher *LocalBridgePublisher) {
	fileWriter := &lumberjack.Logger{
		Filename: filepath.Join(dataPath, "bridge", "bridge.json"),
		MaxSize:  cfg.LocalMaxSize,
		MaxAge:   cfg.LocalMaxAge,
		Compress: true,
	}
	return &LocalBridgePublisher{
		log.New(fileWriter, "", 0),
		tmLogger,
	}
}
