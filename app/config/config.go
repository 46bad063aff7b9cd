package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	tmcfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	DefaultLogFilePath = "pxbd.log"
	DefaultBridgeTopic = "bridge"
)

type PegZoneContext struct {
	Config *PegZoneConfig
	Logger log.Logger
}

func NewDefaultContext() *PegZoneContext {
	return &PegZoneContext{DefaultPegZoneConfig(), log.NewTMLogger(log.NewSyncWriter(os.Stdout))}
}

func (context *PegZoneContext) ToCosmosServerCtx() *server.Context {
	return &server.Context{Config: &context.Config.Config, Logger: context.Logger}
}

type PegZoneConfig struct {
	tmcfg.Config `mapstructure:",squash"`

	// Extended options for the peg zone
	Log         *LogConfig         `mapstructure:"log"`
	Publication *PublicationConfig `mapstructure:"publication"`
	Bridge      *BridgeConfig      `mapstructure:"bridge"`
}

type LogConfig struct {
	LogToConsole bool   `mapstructure:"logToConsole"`
	LogFileRoot  string `mapstructure:"logFileRoot"`
	LogFilePath  string `mapstructure:"logFilePath"`
	LogBuffSize  int64  `mapstructure:"logBuffSize"`
}

type PublicationConfig struct {
	PublishBridge bool   `mapstructure:"publishBridge"`
	BridgeTopic   string `mapstructure:"bridgeTopic"`
	BridgeKafka   string `mapstructure:"bridgeKafka"`

	PublishKafka bool   `mapstructure:"publishKafka"`
	KafkaVersion string `mapstructure:"kafkaVersion"`

	PublishLocal bool `mapstructure:"publishLocal"`
	// in MB
	LocalMaxSize int `mapstructure:"localMaxSize"`
	// in days
	LocalMaxAge int `mapstructure:"localMaxAge"`

	PublicationChannelSize int `mapstructure:"publicationChannelSize"`
}

type BridgeConfig struct {
	// share of the last total power that must agree before a prophecy succeeds, applied at genesis
	ConsensusNeeded string `mapstructure:"consensusNeeded"`
}

func DefaultPegZoneConfig() *PegZoneConfig {
	return &PegZoneConfig{
		Config:      *tmcfg.DefaultConfig(),
		Log:         defaultLogConfig(),
		Publication: defaultPublicationConfig(),
		Bridge:      defaultBridgeConfig(),
	}
}

func defaultLogConfig() *LogConfig {
	return &LogConfig{
		LogToConsole: true,
		LogFilePath:  DefaultLogFilePath,
		LogBuffSize:  10000,
	}
}

func defaultPublicationConfig() *PublicationConfig {
	return &PublicationConfig{
		PublishBridge: false,
		BridgeTopic:   DefaultBridgeTopic,
		BridgeKafka:   "127.0.0.1:9092",

		PublishKafka: false,
		KafkaVersion: "2.1.0",

		PublishLocal: false,
		LocalMaxSize: 1024,
		LocalMaxAge:  7,

		PublicationChannelSize: 10000,
	}
}

func defaultBridgeConfig() *BridgeConfig {
	return &BridgeConfig{
		ConsensusNeeded: "0.7",
	}
}

func (pubCfg PublicationConfig) ShouldPublishAny() bool {
	return pubCfg.PublishBridge
}

// Validate checks the sections that tendermint does not know about
func (context *PegZoneContext) Validate() error {
	pubCfg := context.Config.Publication
	if pubCfg.PublishKafka {
		if _, err := sarama.ParseKafkaVersion(pubCfg.KafkaVersion); err != nil {
			return errors.Wrap(err, "invalid kafkaVersion")
		}
		if pubCfg.PublishBridge && pubCfg.BridgeKafka == "" {
			return errors.New("bridgeKafka must be set when publishing bridge events to kafka")
		}
	}
	if pubCfg.PublicationChannelSize <= 0 {
		return errors.Errorf("publicationChannelSize must be positive, got %d", pubCfg.PublicationChannelSize)
	}
	if _, err := context.Config.Bridge.ConsensusThreshold(); err != nil {
		return err
	}
	return nil
}

// ConsensusThreshold parses ConsensusNeeded, which must lie in (0, 1]
func (bridgeCfg BridgeConfig) ConsensusThreshold() (sdk.Dec, error) {
	threshold, err := parseDec(bridgeCfg.ConsensusNeeded)
	if err != nil {
		return sdk.Dec{}, errors.Wrapf(err, "invalid consensusNeeded %q", bridgeCfg.ConsensusNeeded)
	}
	if !threshold.GT(sdk.ZeroDec()) || threshold.GT(sdk.OneDec()) {
		return sdk.Dec{}, errors.Errorf("consensusNeeded must be in (0, 1], got %s", threshold)
	}
	return threshold, nil
}

// parseDec reads a plain decimal like "0.7" or "1". sdk.NewDecFromStr of the
// cosmos fork only takes the raw scaled integer.
func parseDec(str string) (sdk.Dec, error) {
	str = strings.TrimSpace(str)
	parts := strings.Split(str, ".")
	if len(parts) > 2 || parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return sdk.Dec{}, errors.Errorf("bad decimal %q", str)
	}
	digits := strings.Join(parts, "")
	prec := 0
	if len(parts) == 2 {
		prec = len(parts[1])
	}
	if prec > sdk.Precision {
		return sdk.Dec{}, errors.Errorf("decimal %q has more than %d fraction digits", str, sdk.Precision)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return sdk.Dec{}, errors.Errorf("bad decimal %q", str)
		}
	}
	// keeps NewDecWithPrec clear of int64 overflow
	if len(digits) > 10 {
		return sdk.Dec{}, errors.Errorf("decimal %q out of range", str)
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return sdk.Dec{}, errors.Wrapf(err, "bad decimal %q", str)
	}
	return sdk.NewDecWithPrec(v, int64(prec)), nil
}

func (context *PegZoneContext) ParseConfig() (*PegZoneConfig, error) {
	err := viper.Unmarshal(context.Config)
	if err != nil {
		return nil, err
	}
	context.Config.SetRoot(context.Config.RootDir)
	tmcfg.EnsureRoot(context.Config.RootDir)
	if err := context.Validate(); err != nil {
		return nil, err
	}
	return context.Config, nil
}
