package app

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cosmos/cosmos-sdk/version"

	tmcfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/cli"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/lcnem/proximax-pegzone/app/config"
	pzlog "github.com/lcnem/proximax-pegzone/common/log"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
)

// If a new config is created, change some of the default tendermint settings
func interceptLoadConfigInPlace(context *config.PegZoneContext) (err error) {
	tmpConf := tmcfg.DefaultConfig()
	err = viper.Unmarshal(tmpConf)
	if err != nil {
		return err
	}
	rootDir := tmpConf.RootDir
	configFilePath := filepath.Join(rootDir, "config", "config.toml")

	// Intercept only if the file doesn't already exist
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		conf := tmcfg.DefaultConfig()
		conf.SetRoot(rootDir)
		conf.ProfListenAddress = "localhost:6060"
		conf.P2P.RecvRate = 5120000
		conf.P2P.SendRate = 5120000
		if err := cmn.EnsureDir(filepath.Dir(configFilePath), 0700); err != nil {
			return err
		}
		tmcfg.WriteConfigFile(configFilePath, conf)
	}

	// the [log], [publication] and [bridge] sections live in the same file
	viper.SetConfigFile(configFilePath)
	if err = viper.ReadInConfig(); err != nil {
		return err
	}
	_, err = context.ParseConfig()
	return err
}

func newLogger(ctx *config.PegZoneContext) log.Logger {
	logCfg := ctx.Config.Log
	if logCfg.LogToConsole {
		return pzlog.NewConsoleLogger()
	}

	logFilePath := ""
	if logCfg.LogFileRoot == "" {
		logFilePath = path.Join(ctx.Config.RootDir, logCfg.LogFilePath)
	} else {
		logFilePath = path.Join(logCfg.LogFileRoot, logCfg.LogFilePath)
	}
	err := cmn.EnsureDir(path.Dir(logFilePath), 0755)
	if err != nil {
		panic(fmt.Sprintf("create log dir failed, err=%s", err.Error()))
	}
	return pzlog.NewAsyncFileLogger(logFilePath, logCfg.LogBuffSize)
}

// PersistentPreRunEFn returns a PersistentPreRunE function for cobra
// that initailizes the passed in context with a properly configured
// logger and config object
func PersistentPreRunEFn(context *config.PegZoneContext) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == version.VersionCmd.Name() {
			return nil
		}
		err := interceptLoadConfigInPlace(context)
		if err != nil {
			return err
		}

		logger := newLogger(context)
		logger, err = tmflags.ParseLogLevel(context.Config.LogLevel, logger, tmcfg.DefaultLogLevel())
		if err != nil {
			return err
		}
		if viper.GetBool(cli.TraceFlag) {
			logger = log.NewTracingLogger(logger)
		}
		logger = logger.With("module", "main")
		pzlog.InitLogger(logger)

		context.Logger = logger
		return nil
	}
}

// logFailedTx records which bridge message a failed DeliverTx carried
func (app *PegZoneApp) logFailedTx(txBytes []byte, log string) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := fmt.Sprintf("recovered: %v\nstack:\n%v", r, string(debug.Stack()))
			app.Logger.Error(stackTrace)
		}
	}()
	txHash := cmn.HexBytes(tmhash.Sum(txBytes)).String()
	tx, err := app.TxDecoder(txBytes)
	if err != nil {
		app.Logger.Info("failed to process invalid tx", "tx", txHash)
		return
	}
	for _, msg := range tx.GetMsgs() {
		switch msg := msg.(type) {
		case bridge.MsgPegClaim:
			app.Logger.Info("failed to process MsgPegClaim", "tx", txHash, "mainchainTx", msg.MainchainTxHash, "log", log)
		case bridge.MsgUnpeg:
			app.Logger.Info("failed to process MsgUnpeg", "tx", txHash, "from", msg.Address, "log", log)
		case bridge.MsgUnpegNotCosignedClaim:
			app.Logger.Info("failed to process MsgUnpegNotCosignedClaim", "tx", txHash, "unpegTx", msg.TxHash, "log", log)
		case bridge.MsgRequestInvitation:
			app.Logger.Info("failed to process MsgRequestInvitation", "tx", txHash, "validator", msg.Address, "log", log)
		case bridge.MsgInvitationNotCosignedClaim:
			app.Logger.Info("failed to process MsgInvitationNotCosignedClaim", "tx", txHash, "requestTx", msg.TxHash, "log", log)
		default:
			// other modules report their own failures
		}
	}
}
