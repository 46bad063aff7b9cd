package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/pubsub"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/bank"
	"github.com/cosmos/cosmos-sdk/x/params"
	"github.com/cosmos/cosmos-sdk/x/stake"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/lcnem/proximax-pegzone/app/config"
	"github.com/lcnem/proximax-pegzone/app/pub"
	appsub "github.com/lcnem/proximax-pegzone/app/pub/sub"
	"github.com/lcnem/proximax-pegzone/common"
	pzlog "github.com/lcnem/proximax-pegzone/common/log"
	"github.com/lcnem/proximax-pegzone/common/tx"
	"github.com/lcnem/proximax-pegzone/common/types"
	"github.com/lcnem/proximax-pegzone/plugins/bridge"
	"github.com/lcnem/proximax-pegzone/plugins/oracle"
	"github.com/lcnem/proximax-pegzone/wire"
)

const (
	appName = "PegZone"

	// accounts kept in the account store cache across blocks
	accountCacheSize = 30000
)

// default home directories for expected binaries
var (
	DefaultCLIHome  = "$HOME/.pxbcli"
	DefaultNodeHome = "$HOME/.pxbd"
)

// ServerContext is the node wide context, filled by PersistentPreRunEFn
var ServerContext = config.NewDefaultContext()

// PegZoneApp is the ABCI application of the ProximaX peg zone
type PegZoneApp struct {
	*baseapp.BaseApp
	Codec *wire.Codec

	// the abci query handler mapping is `prefix -> handler`
	queryHandlers map[string]types.AbciQueryHandler

	// keepers
	AccountKeeper auth.AccountKeeper
	CoinKeeper    bank.Keeper
	ParamsKeeper  params.Keeper
	StakeKeeper   stake.Keeper
	OracleKeeper  oracle.Keeper
	BridgeKeeper  bridge.Keeper

	bridgeConfig      *config.BridgeConfig
	publicationConfig *config.PublicationConfig
	publisher         pub.BridgePublisher

	psServer   *pubsub.Server
	subscriber *pubsub.Subscriber

	metrics *pub.Metrics
}

// NewPegZoneApp creates a new instance of the PegZoneApp.
func NewPegZoneApp(logger log.Logger, db dbm.DB, traceStore io.Writer, baseAppOptions ...func(*baseapp.BaseApp)) *PegZoneApp {
	return NewPegZoneAppWithPublisher(logger, db, traceStore, nil, baseAppOptions...)
}

// NewPegZoneAppWithPublisher creates the app with an explicit bridge publisher.
// A nil publisher is built from the publication config.
func NewPegZoneAppWithPublisher(logger log.Logger, db dbm.DB, traceStore io.Writer, publisher pub.BridgePublisher, baseAppOptions ...func(*baseapp.BaseApp)) *PegZoneApp {
	// create app-level codec for txs and accounts
	var cdc = MakeCodec()

	// create the application object
	var app = &PegZoneApp{
		BaseApp:           baseapp.NewBaseApp(appName, logger, db, auth.DefaultTxDecoder(cdc), sdk.CollectConfig{}, baseAppOptions...),
		Codec:             cdc,
		queryHandlers:     make(map[string]types.AbciQueryHandler),
		bridgeConfig:      ServerContext.Config.Bridge,
		publicationConfig: ServerContext.Config.Publication,
	}
	app.SetCommitMultiStoreTracer(traceStore)

	// mappers
	app.AccountKeeper = auth.NewAccountKeeper(cdc, common.AccountStoreKey, types.ProtoAppAccount)

	// keepers
	app.CoinKeeper = bank.NewBaseKeeper(app.AccountKeeper)
	app.ParamsKeeper = params.NewKeeper(cdc, common.ParamsStoreKey, common.TParamsStoreKey)
	app.StakeKeeper = stake.NewKeeper(
		cdc,
		common.StakeStoreKey, common.StakeRewardStoreKey, common.TStakeStoreKey,
		app.CoinKeeper, app.Pool, app.ParamsKeeper.Subspace(stake.DefaultParamspace),
		app.RegisterCodespace(stake.DefaultCodespace),
	)
	app.OracleKeeper = oracle.NewKeeper(cdc, common.OracleStoreKey, app.ParamsKeeper.Subspace(oracle.DefaultParamspace), app.StakeKeeper)
	app.RegisterCodespace(oracle.DefaultCodespace)
	app.BridgeKeeper = bridge.NewKeeper(cdc, common.BridgeStoreKey, app.OracleKeeper, app.CoinKeeper)
	app.RegisterCodespace(bridge.DefaultCodespace)

	if app.publicationConfig.ShouldPublishAny() {
		if publisher == nil {
			publisher = pub.NewBridgePublisher(ServerContext.Config.DBDir(), logger, app.publicationConfig)
		}
		app.publisher = publisher
		app.metrics = pub.PrometheusMetrics()
		pub.Setup(app.publisher, app.metrics, logger, app.publicationConfig)

		app.startPubSub(logger)
		app.subscribeEvent(logger)
		// the bridge handlers capture the keeper by value
		app.BridgeKeeper.SetPbsbServer(app.psServer)
	}

	// register message routes and abci queries
	app.registerHandlers()

	// initialize BaseApp
	app.SetInitChainer(app.initChainerFn())
	app.SetEndBlocker(app.EndBlocker)
	app.MountStoresIAVL(
		common.MainStoreKey,
		common.AccountStoreKey,
		common.ParamsStoreKey,
		common.StakeStoreKey,
		common.StakeRewardStoreKey,
		common.OracleStoreKey,
		common.BridgeStoreKey,
	)
	app.MountStoresTransient(common.TParamsStoreKey, common.TStakeStoreKey)
	app.SetAnteHandler(tx.NewAnteHandler(app.AccountKeeper))
	app.SetPreChecker(tx.NewTxPreChecker())

	if err := app.LoadLatestVersion(common.MainStoreKey); err != nil {
		cmn.Exit(err.Error())
	}

	// init app cache
	accountStore := app.GetCommitMultiStore().GetKVStore(common.AccountStoreKey)
	app.SetAccountStoreCache(cdc, accountStore, accountCacheSize)
	// rebuild the check state on top of the account cache
	app.SetCheckState(app.CheckState.Ctx.BlockHeader())

	return app
}

func (app *PegZoneApp) startPubSub(logger log.Logger) {
	pubLogger := logger.With("module", "pegzone_pubsub")
	app.psServer = pubsub.NewServer(pubLogger)
	if err := app.psServer.Start(); err != nil {
		panic(err)
	}
}

func (app *PegZoneApp) subscribeEvent(logger log.Logger) {
	subLogger := logger.With("module", "pegzone_sub")
	sub, err := app.psServer.NewSubscriber(pubsub.ClientID("pegzone_app"), subLogger)
	if err != nil {
		panic(err)
	}
	if err = appsub.SubscribeEvent(sub, app.publicationConfig); err != nil {
		panic(err)
	}
	app.subscriber = sub
}

func (app *PegZoneApp) registerHandlers() {
	app.Router().
		AddRoute("bank", bank.NewHandler(app.CoinKeeper)).
		AddRoute("stake", stake.NewStakeHandler(app.StakeKeeper))

	oracle.InitPlugin(app, app.OracleKeeper)
	bridge.InitPlugin(app, app.BridgeKeeper)
	app.RegisterQueryHandler(AccountQueryPrefix, createAccountQueryHandler(app.AccountKeeper))
}

// initChainerFn performs custom logic for chain initialization.
func (app *PegZoneApp) initChainerFn() sdk.InitChainer {
	return func(ctx sdk.Context, req abci.RequestInitChain) abci.ResponseInitChain {
		stateJSON := req.AppStateBytes

		genesisState := new(GenesisState)
		err := app.Codec.UnmarshalJSON(stateJSON, genesisState)
		if err != nil {
			panic(err)
		}

		for _, gacc := range genesisState.Accounts {
			acc := gacc.ToAppAccount()
			acc.AccountNumber = app.AccountKeeper.GetNextAccountNumber(ctx)
			app.AccountKeeper.SetAccount(ctx, acc)
		}

		validators, err := stake.InitGenesis(ctx, app.StakeKeeper, genesisState.StakeData)
		if err != nil {
			panic(err)
		}

		if len(genesisState.GenTxs) > 0 {
			for _, genTx := range genesisState.GenTxs {
				var genStdTx auth.StdTx
				if err = app.Codec.UnmarshalJSON(genTx, &genStdTx); err != nil {
					panic(err)
				}
				bz := app.Codec.MustMarshalBinaryLengthPrefixed(genStdTx)
				res := app.BaseApp.DeliverTx(abci.RequestDeliverTx{Tx: bz})
				if !res.IsOK() {
					panic(res.Log)
				}
			}
			_, validators = app.StakeKeeper.ApplyAndReturnValidatorSetUpdates(ctx)
		}

		bridgeData := genesisState.BridgeData
		if bridgeData.ConsensusNeeded.IsZero() {
			if bridgeData.ConsensusNeeded, err = app.bridgeConfig.ConsensusThreshold(); err != nil {
				panic(err)
			}
		}
		if err := bridge.InitGenesis(ctx, app.BridgeKeeper, bridgeData); err != nil {
			panic(err)
		}

		return abci.ResponseInitChain{
			Validators: validators,
		}
	}
}

// DeliverTx tells the subscriber whether the events staged while running the tx should be kept
func (app *PegZoneApp) DeliverTx(req abci.RequestDeliverTx) (res abci.ResponseDeliverTx) {
	res = app.BaseApp.DeliverTx(req)
	if !res.IsOK() {
		app.logFailedTx(req.Tx, res.Log)
	}
	if app.psServer == nil {
		return res
	}
	if res.IsOK() {
		app.psServer.Publish(appsub.TxDeliverSuccEvent{})
	} else {
		app.psServer.Publish(appsub.TxDeliverFailEvent{})
	}
	return res
}

// EndBlocker applies validator set changes and hands the bridge events of the block to the publisher
func (app *PegZoneApp) EndBlocker(ctx sdk.Context, req abci.RequestEndBlock) abci.ResponseEndBlock {
	validatorUpdates, _ := stake.EndBlocker(ctx.WithEventManager(sdk.NewEventManager()), app.StakeKeeper)

	if app.publicationConfig.ShouldPublishAny() && pub.IsLive {
		app.subscriber.Wait()
		blockTime := ctx.BlockHeader().Time
		appsub.SetMeta(ctx.BlockHeight(), blockTime)
		published := appsub.ToPublish()
		pub.ToPublishCh <- pub.NewBlockInfoToPublish(
			published.Height,
			blockTime.UnixNano()/1e6,
			published.EventData.BridgeData)
		appsub.Clear()
	}

	return abci.ResponseEndBlock{
		ValidatorUpdates: validatorUpdates,
	}
}

// ExportAppStateAndValidators exports blockchain world state to json.
func (app *PegZoneApp) ExportAppStateAndValidators() (appState json.RawMessage, validators []tmtypes.GenesisValidator, err error) {
	ctx := app.NewContext(sdk.RunTxModeCheck, abci.Header{})

	accounts := []GenesisAccount{}
	appendAccount := func(acc sdk.Account) (stop bool) {
		account := GenesisAccount{
			Address: acc.GetAddress(),
			Coins:   acc.GetCoins(),
		}
		if named, ok := acc.(types.NamedAccount); ok {
			account.Name = named.GetName()
		}
		accounts = append(accounts, account)
		return false
	}
	app.AccountKeeper.IterateAccounts(ctx, appendAccount)

	genState := GenesisState{
		Accounts:   accounts,
		StakeData:  stake.ExportGenesis(ctx, app.StakeKeeper),
		BridgeData: bridge.ExportGenesis(ctx, app.BridgeKeeper),
	}
	appState, err = wire.MarshalJSONIndent(app.Codec, genState)
	if err != nil {
		return nil, nil, err
	}
	validators = stake.WriteValidators(ctx, app.StakeKeeper)
	return appState, validators, nil
}

// Query performs an abci query.
func (app *PegZoneApp) Query(req abci.RequestQuery) (res abci.ResponseQuery) {
	path := baseapp.SplitPath(req.Path)
	if len(path) == 0 {
		msg := "no query path provided"
		return sdk.ErrUnknownRequest(msg).QueryResult()
	}
	prefix := path[0]
	if handler, ok := app.queryHandlers[prefix]; ok {
		res := handler(app, req, path)
		if res == nil {
			return app.BaseApp.Query(req)
		}
		return *res
	}
	return app.BaseApp.Query(req)
}

// RegisterQueryHandler registers an abci query handler, implements ChainApp.RegisterQueryHandler.
func (app *PegZoneApp) RegisterQueryHandler(prefix string, handler types.AbciQueryHandler) {
	if _, ok := app.queryHandlers[prefix]; ok {
		panic(fmt.Errorf("registerQueryHandler: prefix `%s` is already registered", prefix))
	}
	app.queryHandlers[prefix] = handler
}

// GetCodec returns the app's Codec.
func (app *PegZoneApp) GetCodec() *wire.Codec {
	return app.Codec
}

// GetRouter returns the app's Router.
func (app *PegZoneApp) GetRouter() baseapp.Router {
	return app.Router()
}

// GetContextForCheckState gets the context for the check state.
func (app *PegZoneApp) GetContextForCheckState() sdk.Context {
	return app.CheckState.Ctx
}

// Stop flushes the bridge publisher, if any, and then the file logger.
func (app *PegZoneApp) Stop() {
	if app.publisher != nil {
		pub.Stop(app.publisher)
	}
	pzlog.StopFileLogger()
}

// MakeCodec creates a custom tx codec.
func MakeCodec() *wire.Codec {
	var cdc = wire.NewCodec()

	wire.RegisterCrypto(cdc) // Register crypto.
	sdk.RegisterCodec(cdc)   // Register Msgs
	bank.RegisterCodec(cdc)
	stake.RegisterCodec(cdc)
	tx.RegisterWire(cdc)

	types.RegisterWire(cdc)
	oracle.RegisterWire(cdc)
	bridge.RegisterWire(cdc)
	return cdc
}
