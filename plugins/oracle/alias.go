package oracle

import (
	"github.com/lcnem/proximax-pegzone/plugins/oracle/keeper"
	"github.com/lcnem/proximax-pegzone/plugins/oracle/types"
)

type (
	Keeper           = keeper.Keeper
	Claim            = types.Claim
	Prophecy         = types.Prophecy
	DBProphecy       = types.DBProphecy
	Status           = types.Status
	StatusText       = types.StatusText
	ProphecyParams   = types.ProphecyParams
	ProphecyResponse = types.ProphecyResponse
	StakingKeeper    = types.StakingKeeper
)

const (
	PendingStatusText = types.PendingStatusText
	SuccessStatusText = types.SuccessStatusText
	FailedStatusText  = types.FailedStatusText

	DefaultCodespace  = types.DefaultCodespace
	DefaultParamspace = types.DefaultParamspace
)

var (
	NewKeeper             = keeper.NewKeeper
	ParamTypeTable        = keeper.ParamTypeTable
	NewClaim              = types.NewClaim
	NewProphecy           = types.NewProphecy
	NewStatus             = types.NewStatus
	DefaultProphecyParams = types.DefaultProphecyParams
	NewProphecyResponse   = types.NewProphecyResponse
	ErrProphecyNotFound   = types.ErrProphecyNotFound
)
