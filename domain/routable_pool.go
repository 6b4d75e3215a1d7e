package domain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// RoutablePool is an interface that represents a pool that can be routed over.
// It is a pool view bound to a token out denom for one hop of a route.
// All methods are pure with respect to pool state.
type RoutablePool interface {
	GetId() uint64

	GetType() PoolType

	GetPoolDenoms() []string

	GetBalances() sdk.Coins

	GetTokenOutDenom() string

	// SetTokenOutDenom sets the token out denom on the routable pool.
	SetTokenOutDenom(tokenOutDenom string)

	// GetSpreadFactor returns the swap fee rate charged by the pool.
	GetSpreadFactor() osmomath.Dec

	// GetLiquidityCap returns the pool liquidity capitalization.
	GetLiquidityCap() osmomath.Int

	// CalcSpotPrice returns the instantaneous exchange rate implied by the
	// current pool balances, quoted as quoteDenom units per one baseDenom unit.
	// The swap fee is excluded.
	CalcSpotPrice(baseDenom string, quoteDenom string) (osmomath.BigDec, error)

	// CalcSpotPriceAfterSwap returns the marginal exchange rate that the pool
	// would quote after hypothetically executing the given swap, quoted as
	// quoteDenom units per one tokenIn denom unit. Pool state is not mutated.
	CalcSpotPriceAfterSwap(tokenIn sdk.Coin, quoteDenom string) (osmomath.BigDec, error)

	// CalculateTokenOutByTokenIn calculates the token out amount given the
	// token in amount, charging the pool swap fee on the input.
	// Returns error if the calculation fails.
	CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (sdk.Coin, error)

	String() string
}

// RoutableResultPool is a routable pool that carries the balances needed by
// clients after a quote has been prepared.
type RoutableResultPool interface {
	RoutablePool
}
