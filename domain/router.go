package domain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// Route represents a multi-hop path through pools from a token in denom
// to a token out denom.
type Route interface {
	GetPools() []RoutablePool

	// CalculateTokenOutByTokenIn calculates the token out amount given the
	// token in amount by chaining the swap across all pools in the route.
	// Returns error if the calculation fails.
	CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (sdk.Coin, error)

	GetTokenOutDenom() string

	// PrepareResultPools strips away unnecessary fields from each pool in the
	// route, leaving only the data needed by clients.
	// Runs the quote logic one final time to compute the route prices.
	// Note that it mutates the route.
	// Returns the result pools, the spot price before the swap, the spot price
	// after the swap, and the effective price. All prices are quoted with the
	// token in as base and the token out as quote.
	PrepareResultPools(tokenIn sdk.Coin) ([]RoutablePool, osmomath.Dec, osmomath.Dec, osmomath.Dec, error)

	String() string
}

// SplitRoute is a route that was given a portion of the total amount in.
type SplitRoute interface {
	Route
	GetAmountIn() osmomath.Int
	GetAmountOut() osmomath.Int
}

// Quote is the aggregate result of routing a token in amount across one or
// more split routes. All fields are always populated; a quote with zero
// amount out and zero prices represents the "no route" state.
type Quote interface {
	GetAmountIn() sdk.Coin
	GetAmountOut() osmomath.Int
	GetRoute() []SplitRoute
	GetEffectiveFee() osmomath.Dec

	// GetPriceImpact returns the slippage of the quote: the relative deviation
	// of the effective price from the before-swap spot price. Clamped to be
	// non-negative.
	GetPriceImpact() osmomath.Dec

	GetInBaseOutQuoteSpotPrice() osmomath.Dec

	// PrepareResult mutates the quote to prepare it with the data formatted
	// for output to the client. The scaling factor adjusts displayed prices
	// for the decimal difference between the token out and token in.
	PrepareResult(scalingFactor osmomath.Dec) ([]SplitRoute, osmomath.Dec)

	String() string
}

// RouterConfig defines the config for the router.
type RouterConfig struct {
	PreferredPoolIDs []uint64 `mapstructure:"preferred-pool-ids"`

	// MaxPoolsPerRoute is the maximum number of hops in a single route.
	MaxPoolsPerRoute int `mapstructure:"max-pools-per-route"`

	// MaxRoutes is the maximum number of candidate routes to discover.
	MaxRoutes int `mapstructure:"max-routes"`

	// MaxSplitRoutes is the maximum number of routes that may receive a
	// non-zero portion of the amount in. Bounds on-chain transaction complexity.
	MaxSplitRoutes int `mapstructure:"max-split-routes"`

	// MaxSplitIterations is the number of discrete increments the amount in
	// is divided into during the split search.
	MaxSplitIterations int `mapstructure:"max-split-iterations"`

	// MinPoolLiquidityCap is the minimum liquidity cap for a pool to be
	// considered during route discovery.
	MinPoolLiquidityCap uint64 `mapstructure:"min-pool-liquidity-cap"`

	RouteCacheEnabled bool `mapstructure:"route-cache-enabled"`

	// RouteCacheSize is the maximum number of ranked route entries cached.
	RouteCacheSize int `mapstructure:"route-cache-size"`

	// RouteCacheExpirySeconds is the number of seconds to cache ranked routes
	// for before expiry.
	RouteCacheExpirySeconds uint64 `mapstructure:"route-cache-expiry-seconds"`
}

// DefaultRouterConfig is the router config used when the config file leaves
// the router section unset.
var DefaultRouterConfig = RouterConfig{
	MaxPoolsPerRoute:        2,
	MaxRoutes:               20,
	MaxSplitRoutes:          5,
	MaxSplitIterations:      10,
	MinPoolLiquidityCap:     0,
	RouteCacheEnabled:       true,
	RouteCacheSize:          1000,
	RouteCacheExpirySeconds: 300,
}
