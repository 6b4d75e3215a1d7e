package domain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CandidatePool is a pool in a candidate route together with the denom that
// the route exits the pool with.
type CandidatePool struct {
	ID            uint64 `json:"id"`
	TokenOutDenom string `json:"token_out_denom"`
}

// CandidateRoute is a candidate route: an ordered sequence of pools
// connecting a token in denom to a token out denom.
type CandidateRoute struct {
	Pools []CandidatePool `json:"pools"`
}

// CandidateRoutes represents the candidate routes for a given token in and
// token out denom pair.
type CandidateRoutes struct {
	// Routes are sorted by discovery order: direct routes precede multi-hop
	// routes, and within the same hop count pools with larger liquidity come
	// first.
	Routes        []CandidateRoute    `json:"routes"`
	UniquePoolIDs map[uint64]struct{} `json:"unique_pool_ids"`
}

// CandidateRouteSearchOptions represents the options for finding candidate routes.
type CandidateRouteSearchOptions struct {
	// MaxRoutes is the maximum number of routes to find.
	MaxRoutes int
	// MaxPoolsPerRoute is the maximum number of pools to consider for each route.
	MaxPoolsPerRoute int
	// MinPoolLiquidityCap is the minimum liquidity cap for a pool to be considered.
	MinPoolLiquidityCap uint64
}

// CandidateRouteSearcher is the interface for finding candidate routes.
type CandidateRouteSearcher interface {
	// FindCandidateRoutes finds candidate routes for a given tokenIn and
	// tokenOutDenom using the given options.
	// Returns the candidate routes and an error if any.
	FindCandidateRoutes(pools []PoolI, tokenIn sdk.Coin, tokenOutDenom string, options CandidateRouteSearchOptions) (CandidateRoutes, error)
}
