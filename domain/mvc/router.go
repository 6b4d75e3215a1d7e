package mvc

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
)

// RouterUsecase represents the router's use cases.
type RouterUsecase interface {
	// GetOptimalQuote returns the optimal quote for the given tokenIn and
	// tokenOutDenom, splitting the amount in across several routes when that
	// strictly increases the amount out.
	// A zero-valued quote, not an error, is returned when the amount in is
	// zero, the denoms are equal, or no route exists.
	GetOptimalQuote(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.Quote, error)

	// GetBestSingleRouteQuote returns the best quote routed over a single
	// route without splits.
	GetBestSingleRouteQuote(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.Quote, error)

	// GetCandidateRoutes returns the candidate routes for the given denom pair.
	GetCandidateRoutes(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.CandidateRoutes, error)

	// GetSpotPriceForPool returns the spot price of the given pool quoted in
	// quoteDenom units per one baseDenom unit.
	GetSpotPriceForPool(ctx context.Context, poolID uint64, baseDenom, quoteDenom string) (osmomath.BigDec, error)
}
