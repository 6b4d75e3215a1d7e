package route

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/router/usecase/pools"
)

var _ domain.Route = &RouteImpl{}

// RouteImpl is an ordered sequence of routable pools connecting a token in
// denom to a token out denom.
type RouteImpl struct {
	Pools []domain.RoutablePool `json:"pools"`
}

// PrepareResultPools implements domain.Route.
// Strips away unnecessary fields from each pool in the route, leaving only
// the data needed by the client.
// Runs the quote logic one final time to compute the route prices.
// Note that it mutates the route.
// Returns the result pools and the spot price before the swap, the spot
// price after the swap, and the effective price, all with the token in as
// base and the token out as quote.
func (r RouteImpl) PrepareResultPools(tokenIn sdk.Coin) ([]domain.RoutablePool, osmomath.Dec, osmomath.Dec, osmomath.Dec, error) {
	var (
		routeSpotPriceInBaseOutQuote      = osmomath.OneBigDec()
		routeSpotPriceAfterInBaseOutQuote = osmomath.OneBigDec()
		effectiveSpotPriceInBaseOutQuote  = osmomath.OneBigDec()
	)

	newPools := make([]domain.RoutablePool, 0, len(r.Pools))

	for _, pool := range r.Pools {
		if tokenIn.Amount.IsNil() || tokenIn.Amount.IsZero() {
			return nil, osmomath.ZeroDec(), osmomath.ZeroDec(), osmomath.ZeroDec(), nil
		}

		spotPriceInBaseOutQuote, err := pool.CalcSpotPrice(tokenIn.Denom, pool.GetTokenOutDenom())
		if err != nil {
			return nil, osmomath.Dec{}, osmomath.Dec{}, osmomath.Dec{}, err
		}

		spotPriceAfterInBaseOutQuote, err := pool.CalcSpotPriceAfterSwap(tokenIn, pool.GetTokenOutDenom())
		if err != nil {
			return nil, osmomath.Dec{}, osmomath.Dec{}, osmomath.Dec{}, err
		}

		tokenOut, err := pool.CalculateTokenOutByTokenIn(tokenIn)
		if err != nil {
			return nil, osmomath.Dec{}, osmomath.Dec{}, osmomath.Dec{}, err
		}

		routeSpotPriceInBaseOutQuote.MulMut(spotPriceInBaseOutQuote)
		routeSpotPriceAfterInBaseOutQuote.MulMut(spotPriceAfterInBaseOutQuote)
		effectiveSpotPriceInBaseOutQuote.MulMut(osmomath.BigDecFromDec(tokenOut.Amount.ToLegacyDec().Quo(tokenIn.Amount.ToLegacyDec())))

		newPools = append(newPools, pools.NewRoutableResultPool(
			pool.GetId(),
			pool.GetType(),
			pool.GetSpreadFactor(),
			pool.GetTokenOutDenom(),
		))

		tokenIn = tokenOut
	}

	return newPools, routeSpotPriceInBaseOutQuote.Dec(), routeSpotPriceAfterInBaseOutQuote.Dec(), effectiveSpotPriceInBaseOutQuote.Dec(), nil
}

// GetPools implements domain.Route.
func (r *RouteImpl) GetPools() []domain.RoutablePool {
	return r.Pools
}

// CalculateTokenOutByTokenIn implements domain.Route.
func (r *RouteImpl) CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (tokenOut sdk.Coin, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tokenOut = sdk.Coin{}
			err = fmt.Errorf("error when calculating out by in in route: %v", rec)
		}
	}()

	for _, pool := range r.Pools {
		if tokenIn.Amount.IsNil() || tokenIn.Amount.IsZero() {
			return sdk.Coin{}, nil
		}

		tokenOut, err = pool.CalculateTokenOutByTokenIn(tokenIn)
		if err != nil {
			return sdk.Coin{}, err
		}

		tokenIn = tokenOut
	}

	return tokenOut, nil
}

// String implements domain.Route.
func (r *RouteImpl) String() string {
	var strBuilder strings.Builder
	for _, pool := range r.Pools {
		_, _ = strBuilder.WriteString(fmt.Sprintf("{{%s %s}}", pool.String(), pool.GetTokenOutDenom()))
	}

	return strBuilder.String()
}

// GetTokenOutDenom implements domain.Route.
// Returns token out denom of the last pool in the route.
// If the route is empty, returns an empty string.
func (r *RouteImpl) GetTokenOutDenom() string {
	if len(r.Pools) == 0 {
		return ""
	}

	return r.Pools[len(r.Pools)-1].GetTokenOutDenom()
}
