package usecase

import (
	"errors"
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

// split tracks one assignment of increments to routes together with the total
// amount out it produces.
type split struct {
	routeIncrements []int16
	amountOut       osmomath.Int
}

const defaultTotalIncrements = 10

// estimateAndRankSingleRouteQuote estimates the amount out over each route for
// the full token in amount and ranks the routes by the amount out in
// decreasing order. Ties go to the route with fewer hops; past that the
// discovery order is kept.
// Routes that fail the estimation are skipped silently.
// Returns the top single route quote and the ranked routes.
// Returns error if no routes are provided or all of them fail the estimate.
func estimateAndRankSingleRouteQuote(routes []route.RouteImpl, tokenIn sdk.Coin, logger log.Logger) (domain.Quote, []RouteWithOutAmount, error) {
	if len(routes) == 0 {
		return nil, nil, errors.New("no routes were provided")
	}

	routesWithAmountOut := make([]RouteWithOutAmount, 0, len(routes))

	for _, curRoute := range routes {
		directRouteTokenOut, err := curRoute.CalculateTokenOutByTokenIn(tokenIn)
		if err != nil {
			logger.Debug("skipping single route due to error in estimate", zap.Error(err))
			continue
		}

		if directRouteTokenOut.Amount.IsNil() {
			directRouteTokenOut.Amount = osmomath.ZeroInt()
		}

		routesWithAmountOut = append(routesWithAmountOut, RouteWithOutAmount{
			RouteImpl: curRoute,
			InAmount:  tokenIn.Amount,
			OutAmount: directRouteTokenOut.Amount,
		})
	}

	if len(routesWithAmountOut) == 0 {
		return nil, nil, errors.New("no routes were successfully estimated")
	}

	sort.SliceStable(routesWithAmountOut, func(i, j int) bool {
		if routesWithAmountOut[i].OutAmount.Equal(routesWithAmountOut[j].OutAmount) {
			return len(routesWithAmountOut[i].Pools) < len(routesWithAmountOut[j].Pools)
		}
		return routesWithAmountOut[i].OutAmount.GT(routesWithAmountOut[j].OutAmount)
	})

	bestRoute := routesWithAmountOut[0]

	finalQuote := &quoteImpl{
		AmountIn:  tokenIn,
		AmountOut: bestRoute.OutAmount,
		Route:     []domain.SplitRoute{&bestRoute},
	}

	return finalQuote, routesWithAmountOut, nil
}

// getSplitQuote searches for the split of the token in amount across the given
// routes that maximizes the total amount out. The amount in is divided into
// maxSplitIterations equal increments and every assignment of increments to
// routes is explored recursively with memoized per-route estimates.
//
// The returned quote allocates the full token in amount across its routes
// exactly: truncation dust from the increment arithmetic is folded into the
// largest split and that split's amount out is re-estimated.
//
// Returns error if no routes are provided or the best split yields a zero
// amount out.
func getSplitQuote(routes []route.RouteImpl, tokenIn sdk.Coin, maxSplitIterations int) (domain.Quote, error) {
	// Routes must be non-empty
	if len(routes) == 0 {
		return nil, errors.New("no routes")
	}
	// If only one route, return the best single route quote
	if len(routes) == 1 {
		curRoute := routes[0]
		coinOut, err := curRoute.CalculateTokenOutByTokenIn(tokenIn)
		if err != nil {
			return nil, err
		}

		quote := &quoteImpl{
			AmountIn:  tokenIn,
			AmountOut: coinOut.Amount,
			Route: []domain.SplitRoute{&RouteWithOutAmount{
				RouteImpl: curRoute,
				OutAmount: coinOut.Amount,
				InAmount:  tokenIn.Amount,
			}},
		}

		return quote, nil
	}

	totalIncrements := uint8(defaultTotalIncrements)
	if maxSplitIterations > 0 && maxSplitIterations < 256 {
		totalIncrements = uint8(maxSplitIterations)
	}

	memo := make([]map[uint8]osmomath.Int, len(routes))
	for i := range memo {
		memo[i] = make(map[uint8]osmomath.Int, totalIncrements)
	}

	routeIncrements := make([]int16, len(routes))
	for j := range routes {
		routeIncrements[j] = -1
	}

	initialEmptySplit := split{
		routeIncrements: routeIncrements,
		amountOut:       osmomath.ZeroInt(),
	}

	bestSplit, err := findSplit(memo, routes, 0, tokenIn.Denom, tokenIn.Amount.ToLegacyDec(), totalIncrements, totalIncrements, initialEmptySplit, initialEmptySplit)
	if err != nil {
		return nil, err
	}

	if bestSplit.amountOut.IsZero() {
		return nil, errors.New("amount out is zero, try increasing amount in")
	}

	totalIncrementsInSplits := uint8(0)
	resultRoutes := make([]domain.SplitRoute, 0, len(routes))
	totalAmountInFromSplits := osmomath.ZeroInt()
	totalAmountOutFromSplits := osmomath.ZeroInt()
	largestSplitIndex := -1

	for i, currentRouteIncrement := range bestSplit.routeIncrements {
		currentRoute := routes[i]

		currentRouteIndex := uint8(i)

		if currentRouteIncrement < 0 {
			return nil, fmt.Errorf("best increment for route %d is negative", currentRouteIndex)
		}

		currentRouteAmtOut, ok := memo[currentRouteIndex][uint8(currentRouteIncrement)]
		if currentRouteIncrement > 0 && !ok {
			return nil, fmt.Errorf("route %d not found in memo", currentRouteIndex)
		}

		inAmount := tokenIn.Amount.ToLegacyDec().Mul(osmomath.NewDec(int64(currentRouteIncrement))).Quo(osmomath.NewDec(int64(totalIncrements))).TruncateInt()
		outAmount := currentRouteAmtOut

		isAmountInNilOrZero := inAmount.IsNil() || inAmount.IsZero()
		isAmountOutNilOrZero := outAmount.IsNil() || outAmount.IsZero()
		if isAmountInNilOrZero && isAmountOutNilOrZero {
			continue
		}

		if isAmountInNilOrZero {
			return nil, fmt.Errorf("in amount is zero when out is not (%s), route index (%d)", outAmount, currentRouteIndex)
		}

		if isAmountOutNilOrZero {
			return nil, fmt.Errorf("out amount is zero when in is not (%s), route index (%d)", inAmount, currentRouteIndex)
		}

		resultRoutes = append(resultRoutes, &RouteWithOutAmount{
			RouteImpl: currentRoute,
			InAmount:  inAmount,
			OutAmount: currentRouteAmtOut,
		})

		if largestSplitIndex == -1 || inAmount.GT(resultRoutes[largestSplitIndex].GetAmountIn()) {
			largestSplitIndex = len(resultRoutes) - 1
		}

		totalIncrementsInSplits += uint8(currentRouteIncrement)
		totalAmountInFromSplits = totalAmountInFromSplits.Add(inAmount)
		totalAmountOutFromSplits = totalAmountOutFromSplits.Add(currentRouteAmtOut)
	}

	// This may happen if one of the routes is consistently returning 0 amount out for all increments.
	if totalIncrementsInSplits != totalIncrements {
		return nil, fmt.Errorf("total increments (%d) does not match expected total increments (%d)", totalIncrementsInSplits, totalIncrements)
	}

	// Truncating each per-route in amount can leave a few base units of the
	// token in unassigned. Fold them into the largest split and re-estimate
	// its amount out so the splits sum exactly to the amount in.
	remainder := tokenIn.Amount.Sub(totalAmountInFromSplits)
	if remainder.IsPositive() && largestSplitIndex >= 0 {
		largestSplit, ok := resultRoutes[largestSplitIndex].(*RouteWithOutAmount)
		if !ok {
			return nil, errors.New("error casting largest split route")
		}

		largestSplit.InAmount = largestSplit.InAmount.Add(remainder)

		coinOut, err := largestSplit.RouteImpl.CalculateTokenOutByTokenIn(sdk.NewCoin(tokenIn.Denom, largestSplit.InAmount))
		if err != nil {
			return nil, err
		}

		totalAmountOutFromSplits = totalAmountOutFromSplits.Sub(largestSplit.OutAmount).Add(coinOut.Amount)
		largestSplit.OutAmount = coinOut.Amount
	}

	quote := &quoteImpl{
		AmountIn:  tokenIn,
		AmountOut: totalAmountOutFromSplits,
		Route:     resultRoutes,
	}

	return quote, nil
}

// Recurrence relation:
// findSplit(currentIncrement, currentRoute) = max(estimate(currentRoute, tokenInAmt * currentIncrement / totalIncrements) + findSplit(remainingIncrement - currentIncrement, remaining_routes[1:]))
func findSplit(memo []map[uint8]osmomath.Int, routes []route.RouteImpl, currentRouteIndex uint8, tokenInDenom string, tokenInAmount osmomath.Dec, remainingIncrements, totalIncrements uint8, bestSplitSoFar, currentSplit split) (split, error) {
	// Current route index must be within range
	if currentRouteIndex >= uint8(len(routes)) {
		return split{}, fmt.Errorf("current route index (%d) is out of range (%d)", currentRouteIndex, len(routes))
	}

	currentRoute := routes[currentRouteIndex]

	// Base case: if this is the last route, consume all the remaining tokenIn
	if currentRouteIndex == uint8(len(routes))-1 {
		currentIncrement := remainingIncrements

		// Attempt to get memoized value.
		currentAmtOut, ok := memo[currentRouteIndex][currentIncrement]
		if !ok {
			coinOut, err := currentRoute.CalculateTokenOutByTokenIn(sdk.NewCoin(tokenInDenom, tokenInAmount.Mul(osmomath.NewDec(int64(currentIncrement))).Quo(osmomath.NewDec(int64(totalIncrements))).TruncateInt()))
			if err != nil {
				// Note that we should always return bestSplitSoFar if there is an error
				// since we silently skip the failing splits and want to preserve the context about bestSplitSoFar
				return bestSplitSoFar, err
			}

			if coinOut.Amount.IsNil() || coinOut.Amount.IsZero() {
				coinOut.Amount = osmomath.ZeroInt()
			}

			// Memoize
			memo[currentRouteIndex][currentIncrement] = coinOut.Amount
			currentAmtOut = coinOut.Amount
		}

		currentSplit.amountOut = currentSplit.amountOut.Add(currentAmtOut)

		if currentSplit.amountOut.GT(bestSplitSoFar.amountOut) {
			// update current split with the increment of the current route.
			currentSplit.routeIncrements[currentRouteIndex] = int16(currentIncrement)
			return currentSplit, nil
		}

		return bestSplitSoFar, nil
	}

	for currentIncrement := uint8(0); currentIncrement <= remainingIncrements; currentIncrement++ {
		// Attempt to get memoized value.
		currentAmtOut, ok := memo[currentRouteIndex][currentIncrement]
		if !ok {
			if currentIncrement == 0 {
				zeroResult := osmomath.ZeroInt()
				memo[currentRouteIndex][currentIncrement] = zeroResult
				currentAmtOut = zeroResult
			} else {
				coinOut, err := currentRoute.CalculateTokenOutByTokenIn(sdk.NewCoin(tokenInDenom, tokenInAmount.Mul(osmomath.NewDec(int64(currentIncrement))).Quo(osmomath.NewDec(int64(totalIncrements))).TruncateInt()))
				if err != nil {
					continue
				}

				if coinOut.Amount.IsNil() || coinOut.Amount.IsZero() {
					coinOut.Amount = osmomath.ZeroInt()
				}

				// Memoize
				memo[currentRouteIndex][currentIncrement] = coinOut.Amount
				currentAmtOut = coinOut.Amount
			}
		}

		currentSplitCopy := split{}
		currentSplitCopy.routeIncrements = make([]int16, len(currentSplit.routeIncrements))
		copy(currentSplitCopy.routeIncrements, currentSplit.routeIncrements)
		currentSplitCopy.amountOut = currentSplit.amountOut.Add(currentAmtOut)
		currentSplitCopy.routeIncrements[currentRouteIndex] = int16(currentIncrement)

		// Recurse
		candidateSplit, err := findSplit(memo, routes, currentRouteIndex+1, tokenInDenom, tokenInAmount, remainingIncrements-currentIncrement, totalIncrements, bestSplitSoFar, currentSplitCopy)
		if err != nil {
			continue
		}

		// Update bestSplitSoFar
		if candidateSplit.amountOut.GT(bestSplitSoFar.amountOut) {
			bestSplitSoFar = candidateSplit
		}
	}

	return bestSplitSoFar, nil
}
