package usecase_test

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	routerusecase "github.com/thesneakydev/swaprouter/router/usecase"
	"github.com/thesneakydev/swaprouter/router/usecase/pools"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
	"github.com/thesneakydev/swaprouter/router/usecase/routertesting"
)

const defaultMaxSplitIterations = 10

// singlePoolRoute builds a one-hop route over the given pool.
func (s *RouterTestSuite) singlePoolRoute(pool domain.PoolI, tokenOutDenom string) route.RouteImpl {
	routablePool, err := pools.NewRoutablePool(pool, tokenOutDenom)
	s.Require().NoError(err)

	return route.RouteImpl{
		Pools: []domain.RoutablePool{routablePool},
	}
}

func (s *RouterTestSuite) TestEstimateAndRankSingleRouteQuote() {
	var (
		deepPool = s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
		shallowPool = s.NewWeightedPool(2, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 10_000_000), s.Coin(routertesting.UUSDC, 10_000_000))
	)

	routes := []route.RouteImpl{
		s.singlePoolRoute(shallowPool, routertesting.UUSDC),
		s.singlePoolRoute(deepPool, routertesting.UUSDC),
	}

	tokenIn := s.Coin(routertesting.UATOM, 1_000_000)

	quote, rankedRoutes, err := routerusecase.EstimateAndRankSingleRouteQuote(routes, tokenIn, s.NoOpLogger())
	s.Require().NoError(err)
	s.Require().Len(rankedRoutes, 2)

	// The deeper pool slips less and must rank first.
	s.Require().Equal(uint64(1), rankedRoutes[0].GetPools()[0].GetId())
	s.Require().Equal(uint64(2), rankedRoutes[1].GetPools()[0].GetId())
	s.Require().True(rankedRoutes[0].GetAmountOut().GT(rankedRoutes[1].GetAmountOut()))

	// The top quote reflects the best route.
	s.Require().Equal(tokenIn, quote.GetAmountIn())
	s.Require().Equal(rankedRoutes[0].GetAmountOut().String(), quote.GetAmountOut().String())
	s.Require().Len(quote.GetRoute(), 1)
}

func (s *RouterTestSuite) TestEstimateAndRankSingleRouteQuote_Errors() {
	// No routes.
	_, _, err := routerusecase.EstimateAndRankSingleRouteQuote([]route.RouteImpl{}, s.Coin(routertesting.UATOM, 100), s.NoOpLogger())
	s.Require().Error(err)

	// All routes fail the estimate: the only pool does not hold the token in.
	usdcPool := s.NewTransmuterPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UUSDC, 1_000_000), s.Coin(routertesting.UUSDT, 1_000_000))

	routes := []route.RouteImpl{s.singlePoolRoute(usdcPool, routertesting.UUSDT)}

	_, _, err = routerusecase.EstimateAndRankSingleRouteQuote(routes, s.Coin(routertesting.UATOM, 100), s.NoOpLogger())
	s.Require().Error(err)
}

// Validates that for two identical constant-product pools the optimal split
// divides the amount in evenly, beats the single route amount out, and
// allocates the token in amount across the splits exactly.
func (s *RouterTestSuite) TestGetSplitQuote_EqualPools() {
	var (
		poolOne = s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 100_000_000), s.Coin(routertesting.UUSDC, 100_000_000))
		poolTwo = s.NewWeightedPool(2, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 100_000_000), s.Coin(routertesting.UUSDC, 100_000_000))
	)

	routes := []route.RouteImpl{
		s.singlePoolRoute(poolOne, routertesting.UUSDC),
		s.singlePoolRoute(poolTwo, routertesting.UUSDC),
	}

	tokenIn := s.Coin(routertesting.UATOM, 10_000_000)

	splitQuote, err := routerusecase.GetSplitQuote(routes, tokenIn, defaultMaxSplitIterations)
	s.Require().NoError(err)

	splitRoutes := splitQuote.GetRoute()
	s.Require().Len(splitRoutes, 2)

	// The split in amounts must sum to the total amount in exactly.
	totalInFromSplits := osmomath.ZeroInt()
	totalOutFromSplits := osmomath.ZeroInt()
	for _, splitRoute := range splitRoutes {
		totalInFromSplits = totalInFromSplits.Add(splitRoute.GetAmountIn())
		totalOutFromSplits = totalOutFromSplits.Add(splitRoute.GetAmountOut())
	}
	s.Require().Equal(tokenIn.Amount.String(), totalInFromSplits.String())
	s.Require().Equal(splitQuote.GetAmountOut().String(), totalOutFromSplits.String())

	// Identical pools: the optimum is an even split.
	s.Require().Equal(splitRoutes[0].GetAmountIn().String(), splitRoutes[1].GetAmountIn().String())

	// The split must beat routing everything through one pool.
	singleRouteOut, err := routes[0].CalculateTokenOutByTokenIn(tokenIn)
	s.Require().NoError(err)
	s.Require().True(splitQuote.GetAmountOut().GT(singleRouteOut.Amount))
}

// Validates that a route that cannot absorb the trade gets no allocation while
// the in amounts still sum exactly to the amount in.
func (s *RouterTestSuite) TestGetSplitQuote_LopsidedPools() {
	var (
		deepPool = s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
		tinyPool = s.NewTransmuterPool(2, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 10))
	)

	routes := []route.RouteImpl{
		s.singlePoolRoute(deepPool, routertesting.UUSDC),
		s.singlePoolRoute(tinyPool, routertesting.UUSDC),
	}

	tokenIn := s.Coin(routertesting.UATOM, 10_000_000)

	splitQuote, err := routerusecase.GetSplitQuote(routes, tokenIn, defaultMaxSplitIterations)
	s.Require().NoError(err)

	totalInFromSplits := osmomath.ZeroInt()
	for _, splitRoute := range splitQuote.GetRoute() {
		totalInFromSplits = totalInFromSplits.Add(splitRoute.GetAmountIn())
		s.Require().True(splitRoute.GetAmountIn().IsPositive())
		s.Require().True(splitRoute.GetAmountOut().IsPositive())
	}
	s.Require().Equal(tokenIn.Amount.String(), totalInFromSplits.String())
}

// Validates that a larger amount in never buys a better effective price: the
// in-per-out price is non-decreasing in the amount in, and the split in
// amounts keep summing to the amount in exactly at every size.
func (s *RouterTestSuite) TestGetSplitQuote_EffectivePriceMonotonicity() {
	var (
		poolOne = s.NewWeightedPool(1, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
		poolTwo = s.NewWeightedPool(2, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
	)

	amountsIn := []int64{1_000_000, 10_000_000, 100_000_000, 400_000_000}

	previousEffectivePrice := osmomath.ZeroDec()
	for _, amountIn := range amountsIn {
		routes := []route.RouteImpl{
			s.singlePoolRoute(poolOne, routertesting.UUSDC),
			s.singlePoolRoute(poolTwo, routertesting.UUSDC),
		}

		tokenIn := s.Coin(routertesting.UATOM, amountIn)

		splitQuote, err := routerusecase.GetSplitQuote(routes, tokenIn, defaultMaxSplitIterations)
		s.Require().NoError(err)
		s.Require().True(splitQuote.GetAmountOut().IsPositive())

		totalInFromSplits := osmomath.ZeroInt()
		for _, splitRoute := range splitQuote.GetRoute() {
			totalInFromSplits = totalInFromSplits.Add(splitRoute.GetAmountIn())
		}
		s.Require().Equal(tokenIn.Amount.String(), totalInFromSplits.String())

		// The in-per-out effective price only worsens as the trade grows.
		effectivePrice := tokenIn.Amount.ToLegacyDec().Quo(splitQuote.GetAmountOut().ToLegacyDec())
		s.Require().True(effectivePrice.GTE(previousEffectivePrice), "amount in (%d): effective price (%s) must not improve on (%s)", amountIn, effectivePrice, previousEffectivePrice)

		previousEffectivePrice = effectivePrice
	}
}

func (s *RouterTestSuite) TestGetSplitQuote_SingleRoute() {
	pool := s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UATOM, 100_000_000), s.Coin(routertesting.UUSDC, 100_000_000))

	routes := []route.RouteImpl{s.singlePoolRoute(pool, routertesting.UUSDC)}

	tokenIn := s.Coin(routertesting.UATOM, 1_000_000)

	splitQuote, err := routerusecase.GetSplitQuote(routes, tokenIn, defaultMaxSplitIterations)
	s.Require().NoError(err)

	// With one route there is nothing to split.
	s.Require().Len(splitQuote.GetRoute(), 1)
	s.Require().Equal(tokenIn.Amount.String(), splitQuote.GetRoute()[0].GetAmountIn().String())

	expectedOut, err := routes[0].CalculateTokenOutByTokenIn(tokenIn)
	s.Require().NoError(err)
	s.Require().Equal(expectedOut.Amount.String(), splitQuote.GetAmountOut().String())
}

func (s *RouterTestSuite) TestGetSplitQuote_Errors() {
	_, err := routerusecase.GetSplitQuote([]route.RouteImpl{}, s.Coin(routertesting.UATOM, 100), defaultMaxSplitIterations)
	s.Require().Error(err)
}

func (s *RouterTestSuite) TestFilterDuplicatePoolIDRoutes() {
	var (
		poolOne = s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000), s.Coin(routertesting.UUSDC, 1_000_000))
		poolTwo = s.NewWeightedPool(2, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000), s.Coin(routertesting.UUSDC, 1_000_000))
	)

	rankedRoutes := []routerusecase.RouteWithOutAmount{
		{
			RouteImpl: s.singlePoolRoute(poolOne, routertesting.UUSDC),
			InAmount:  osmomath.NewInt(100),
			OutAmount: osmomath.NewInt(100),
		},
		// Duplicate of pool 1, must be dropped.
		{
			RouteImpl: s.singlePoolRoute(poolOne, routertesting.UUSDC),
			InAmount:  osmomath.NewInt(100),
			OutAmount: osmomath.NewInt(90),
		},
		{
			RouteImpl: s.singlePoolRoute(poolTwo, routertesting.UUSDC),
			InAmount:  osmomath.NewInt(100),
			OutAmount: osmomath.NewInt(80),
		},
	}

	filtered := routerusecase.FilterDuplicatePoolIDRoutes(rankedRoutes)

	s.Require().Len(filtered, 2)
	s.Require().Equal(uint64(1), filtered[0].GetPools()[0].GetId())
	s.Require().Equal(uint64(2), filtered[1].GetPools()[0].GetId())
}

func (s *RouterTestSuite) TestConvertRankedToCandidateRoutes() {
	pool := s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UATOM, 1_000_000), s.Coin(routertesting.UUSDC, 1_000_000))

	rankedRoutes := []routerusecase.RouteWithOutAmount{
		{
			RouteImpl: s.singlePoolRoute(pool, routertesting.UUSDC),
			InAmount:  osmomath.NewInt(100),
			OutAmount: osmomath.NewInt(100),
		},
	}

	candidateRoutes := routerusecase.ConvertRankedToCandidateRoutes(rankedRoutes)

	s.Require().Len(candidateRoutes.Routes, 1)
	s.Require().Equal(domain.CandidatePool{ID: 1, TokenOutDenom: routertesting.UUSDC}, candidateRoutes.Routes[0].Pools[0])
	s.Require().Contains(candidateRoutes.UniquePoolIDs, uint64(1))
}
