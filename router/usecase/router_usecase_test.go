package usecase_test

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/cache"
	"github.com/thesneakydev/swaprouter/domain/mvc"
	poolsusecase "github.com/thesneakydev/swaprouter/pools/usecase"
	routerusecase "github.com/thesneakydev/swaprouter/router/usecase"
	"github.com/thesneakydev/swaprouter/router/usecase/routertesting"
)

const defaultCacheExpiry = 5 * time.Minute

// setupRouterUsecase creates a router use case over a snapshot of the given
// pools, returning the use case and its ranked route cache.
func (s *RouterTestSuite) setupRouterUsecase(pools ...domain.PoolI) (mvc.RouterUsecase, *cache.Cache) {
	logger := s.NoOpLogger()

	poolsUsecase := poolsusecase.NewPoolsUsecase(logger)
	if len(pools) > 0 {
		s.Require().NoError(poolsUsecase.StorePools(pools))
	}

	rankedRouteCache := cache.New(100, defaultCacheExpiry)

	routerUsecase := routerusecase.NewRouterUsecase(poolsUsecase, domain.DefaultRouterConfig, logger, rankedRouteCache)

	return routerUsecase, rankedRouteCache
}

func (s *RouterTestSuite) TestGetOptimalQuote_ZeroQuoteCases() {
	pool := s.NewWeightedPool(1, routertesting.DefaultSpreadFactor,
		s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))

	routerUsecase, _ := s.setupRouterUsecase(pool)

	ctx := context.Background()

	tests := map[string]struct {
		tokenIn       func() (string, osmomath.Int)
		tokenOutDenom string
	}{
		"zero amount in": {
			tokenIn:       func() (string, osmomath.Int) { return routertesting.UATOM, osmomath.ZeroInt() },
			tokenOutDenom: routertesting.UUSDC,
		},
		"nil amount in": {
			tokenIn:       func() (string, osmomath.Int) { return routertesting.UATOM, osmomath.Int{} },
			tokenOutDenom: routertesting.UUSDC,
		},
		"same denom": {
			tokenIn:       func() (string, osmomath.Int) { return routertesting.UATOM, osmomath.NewInt(100) },
			tokenOutDenom: routertesting.UATOM,
		},
		"no route to denom": {
			tokenIn:       func() (string, osmomath.Int) { return routertesting.UATOM, osmomath.NewInt(100) },
			tokenOutDenom: routertesting.UION,
		},
	}

	for name, tc := range tests {
		s.Run(name, func() {
			denom, amount := tc.tokenIn()

			quote, err := routerUsecase.GetOptimalQuote(ctx, sdk.Coin{Denom: denom, Amount: amount}, tc.tokenOutDenom)
			s.Require().NoError(err)

			s.Require().True(quote.GetAmountOut().IsZero())
			s.Require().Empty(quote.GetRoute())
			s.Require().Equal(denom, quote.GetAmountIn().Denom)
		})
	}
}

func (s *RouterTestSuite) TestGetOptimalQuote_HappyPath() {
	var (
		atomUsdcPool = s.NewWeightedPool(1, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 5_000_000_000))
		atomOsmoPool = s.NewWeightedPool(2, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 2_000_000_000), s.Coin(routertesting.UOSMO, 4_000_000_000))
		osmoUsdcPool = s.NewWeightedPool(3, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UOSMO, 3_000_000_000), s.Coin(routertesting.UUSDC, 6_000_000_000))
	)

	routerUsecase, rankedRouteCache := s.setupRouterUsecase(atomUsdcPool, atomOsmoPool, osmoUsdcPool)

	ctx := context.Background()
	tokenIn := s.Coin(routertesting.UATOM, 10_000_000)

	quote, err := routerUsecase.GetOptimalQuote(ctx, tokenIn, routertesting.UUSDC)
	s.Require().NoError(err)

	s.Require().True(quote.GetAmountOut().IsPositive())
	s.Require().NotEmpty(quote.GetRoute())

	// The split in amounts must cover the amount in exactly.
	totalIn := osmomath.ZeroInt()
	for _, splitRoute := range quote.GetRoute() {
		s.Require().Equal(routertesting.UUSDC, splitRoute.GetTokenOutDenom())
		totalIn = totalIn.Add(splitRoute.GetAmountIn())
	}
	s.Require().Equal(tokenIn.Amount.String(), totalIn.String())

	// The ranked routes are cached for the token pair and order of magnitude.
	s.Require().Equal(1, rankedRouteCache.Len())

	cacheKey := routerusecase.FormatRankedRouteCacheKey(routertesting.UATOM, routertesting.UUSDC, osmomath.OrderOfMagnitude(tokenIn.Amount.ToLegacyDec()))
	_, found := rankedRouteCache.Get(cacheKey)
	s.Require().True(found)

	// A second call with the same magnitude is served from the cache and
	// produces the same quote.
	cachedQuote, err := routerUsecase.GetOptimalQuote(ctx, tokenIn, routertesting.UUSDC)
	s.Require().NoError(err)
	s.Require().Equal(quote.GetAmountOut().String(), cachedQuote.GetAmountOut().String())
	s.Require().Equal(1, rankedRouteCache.Len())
}

// Validates that the optimal quote falls back to recomputing routes when the
// cached ranked routes reference pools that left the snapshot.
func (s *RouterTestSuite) TestGetOptimalQuote_StaleCache() {
	var (
		logger = s.NoOpLogger()

		stalePool = s.NewWeightedPool(10, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
		freshPool = s.NewWeightedPool(20, routertesting.DefaultSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
	)

	poolsUsecase := poolsusecase.NewPoolsUsecase(logger)
	s.Require().NoError(poolsUsecase.StorePools([]domain.PoolI{stalePool}))

	rankedRouteCache := cache.New(100, defaultCacheExpiry)
	routerUsecase := routerusecase.NewRouterUsecase(poolsUsecase, domain.DefaultRouterConfig, logger, rankedRouteCache)

	ctx := context.Background()
	tokenIn := s.Coin(routertesting.UATOM, 1_000_000)

	// Seed the cache with routes over the stale pool.
	quote, err := routerUsecase.GetOptimalQuote(ctx, tokenIn, routertesting.UUSDC)
	s.Require().NoError(err)
	s.Require().True(quote.GetAmountOut().IsPositive())

	// Replace the snapshot so that the cached routes dangle.
	s.Require().NoError(poolsUsecase.StorePools([]domain.PoolI{freshPool}))

	quote, err = routerUsecase.GetOptimalQuote(ctx, tokenIn, routertesting.UUSDC)
	s.Require().NoError(err)
	s.Require().True(quote.GetAmountOut().IsPositive())
	s.Require().Equal(uint64(20), quote.GetRoute()[0].GetPools()[0].GetId())
}

func (s *RouterTestSuite) TestGetBestSingleRouteQuote() {
	var (
		deepPool = s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))
		shallowPool = s.NewWeightedPool(2, routertesting.ZeroSpreadFactor,
			s.Coin(routertesting.UATOM, 50_000_000), s.Coin(routertesting.UUSDC, 50_000_000))
	)

	routerUsecase, _ := s.setupRouterUsecase(deepPool, shallowPool)

	ctx := context.Background()
	tokenIn := s.Coin(routertesting.UATOM, 10_000_000)

	quote, err := routerUsecase.GetBestSingleRouteQuote(ctx, tokenIn, routertesting.UUSDC)
	s.Require().NoError(err)

	// A single route through the deepest pool, never a split.
	s.Require().Len(quote.GetRoute(), 1)
	s.Require().Equal(uint64(1), quote.GetRoute()[0].GetPools()[0].GetId())
	s.Require().Equal(tokenIn.Amount.String(), quote.GetRoute()[0].GetAmountIn().String())
}

func (s *RouterTestSuite) TestGetSpotPriceForPool() {
	pool := s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 5_000_000_000))

	routerUsecase, _ := s.setupRouterUsecase(pool)

	ctx := context.Background()

	spotPrice, err := routerUsecase.GetSpotPriceForPool(ctx, 1, routertesting.UATOM, routertesting.UUSDC)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewBigDec(5).String(), spotPrice.String())

	// Unknown pool ID.
	_, err = routerUsecase.GetSpotPriceForPool(ctx, 42, routertesting.UATOM, routertesting.UUSDC)
	s.Require().Error(err)
	s.Require().ErrorIs(err, domain.PoolNotFoundError{PoolID: 42})
}

func (s *RouterTestSuite) TestFormatRankedRouteCacheKey() {
	s.Require().Equal("uatom|uusdc|3", routerusecase.FormatRankedRouteCacheKey(routertesting.UATOM, routertesting.UUSDC, 3))
	s.Require().Equal("uatom|uusdc", routerusecase.FormatRouteCacheKey(routertesting.UATOM, routertesting.UUSDC))
}
