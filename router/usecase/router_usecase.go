package usecase

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/cache"
	"github.com/thesneakydev/swaprouter/domain/mvc"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/router/usecase/pools"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

var _ mvc.RouterUsecase = &routerUseCaseImpl{}

type routerUseCaseImpl struct {
	poolsUsecase           mvc.PoolsUsecase
	config                 domain.RouterConfig
	candidateRouteSearcher domain.CandidateRouteSearcher
	logger                 log.Logger

	rankedRouteCache *cache.Cache
}

const (
	rankedRouteCacheLabel = "ranked_route"

	denomSeparatorChar = "|"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"route", "cache_type", "token_in", "token_out"},
	)
	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"route", "cache_type", "token_in", "token_out"},
	)
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// NewRouterUsecase will create a new router use case object.
func NewRouterUsecase(poolsUsecase mvc.PoolsUsecase, config domain.RouterConfig, logger log.Logger, rankedRouteCache *cache.Cache) mvc.RouterUsecase {
	return &routerUseCaseImpl{
		poolsUsecase:           poolsUsecase,
		config:                 config,
		candidateRouteSearcher: NewCandidateRouteFinder(logger),
		logger:                 logger,

		rankedRouteCache: rankedRouteCache,
	}
}

// GetOptimalQuote returns the optimal quote by estimating the optimal route(s)
// through the pool snapshot, splitting the amount in across several routes
// when that strictly increases the amount out.
// Ranked routes are cached per token pair and order of magnitude of the amount
// in, as the ranking may differ depending on the amount swapped.
// A zero-valued quote, not an error, is returned when the amount in is zero,
// the denoms are equal, or no route produces a non-zero amount out.
// Returns error if:
// - fails to convert candidate routes to routes with pool data
// - the split search fails in an unexpected way
func (r *routerUseCaseImpl) GetOptimalQuote(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.Quote, error) {
	if tokenIn.Amount.IsNil() || !tokenIn.Amount.IsPositive() || tokenIn.Denom == tokenOutDenom {
		return NewZeroQuote(tokenIn.Denom), nil
	}

	// Get request path for metrics
	requestURLPath, err := domain.GetURLPathFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Ranked routes might differ depending on the amount swapped in, so the
	// cache key includes the order of magnitude of the amount in.
	tokenInOrderOfMagnitude := osmomath.OrderOfMagnitude(tokenIn.Amount.ToLegacyDec())
	rankedRouteCacheKey := formatRankedRouteCacheKey(tokenIn.Denom, tokenOutDenom, tokenInOrderOfMagnitude)

	var (
		cachedCandidateRoutes domain.CandidateRoutes
		hasRankedRoutes       bool
	)

	if r.config.RouteCacheEnabled {
		cachedValue, found := r.rankedRouteCache.Get(rankedRouteCacheKey)
		if found {
			cachedCandidateRoutes, hasRankedRoutes = cachedValue.(domain.CandidateRoutes)
		}
	}

	var (
		topSingleRouteQuote domain.Quote
		rankedRoutes        []RouteWithOutAmount
	)

	if hasRankedRoutes {
		topSingleRouteQuote, rankedRoutes, err = r.rankRoutesByDirectQuote(cachedCandidateRoutes, tokenIn, tokenOutDenom)
		if err != nil {
			// Cached routes may reference pools that are no longer in the
			// snapshot. Fall through to recomputing the candidate routes.
			r.logger.Warn("failed to estimate cached ranked routes, recomputing", zap.Error(err))
			hasRankedRoutes = false
		} else {
			// Increase cache hits
			cacheHits.WithLabelValues(requestURLPath, rankedRouteCacheLabel, tokenIn.Denom, tokenOutDenom).Inc()
		}
	}

	if !hasRankedRoutes {
		// Increase cache misses
		cacheMisses.WithLabelValues(requestURLPath, rankedRouteCacheLabel, tokenIn.Denom, tokenOutDenom).Inc()

		candidateRoutes, err := r.computeCandidateRoutes(tokenIn, tokenOutDenom)
		if err != nil {
			r.logger.Error("error computing candidate routes", zap.Error(err))
			return nil, err
		}

		if len(candidateRoutes.Routes) == 0 {
			return NewZeroQuote(tokenIn.Denom), nil
		}

		// Rank candidate routes by estimating direct quotes
		topSingleRouteQuote, rankedRoutes, err = r.rankRoutesByDirectQuote(candidateRoutes, tokenIn, tokenOutDenom)
		if err != nil {
			r.logger.Warn("no candidate route could be estimated", zap.Error(err))
			return NewZeroQuote(tokenIn.Denom), nil
		}

		// Update ranked routes with filtered ranked routes
		rankedRoutes = filterDuplicatePoolIDRoutes(rankedRoutes)

		if len(rankedRoutes) > 0 && r.config.RouteCacheEnabled {
			// Convert ranked routes back to candidate for caching
			r.rankedRouteCache.Set(rankedRouteCacheKey, convertRankedToCandidateRoutes(rankedRoutes))
		}
	}

	// Keep only top routes for splits
	if r.config.MaxSplitRoutes > 0 && len(rankedRoutes) > r.config.MaxSplitRoutes {
		rankedRoutes = rankedRoutes[:r.config.MaxSplitRoutes]
	}

	finalQuote := topSingleRouteQuote

	if len(rankedRoutes) > 1 {
		splitRoutes := make([]route.RouteImpl, 0, len(rankedRoutes))
		for _, rankedRoute := range rankedRoutes {
			splitRoutes = append(splitRoutes, rankedRoute.RouteImpl)
		}

		// Compute split route quote
		topSplitQuote, err := getSplitQuote(splitRoutes, tokenIn, r.config.MaxSplitIterations)
		if err != nil {
			// A failing split search is not fatal, the single route quote
			// still stands.
			r.logger.Warn("error computing split route quote", zap.Error(err))
		} else if topSplitQuote.GetAmountOut().GT(topSingleRouteQuote.GetAmountOut()) {
			// If the split route quote is better than the single route quote,
			// return the split route quote
			routes := topSplitQuote.GetRoute()

			r.logger.Debug("split route selected", zap.Int("route_count", len(routes)))

			finalQuote = topSplitQuote
		}
	}

	if finalQuote.GetAmountOut().IsNil() || finalQuote.GetAmountOut().IsZero() {
		return NewZeroQuote(tokenIn.Denom), nil
	}

	return finalQuote, nil
}

// GetBestSingleRouteQuote returns the best single route quote to be done
// directly without a split.
// A zero-valued quote is returned when no single route produces a non-zero
// amount out.
func (r *routerUseCaseImpl) GetBestSingleRouteQuote(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.Quote, error) {
	if tokenIn.Amount.IsNil() || !tokenIn.Amount.IsPositive() || tokenIn.Denom == tokenOutDenom {
		return NewZeroQuote(tokenIn.Denom), nil
	}

	candidateRoutes, err := r.computeCandidateRoutes(tokenIn, tokenOutDenom)
	if err != nil {
		return nil, err
	}

	if len(candidateRoutes.Routes) == 0 {
		return NewZeroQuote(tokenIn.Denom), nil
	}

	topSingleRouteQuote, _, err := r.rankRoutesByDirectQuote(candidateRoutes, tokenIn, tokenOutDenom)
	if err != nil {
		r.logger.Warn("no candidate route could be estimated", zap.Error(err))
		return NewZeroQuote(tokenIn.Denom), nil
	}

	return topSingleRouteQuote, nil
}

// GetCandidateRoutes implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetCandidateRoutes(ctx context.Context, tokenIn sdk.Coin, tokenOutDenom string) (domain.CandidateRoutes, error) {
	return r.computeCandidateRoutes(tokenIn, tokenOutDenom)
}

// GetSpotPriceForPool implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetSpotPriceForPool(ctx context.Context, poolID uint64, baseDenom, quoteDenom string) (osmomath.BigDec, error) {
	pool, err := r.poolsUsecase.GetPool(poolID)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	routablePool, err := pools.NewRoutablePool(pool, quoteDenom)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	return routablePool.CalcSpotPrice(baseDenom, quoteDenom)
}

// computeCandidateRoutes retrieves the pool snapshot, sorts the pools by
// liquidity rating and runs candidate route discovery over them.
func (r *routerUseCaseImpl) computeCandidateRoutes(tokenIn sdk.Coin, tokenOutDenom string) (domain.CandidateRoutes, error) {
	allPools := r.poolsUsecase.GetAllPools()
	r.logger.Debug("retrieved pools", zap.Int("num_pools", len(allPools)))

	options := domain.CandidateRouteSearchOptions{
		MaxRoutes:           r.config.MaxRoutes,
		MaxPoolsPerRoute:    r.config.MaxPoolsPerRoute,
		MinPoolLiquidityCap: r.config.MinPoolLiquidityCap,
	}

	sortedPools := ValidateAndSortPools(allPools, r.config.PreferredPoolIDs, options.MinPoolLiquidityCap, r.logger)

	candidateRoutes, err := r.candidateRouteSearcher.FindCandidateRoutes(sortedPools, tokenIn, tokenOutDenom, options)
	if err != nil {
		return domain.CandidateRoutes{}, err
	}

	r.logger.Debug("calculated routes", zap.Int("num_routes", len(candidateRoutes.Routes)))

	return candidateRoutes, nil
}

// rankRoutesByDirectQuote ranks the given candidate routes by estimating
// direct quotes over each route.
// Returns the top quote as well as the ranked routes in decreasing order of
// amount out.
// Returns error if:
// - fails to convert candidate routes to routes
// - fails to estimate all direct quotes
func (r *routerUseCaseImpl) rankRoutesByDirectQuote(candidateRoutes domain.CandidateRoutes, tokenIn sdk.Coin, tokenOutDenom string) (domain.Quote, []RouteWithOutAmount, error) {
	routes, err := r.poolsUsecase.GetRoutesFromCandidates(candidateRoutes, tokenIn.Denom, tokenOutDenom)
	if err != nil {
		return nil, nil, err
	}

	return estimateAndRankSingleRouteQuote(routes, tokenIn, r.logger)
}

// filterDuplicatePoolIDRoutes filters routes that contain duplicate pool IDs.
// CONTRACT: rankedRoutes are sorted in decreasing order by amount out
// from first to last.
func filterDuplicatePoolIDRoutes(rankedRoutes []RouteWithOutAmount) []RouteWithOutAmount {
	// We use two maps for all routes and for the current route.
	// This is so that if a route ends up getting filtered, its pool IDs are
	// not added to the combined map.
	combinedPoolIDsMap := make(map[uint64]struct{})
	filteredRankedRoutes := make([]RouteWithOutAmount, 0, len(rankedRoutes))

	for _, rankedRoute := range rankedRoutes {
		routePools := rankedRoute.GetPools()

		currentRoutePoolIDsMap := make(map[uint64]struct{})

		existsPoolID := false

		for _, routePool := range routePools {
			poolID := routePool.GetId()

			_, existsPoolID = combinedPoolIDsMap[poolID]

			// If found a pool ID that was already seen, break and skip the route.
			if existsPoolID {
				break
			}

			currentRoutePoolIDsMap[poolID] = struct{}{}
		}

		if existsPoolID {
			continue
		}

		// Merge current route pool IDs map into the combined map
		for poolID := range currentRoutePoolIDsMap {
			combinedPoolIDsMap[poolID] = struct{}{}
		}

		filteredRankedRoutes = append(filteredRankedRoutes, rankedRoute)
	}
	return filteredRankedRoutes
}

// convertRankedToCandidateRoutes converts the given ranked routes to candidate
// routes. The primary use case for this is to keep minimal data for caching.
func convertRankedToCandidateRoutes(rankedRoutes []RouteWithOutAmount) domain.CandidateRoutes {
	candidateRoutes := domain.CandidateRoutes{
		Routes:        make([]domain.CandidateRoute, 0, len(rankedRoutes)),
		UniquePoolIDs: map[uint64]struct{}{},
	}

	for _, rankedRoute := range rankedRoutes {
		candidateRoute := domain.CandidateRoute{
			Pools: make([]domain.CandidatePool, 0, len(rankedRoute.GetPools())),
		}

		for _, rankedPool := range rankedRoute.GetPools() {
			candidatePool := domain.CandidatePool{
				ID:            rankedPool.GetId(),
				TokenOutDenom: rankedPool.GetTokenOutDenom(),
			}

			candidateRoute.Pools = append(candidateRoute.Pools, candidatePool)

			candidateRoutes.UniquePoolIDs[rankedPool.GetId()] = struct{}{}
		}

		candidateRoutes.Routes = append(candidateRoutes.Routes, candidateRoute)
	}
	return candidateRoutes
}

// formatRouteCacheKey formats the given token in and token out denoms to a string.
func formatRouteCacheKey(tokenInDenom string, tokenOutDenom string) string {
	return fmt.Sprintf("%s%s%s", tokenInDenom, denomSeparatorChar, tokenOutDenom)
}

// formatRankedRouteCacheKey formats the given token in and token out denoms
// and order of magnitude to a string.
func formatRankedRouteCacheKey(tokenInDenom string, tokenOutDenom string, tokenInOrderOfMagnitude int) string {
	return fmt.Sprintf("%s%s%d", formatRouteCacheKey(tokenInDenom, tokenOutDenom), denomSeparatorChar, tokenInOrderOfMagnitude)
}
