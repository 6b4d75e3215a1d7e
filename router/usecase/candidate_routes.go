package usecase

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/log"
)

// candidatePoolWrapper is an intermediary internal data structure for
// constructing all candidate routes related data. It contains pool denoms
// for validation after the initial route selection.
type candidatePoolWrapper struct {
	domain.CandidatePool
	PoolDenoms []string
}

type candidateRouteFinder struct {
	logger log.Logger
}

var _ domain.CandidateRouteSearcher = candidateRouteFinder{}

// NewCandidateRouteFinder returns a candidate route searcher over the
// breadth-first search in this package.
func NewCandidateRouteFinder(logger log.Logger) domain.CandidateRouteSearcher {
	return candidateRouteFinder{
		logger: logger,
	}
}

// FindCandidateRoutes implements domain.CandidateRouteSearcher.
func (c candidateRouteFinder) FindCandidateRoutes(pools []domain.PoolI, tokenIn sdk.Coin, tokenOutDenom string, options domain.CandidateRouteSearchOptions) (domain.CandidateRoutes, error) {
	return GetCandidateRoutes(pools, tokenIn, tokenOutDenom, options, c.logger)
}

// GetCandidateRoutes finds candidate routes from the token in denom to the
// token out denom via breadth-first search over the pool adjacency graph.
//
// CONTRACT: pools are sorted by liquidity rating in descending order so that
// discovery order retains the largest-capacity candidates, with direct
// routes found before multi-hop ones.
//
// Routes are simple: no pool is repeated within a route and pools holding
// the token in denom are not re-entered mid-route. First-hop pools whose
// token in balance is below the amount in are skipped.
//
// Returns empty routes when the denoms are equal or either denom is absent
// from every pool. Deterministic and side-effect-free.
func GetCandidateRoutes(pools []domain.PoolI, tokenIn sdk.Coin, tokenOutDenom string, options domain.CandidateRouteSearchOptions, logger log.Logger) (domain.CandidateRoutes, error) {
	if tokenIn.Denom == tokenOutDenom {
		return domain.CandidateRoutes{}, nil
	}

	maxRoutes := options.MaxRoutes
	maxPoolsPerRoute := options.MaxPoolsPerRoute

	routes := make([][]candidatePoolWrapper, 0, maxRoutes)

	// Preallocate constant visited map size to avoid reallocations.
	visited := make(map[uint64]struct{}, len(pools))

	queue := make([][]candidatePoolWrapper, 0, len(pools))
	queue = append(queue, make([]candidatePoolWrapper, 0, maxPoolsPerRoute))

	for len(queue) > 0 && len(routes) < maxRoutes {
		currentRoute := queue[0]
		queue[0] = nil // Clear the slice to avoid holding onto references
		queue = queue[1:]

		lastPoolID := uint64(0)
		currentTokenInDenom := tokenIn.Denom
		if len(currentRoute) > 0 {
			lastPool := currentRoute[len(currentRoute)-1]
			lastPoolID = lastPool.ID
			currentTokenInDenom = lastPool.TokenOutDenom
		}

		for i := 0; i < len(pools) && len(routes) < maxRoutes; i++ {
			pool := pools[i]
			poolID := pool.GetId()

			if _, ok := visited[poolID]; ok {
				continue
			}

			poolDenoms := pool.GetPoolDenoms()
			hasTokenIn := false
			hasTokenOut := false
			shouldSkipPool := false
			for _, denom := range poolDenoms {
				if denom == currentTokenInDenom {
					hasTokenIn = true
				}
				if denom == tokenOutDenom {
					hasTokenOut = true
				}

				// Avoid going through pools that hold the initial token in
				// denom again mid-route.
				if len(currentRoute) > 0 && denom == tokenIn.Denom {
					shouldSkipPool = true
					break
				}
			}

			if shouldSkipPool {
				continue
			}

			if !hasTokenIn {
				continue
			}

			// The first pool in the route must be able to take the full
			// amount in.
			if len(currentRoute) == 0 && !tokenIn.Amount.IsNil() {
				currentTokenInAmount := pool.GetBalances().AmountOf(currentTokenInDenom)
				if currentTokenInAmount.LT(tokenIn.Amount) {
					visited[poolID] = struct{}{}
					// Not enough tokenIn to swap.
					continue
				}
			}

			for _, denom := range poolDenoms {
				if denom == currentTokenInDenom {
					continue
				}
				if hasTokenOut && denom != tokenOutDenom {
					continue
				}

				if lastPoolID == uint64(0) || lastPoolID != poolID {
					newPath := make([]candidatePoolWrapper, len(currentRoute), len(currentRoute)+1)
					copy(newPath, currentRoute)

					newPath = append(newPath, candidatePoolWrapper{
						CandidatePool: domain.CandidatePool{
							ID:            poolID,
							TokenOutDenom: denom,
						},
						PoolDenoms: poolDenoms,
					})

					if len(newPath) <= maxPoolsPerRoute {
						if hasTokenOut {
							routes = append(routes, newPath)
							break
						} else {
							queue = append(queue, newPath)
						}
					}
				}
			}
		}

		for _, pool := range currentRoute {
			visited[pool.ID] = struct{}{}
		}
	}

	return validateAndFilterRoutes(routes, tokenIn.Denom, logger)
}

// validateAndFilterRoutes validates the given candidate routes and filters
// out invalid ones:
// - routes that do not end in the same token out denom as the first route
// - routes where a pool does not hold the denom it receives
// Returns the resulting candidate routes with unique pool IDs populated.
func validateAndFilterRoutes(candidateRoutes [][]candidatePoolWrapper, tokenInDenom string, logger log.Logger) (domain.CandidateRoutes, error) {
	var (
		filteredRoutes []domain.CandidateRoute
		uniquePoolIDs  = make(map[uint64]struct{})
	)

	tokenOutDenom := ""

ROUTE_LOOP:
	for _, candidateRoute := range candidateRoutes {
		if len(candidateRoute) == 0 {
			continue
		}

		currentDenomIn := tokenInDenom
		for _, pool := range candidateRoute {
			hasDenomIn := false
			for _, denom := range pool.PoolDenoms {
				if denom == currentDenomIn {
					hasDenomIn = true
					break
				}
			}
			if !hasDenomIn {
				logger.Debug("filtered candidate route: denom not found in pool", zap.Uint64("pool_id", pool.ID), zap.String("denom", currentDenomIn))
				continue ROUTE_LOOP
			}

			currentDenomIn = pool.TokenOutDenom
		}

		routeTokenOutDenom := candidateRoute[len(candidateRoute)-1].TokenOutDenom
		if tokenOutDenom == "" {
			tokenOutDenom = routeTokenOutDenom
		} else if routeTokenOutDenom != tokenOutDenom {
			logger.Debug("filtered candidate route: mismatched token out denom", zap.String("want", tokenOutDenom), zap.String("got", routeTokenOutDenom))
			continue ROUTE_LOOP
		}

		candidatePools := make([]domain.CandidatePool, 0, len(candidateRoute))
		for _, pool := range candidateRoute {
			candidatePools = append(candidatePools, pool.CandidatePool)
			uniquePoolIDs[pool.ID] = struct{}{}
		}

		filteredRoutes = append(filteredRoutes, domain.CandidateRoute{Pools: candidatePools})
	}

	return domain.CandidateRoutes{
		Routes:        filteredRoutes,
		UniquePoolIDs: uniquePoolIDs,
	}, nil
}
