package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/mvc"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/router/usecase/pools"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

// poolsSnapshot is an immutable view of all pools at a point in time.
// Readers always observe either the previous or the next snapshot in full,
// never a partially replaced one.
type poolsSnapshot struct {
	pools    []domain.PoolI
	poolByID map[uint64]domain.PoolI
}

type poolsUseCase struct {
	snapshot atomic.Pointer[poolsSnapshot]

	logger log.Logger
}

var _ mvc.PoolsUsecase = &poolsUseCase{}

// NewPoolsUsecase will create a new pools use case object with an empty
// snapshot.
func NewPoolsUsecase(logger log.Logger) mvc.PoolsUsecase {
	useCase := &poolsUseCase{
		logger: logger,
	}

	useCase.snapshot.Store(&poolsSnapshot{
		pools:    []domain.PoolI{},
		poolByID: map[uint64]domain.PoolI{},
	})

	return useCase
}

// GetAllPools implements mvc.PoolsUsecase.
// Returns a copy of the snapshot pool list so that callers may reorder it
// freely.
func (p *poolsUseCase) GetAllPools() []domain.PoolI {
	snapshot := p.snapshot.Load()

	allPools := make([]domain.PoolI, len(snapshot.pools))
	copy(allPools, snapshot.pools)

	return allPools
}

// GetPool implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetPool(poolID uint64) (domain.PoolI, error) {
	pool, ok := p.snapshot.Load().poolByID[poolID]
	if !ok {
		return nil, domain.PoolNotFoundError{PoolID: poolID}
	}
	return pool, nil
}

// StorePools implements mvc.PoolsUsecase.
// Validates every pool before swapping the snapshot. The entire snapshot is
// rejected if any pool is malformed, leaving the previous snapshot in place.
func (p *poolsUseCase) StorePools(newPools []domain.PoolI) error {
	poolByID := make(map[uint64]domain.PoolI, len(newPools))

	for _, pool := range newPools {
		if err := pool.Validate(); err != nil {
			return err
		}

		poolID := pool.GetId()
		if _, ok := poolByID[poolID]; ok {
			return fmt.Errorf("duplicate pool ID (%d) in snapshot", poolID)
		}

		poolByID[poolID] = pool
	}

	poolsCopy := make([]domain.PoolI, len(newPools))
	copy(poolsCopy, newPools)

	p.snapshot.Store(&poolsSnapshot{
		pools:    poolsCopy,
		poolByID: poolByID,
	})

	p.logger.Info("stored pool snapshot", zap.Int("num_pools", len(poolsCopy)))

	return nil
}

// GetRoutesFromCandidates implements mvc.PoolsUsecase.
// Converts candidate routes to routes instrumented with all the pool data
// necessary for estimating a swap.
// For fault tolerance, a route referencing an unsupported pool type is
// skipped rather than failing the entire conversion.
// Returns error if a candidate route references a pool that is not in the
// snapshot, as that indicates the candidates are stale.
func (p *poolsUseCase) GetRoutesFromCandidates(candidateRoutes domain.CandidateRoutes, tokenInDenom, tokenOutDenom string) ([]route.RouteImpl, error) {
	routes := make([]route.RouteImpl, 0, len(candidateRoutes.Routes))

	for _, candidateRoute := range candidateRoutes.Routes {
		routablePools := make([]domain.RoutablePool, 0, len(candidateRoute.Pools))

		// For fault tolerance, instead of bubbling up the error and failing
		// the entire request, we detect the error and skip the route.
		skipErrorRoute := false

		for _, candidatePool := range candidateRoute.Pools {
			pool, err := p.GetPool(candidatePool.ID)
			if err != nil {
				return nil, err
			}

			routablePool, err := pools.NewRoutablePool(pool, candidatePool.TokenOutDenom)
			if err != nil {
				p.logger.Debug("skipping route due to unroutable pool", zap.Uint64("pool_id", candidatePool.ID), zap.Error(err))
				skipErrorRoute = true
				break
			}

			routablePools = append(routablePools, routablePool)
		}

		if skipErrorRoute {
			continue
		}

		routes = append(routes, route.RouteImpl{
			Pools: routablePools,
		})
	}

	return routes, nil
}

// ReadPoolsFile parses the pool snapshot file at the given path.
// The file holds a JSON array of pools in the wire format of PoolWrapper.
func ReadPoolsFile(poolsFilePath string) ([]domain.PoolI, error) {
	poolsFileContent, err := os.ReadFile(poolsFilePath)
	if err != nil {
		return nil, err
	}

	var poolWrappers []domain.PoolWrapper
	if err := json.Unmarshal(poolsFileContent, &poolWrappers); err != nil {
		return nil, fmt.Errorf("error parsing pools file (%s): %w", poolsFilePath, err)
	}

	allPools := make([]domain.PoolI, 0, len(poolWrappers))
	for i := range poolWrappers {
		allPools = append(allPools, &poolWrappers[i])
	}

	return allPools, nil
}
