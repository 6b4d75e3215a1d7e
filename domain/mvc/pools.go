package mvc

import (
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

// PoolsUsecase represent the pool's use cases.
type PoolsUsecase interface {
	// GetAllPools returns all pools in the current snapshot.
	GetAllPools() []domain.PoolI

	// GetPool returns the pool with the given ID or PoolNotFoundError.
	GetPool(poolID uint64) (domain.PoolI, error)

	// StorePools validates and atomically replaces the pool snapshot.
	// The entire snapshot is rejected if any pool fails validation.
	StorePools(pools []domain.PoolI) error

	// GetRoutesFromCandidates converts candidate routes to routes instrumented
	// with all the pool data necessary for estimating a swap.
	GetRoutesFromCandidates(candidateRoutes domain.CandidateRoutes, tokenInDenom, tokenOutDenom string) ([]route.RouteImpl, error)
}
