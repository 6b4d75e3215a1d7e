package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/log"
)

type ratedPool struct {
	pool   domain.PoolI
	rating osmomath.Int
}

// ValidateAndSortPools filters out invalid pools and pools below the minimum
// liquidity cap, and sorts the rest so that the most appropriate pools are at
// the top. The rating assigned to each pool:
// - Initial rating equals the pool's liquidity cap.
// - Preferred pools get a boost equal to the total liquidity cap across all pools.
// - Transmuter pools get a boost equal to 3/2 of the total liquidity cap since
//   they are the most efficient due to no slippage swaps.
//
// The sorted order drives candidate route discovery: the BFS visits pools in
// this order, so higher-rated pools end up in candidate routes first.
func ValidateAndSortPools(pools []domain.PoolI, preferredPoolIDs []uint64, minPoolLiquidityCap uint64, logger log.Logger) []domain.PoolI {
	validPools := make([]domain.PoolI, 0, len(pools))
	totalLiquidityCap := osmomath.ZeroInt()

	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			logger.Debug("pool validation failed, skip silently", zap.Uint64("pool_id", pool.GetId()), zap.Error(err))
			continue
		}

		if pool.GetLiquidityCap().Uint64() < minPoolLiquidityCap {
			continue
		}

		validPools = append(validPools, pool)
		totalLiquidityCap = totalLiquidityCap.Add(pool.GetLiquidityCap())
	}

	preferredPoolIDsMap := make(map[uint64]struct{}, len(preferredPoolIDs))
	for _, poolID := range preferredPoolIDs {
		preferredPoolIDsMap[poolID] = struct{}{}
	}

	return sortPools(validPools, totalLiquidityCap, preferredPoolIDsMap, logger)
}

func sortPools(pools []domain.PoolI, totalLiquidityCap osmomath.Int, preferredPoolIDsMap map[uint64]struct{}, logger log.Logger) []domain.PoolI {
	ratedPools := make([]ratedPool, 0, len(pools))
	for _, pool := range pools {
		rating := pool.GetLiquidityCap()

		if _, isPreferred := preferredPoolIDsMap[pool.GetId()]; isPreferred {
			rating = rating.Add(totalLiquidityCap)
		}

		if pool.GetType() == domain.Transmuter {
			rating = rating.Add(totalLiquidityCap.MulRaw(3).QuoRaw(2))
		}

		ratedPools = append(ratedPools, ratedPool{
			pool:   pool,
			rating: rating,
		})
	}

	sort.SliceStable(ratedPools, func(i, j int) bool {
		return ratedPools[i].rating.GT(ratedPools[j].rating)
	})

	logger.Debug("pool count in router", zap.Int("pool_count", len(ratedPools)))

	for i, ratedPool := range ratedPools {
		pools[i] = ratedPool.pool
	}
	return pools
}
