package pools

import (
	"fmt"

	"github.com/thesneakydev/swaprouter/domain"
)

// NewRoutablePool creates a routable pool from the given pool and token out denom.
func NewRoutablePool(pool domain.PoolI, tokenOutDenom string) (domain.RoutablePool, error) {
	switch pool.GetType() {
	case domain.Weighted:
		return NewRoutableWeightedPool(pool, tokenOutDenom), nil
	case domain.Transmuter:
		return NewRoutableTransmuterPool(pool, tokenOutDenom), nil
	default:
		return nil, fmt.Errorf("unsupported pool type (%s) for pool (%d)", pool.GetType(), pool.GetId())
	}
}
