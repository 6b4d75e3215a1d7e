package domain

import (
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// PoolType is an enum representing the type of a liquidity pool.
// Each definition corresponds to a routable pool implementation
// in router/usecase/pools.
type PoolType int

const (
	// Result is a stripped-down pool type returned to clients in quotes.
	Result PoolType = -1
	// Weighted is a constant-product pool, optionally with non-equal weights.
	Weighted PoolType = 0
	// Transmuter is a no-slippage pool swapping assets one-to-one.
	Transmuter PoolType = 1
)

// String returns the string representation of the pool type.
func (t PoolType) String() string {
	switch t {
	case Weighted:
		return "Weighted"
	case Transmuter:
		return "Transmuter"
	case Result:
		return "Result"
	default:
		return "Unknown"
	}
}

// PoolI represents a generalized pool interface.
// Pools are a read-only snapshot during routing. Implementations must not
// mutate pool state in any of the methods.
type PoolI interface {
	// GetId returns the ID of the pool.
	GetId() uint64
	// GetType returns the type of the pool (Weighted, Transmuter).
	GetType() PoolType

	GetPoolDenoms() []string

	GetBalances() sdk.Coins

	// GetSpreadFactor returns the swap fee rate of the pool. A ratio in [0, 1).
	GetSpreadFactor() osmomath.Dec

	// GetWeights returns the normalized weight per denom.
	// Empty or nil weights imply equal weighting.
	GetWeights() map[string]osmomath.Int

	// GetLiquidityCap returns the pool liquidity capitalization.
	// It is a capacity proxy used for ranking pools during route discovery.
	GetLiquidityCap() osmomath.Int

	// Validate validates the pool.
	// Returns nil if the pool is valid, error otherwise.
	Validate() error
}

// PoolWrapper is the canonical PoolI implementation, deserialized
// from a pool snapshot file or ingested over HTTP.
type PoolWrapper struct {
	ID           uint64                  `json:"id"`
	Type         PoolType                `json:"type"`
	Balances     sdk.Coins               `json:"balances"`
	SpreadFactor osmomath.Dec            `json:"spread_factor"`
	Weights      map[string]osmomath.Int `json:"weights,omitempty"`
	LiquidityCap osmomath.Int            `json:"liquidity_cap"`
}

var _ PoolI = &PoolWrapper{}

// NewPool returns a new weighted pool with the given parameters.
func NewPool(id uint64, poolType PoolType, spreadFactor osmomath.Dec, balances sdk.Coins) PoolI {
	return &PoolWrapper{
		ID:           id,
		Type:         poolType,
		Balances:     balances,
		SpreadFactor: spreadFactor,
		LiquidityCap: totalBalance(balances),
	}
}

// GetId implements PoolI.
func (p *PoolWrapper) GetId() uint64 {
	return p.ID
}

// GetType implements PoolI.
func (p *PoolWrapper) GetType() PoolType {
	return p.Type
}

// GetPoolDenoms implements PoolI.
func (p *PoolWrapper) GetPoolDenoms() []string {
	denoms := make([]string, 0, len(p.Balances))
	for _, balance := range p.Balances {
		denoms = append(denoms, balance.Denom)
	}
	sort.Strings(denoms)
	return denoms
}

// GetBalances implements PoolI.
func (p *PoolWrapper) GetBalances() sdk.Coins {
	return p.Balances
}

// GetSpreadFactor implements PoolI.
func (p *PoolWrapper) GetSpreadFactor() osmomath.Dec {
	return p.SpreadFactor
}

// GetWeights implements PoolI.
func (p *PoolWrapper) GetWeights() map[string]osmomath.Int {
	return p.Weights
}

// GetLiquidityCap implements PoolI.
func (p *PoolWrapper) GetLiquidityCap() osmomath.Int {
	if p.LiquidityCap.IsNil() {
		return totalBalance(p.Balances)
	}
	return p.LiquidityCap
}

// Validate implements PoolI.
func (p *PoolWrapper) Validate() error {
	denoms := p.GetPoolDenoms()
	if len(denoms) < 2 {
		return InvalidPoolError{PoolID: p.ID, DenomCount: len(denoms)}
	}

	if p.SpreadFactor.IsNil() || p.SpreadFactor.IsNegative() || p.SpreadFactor.GTE(osmomath.OneDec()) {
		return InvalidPoolSpreadFactorError{PoolID: p.ID, SpreadFactor: p.SpreadFactor}
	}

	for _, balance := range p.Balances {
		if !balance.Amount.IsPositive() {
			return InvalidPoolBalanceError{PoolID: p.ID, Denom: balance.Denom}
		}
	}

	for denom, weight := range p.Weights {
		if !weight.IsPositive() {
			return fmt.Errorf("pool (%d) has non-positive weight for denom (%s)", p.ID, denom)
		}
	}

	return nil
}

func totalBalance(balances sdk.Coins) osmomath.Int {
	total := osmomath.ZeroInt()
	for _, balance := range balances {
		total = total.Add(balance.Amount)
	}
	return total
}
