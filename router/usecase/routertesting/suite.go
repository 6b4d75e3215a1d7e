package routertesting

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/log"
)

// RouterTestHelper is the base test suite for router tests, providing
// constructors for pools and routes shared across the router test files.
type RouterTestHelper struct {
	suite.Suite
}

// Test denominations.
const (
	UOSMO = "uosmo"
	UATOM = "uatom"
	UUSDC = "uusdc"
	UUSDT = "uusdt"
	UION  = "uion"
	WETH  = "wei"
)

var (
	// DefaultSpreadFactor is a typical pool fee of 0.2%.
	DefaultSpreadFactor = osmomath.MustNewDecFromStr("0.002")

	ZeroSpreadFactor = osmomath.ZeroDec()

	// DefaultAmountIn is the amount in used by tests unless stated otherwise.
	DefaultAmountIn = osmomath.NewInt(100_000)

	DefaultPoolBalance = osmomath.NewInt(1_000_000_000)
)

// NoOpLogger returns a logger that discards all messages.
func (s *RouterTestHelper) NoOpLogger() log.Logger {
	return &log.NoOpLogger{}
}

// NewWeightedPool creates a weighted pool with the given balances and an
// implied equal weighting.
func (s *RouterTestHelper) NewWeightedPool(id uint64, spreadFactor osmomath.Dec, balances ...sdk.Coin) domain.PoolI {
	return &domain.PoolWrapper{
		ID:           id,
		Type:         domain.Weighted,
		Balances:     sdk.Coins(balances),
		SpreadFactor: spreadFactor,
		LiquidityCap: totalBalance(balances),
	}
}

// NewWeightedPoolWithWeights creates a weighted pool with explicit per-denom
// weights.
func (s *RouterTestHelper) NewWeightedPoolWithWeights(id uint64, spreadFactor osmomath.Dec, weights map[string]osmomath.Int, balances ...sdk.Coin) domain.PoolI {
	return &domain.PoolWrapper{
		ID:           id,
		Type:         domain.Weighted,
		Balances:     sdk.Coins(balances),
		SpreadFactor: spreadFactor,
		Weights:      weights,
		LiquidityCap: totalBalance(balances),
	}
}

// NewTransmuterPool creates a transmuter pool with the given balances.
func (s *RouterTestHelper) NewTransmuterPool(id uint64, spreadFactor osmomath.Dec, balances ...sdk.Coin) domain.PoolI {
	return &domain.PoolWrapper{
		ID:           id,
		Type:         domain.Transmuter,
		Balances:     sdk.Coins(balances),
		SpreadFactor: spreadFactor,
		LiquidityCap: totalBalance(balances),
	}
}

// Coin is a shorthand coin constructor for tests.
func (s *RouterTestHelper) Coin(denom string, amount int64) sdk.Coin {
	return sdk.NewCoin(denom, osmomath.NewInt(amount))
}

func totalBalance(balances []sdk.Coin) osmomath.Int {
	total := osmomath.ZeroInt()
	for _, balance := range balances {
		total = total.Add(balance.Amount)
	}
	return total
}
