package pools_test

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/router/usecase/pools"
	"github.com/thesneakydev/swaprouter/router/usecase/routertesting"
)

func (s *RoutablePoolTestSuite) TestCalculateTokenOutByTokenIn_Transmuter() {
	tests := map[string]struct {
		tokenIn       string
		tokenInAmount int64
		tokenOut      string
		balanceOut    int64
		spreadFactor  osmomath.Dec

		expectedTokenOut osmomath.Int
		expectedError    error
	}{
		"one-to-one, no fee": {
			tokenIn:       routertesting.UUSDC,
			tokenInAmount: 100_000,
			tokenOut:      routertesting.UUSDT,
			balanceOut:    1_000_000,
			spreadFactor:  routertesting.ZeroSpreadFactor,

			expectedTokenOut: osmomath.NewInt(100_000),
		},
		"fee charged on input": {
			tokenIn:       routertesting.UUSDC,
			tokenInAmount: 100_000,
			tokenOut:      routertesting.UUSDT,
			balanceOut:    1_000_000,
			spreadFactor:  osmomath.MustNewDecFromStr("0.01"),

			expectedTokenOut: osmomath.NewInt(99_000),
		},
		"out amount bounded by pool balance": {
			tokenIn:       routertesting.UUSDC,
			tokenInAmount: 2_000_000,
			tokenOut:      routertesting.UUSDT,
			balanceOut:    1_000_000,
			spreadFactor:  routertesting.ZeroSpreadFactor,

			expectedError: domain.InsufficientLiquidityError{
				PoolID:        defaultPoolID,
				Denom:         routertesting.UUSDT,
				BalanceAmount: osmomath.NewInt(1_000_000).String(),
				Amount:        osmomath.NewInt(2_000_000).String(),
			},
		},
		"token in denom not in pool": {
			tokenIn:       routertesting.UOSMO,
			tokenInAmount: 100_000,
			tokenOut:      routertesting.UUSDT,
			balanceOut:    1_000_000,
			spreadFactor:  routertesting.ZeroSpreadFactor,

			expectedError: domain.DenomNotFoundInPoolError{PoolID: defaultPoolID, Denom: routertesting.UOSMO},
		},
	}

	for name, tc := range tests {
		s.Run(name, func() {
			pool := s.NewTransmuterPool(defaultPoolID, tc.spreadFactor,
				s.Coin(routertesting.UUSDC, 1_000_000), s.Coin(routertesting.UUSDT, tc.balanceOut))

			routablePool := pools.NewRoutableTransmuterPool(pool, tc.tokenOut)

			tokenOut, err := routablePool.CalculateTokenOutByTokenIn(s.Coin(tc.tokenIn, tc.tokenInAmount))

			if tc.expectedError != nil {
				s.Require().Error(err)
				s.Require().ErrorIs(err, tc.expectedError)
				return
			}

			s.Require().NoError(err)
			s.Require().Equal(tc.tokenOut, tokenOut.Denom)
			s.Require().Equal(tc.expectedTokenOut.String(), tokenOut.Amount.String())
		})
	}
}

func (s *RoutablePoolTestSuite) TestCalcSpotPrice_Transmuter() {
	pool := s.NewTransmuterPool(defaultPoolID, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UUSDC, 1_000_000), s.Coin(routertesting.UUSDT, 500_000))

	routablePool := pools.NewRoutableTransmuterPool(pool, routertesting.UUSDT)

	// The price is one regardless of the balance ratio.
	spotPrice, err := routablePool.CalcSpotPrice(routertesting.UUSDC, routertesting.UUSDT)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.OneBigDec().String(), spotPrice.String())

	// The price stays one after a swap that fits within the balance.
	spotPrice, err = routablePool.CalcSpotPriceAfterSwap(s.Coin(routertesting.UUSDC, 100_000), routertesting.UUSDT)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.OneBigDec().String(), spotPrice.String())

	// Unknown denom errors.
	_, err = routablePool.CalcSpotPrice(routertesting.UOSMO, routertesting.UUSDT)
	s.Require().Error(err)
}

func (s *RoutablePoolTestSuite) TestNewRoutablePool_Factory() {
	weightedPool := s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UOSMO, 1_000_000), s.Coin(routertesting.UATOM, 2_000_000))
	transmuterPool := s.NewTransmuterPool(2, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UUSDC, 1_000_000), s.Coin(routertesting.UUSDT, 1_000_000))

	routablePool, err := pools.NewRoutablePool(weightedPool, routertesting.UATOM)
	s.Require().NoError(err)
	s.Require().Equal(domain.Weighted, routablePool.GetType())

	routablePool, err = pools.NewRoutablePool(transmuterPool, routertesting.UUSDT)
	s.Require().NoError(err)
	s.Require().Equal(domain.Transmuter, routablePool.GetType())

	unsupportedPool := &domain.PoolWrapper{
		ID:   3,
		Type: domain.PoolType(42),
	}

	_, err = pools.NewRoutablePool(unsupportedPool, routertesting.UUSDT)
	s.Require().Error(err)
}
