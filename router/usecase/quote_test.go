package usecase_test

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	routerusecase "github.com/thesneakydev/swaprouter/router/usecase"
	"github.com/thesneakydev/swaprouter/router/usecase/routertesting"
)

var (
	oneScalingFactor = osmomath.OneDec()
)

func (s *RouterTestSuite) TestNewZeroQuote() {
	quote := routerusecase.NewZeroQuote(routertesting.UATOM)

	s.Require().Equal(routertesting.UATOM, quote.GetAmountIn().Denom)
	s.Require().True(quote.GetAmountIn().Amount.IsZero())
	s.Require().True(quote.GetAmountOut().IsZero())
	s.Require().Empty(quote.GetRoute())
	s.Require().True(quote.GetEffectiveFee().IsZero())
	s.Require().True(quote.GetPriceImpact().IsZero())
	s.Require().True(quote.GetInBaseOutQuoteSpotPrice().IsZero())

	// Preparing a zero quote must be a no-op that stays fully zero-valued.
	routes, fee := quote.PrepareResult(oneScalingFactor)
	s.Require().Empty(routes)
	s.Require().True(fee.IsZero())
}

func (s *RouterTestSuite) TestPrepareResult_SingleRoute() {
	spreadFactor := osmomath.MustNewDecFromStr("0.003")

	pool := s.NewWeightedPool(1, spreadFactor,
		s.Coin(routertesting.UATOM, 1_000_000_000), s.Coin(routertesting.UUSDC, 1_000_000_000))

	tokenIn := s.Coin(routertesting.UATOM, 10_000_000)

	curRoute := s.singlePoolRoute(pool, routertesting.UUSDC)
	tokenOut, err := curRoute.CalculateTokenOutByTokenIn(tokenIn)
	s.Require().NoError(err)

	quote := routerusecase.NewQuote(tokenIn, tokenOut.Amount, []domain.SplitRoute{
		&routerusecase.RouteWithOutAmount{
			RouteImpl: curRoute,
			InAmount:  tokenIn.Amount,
			OutAmount: tokenOut.Amount,
		},
	})

	routes, fee := quote.PrepareResult(oneScalingFactor)

	// A single one-hop route: the effective fee is the pool fee.
	s.Require().Equal(spreadFactor.String(), fee.String())
	s.Require().Len(routes, 1)

	// The route pools are stripped down to the result form.
	resultPools := routes[0].GetPools()
	s.Require().Len(resultPools, 1)
	s.Require().Equal(domain.Result, resultPools[0].GetType())
	s.Require().Equal(uint64(1), resultPools[0].GetId())
	s.Require().Equal(spreadFactor.String(), resultPools[0].GetSpreadFactor().String())

	// Equal balances: the spot price is one, and the trade plus fee slips the
	// effective price below it. Slippage is never negative.
	s.Require().Equal(osmomath.OneDec().String(), quote.GetInBaseOutQuoteSpotPrice().String())
	s.Require().False(quote.GetPriceImpact().IsNegative())
	s.Require().True(quote.GetPriceImpact().IsPositive())
}

// Validates that a trade far beyond a shallow pool's depth is reported as
// steep slippage rather than an error: the constant-product curve keeps
// quoting, the price impact surfaces how bad the execution is.
func (s *RouterTestSuite) TestPrepareResult_ShallowPoolHighImpact() {
	pool := s.NewWeightedPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UATOM, 1_000_000), s.Coin(routertesting.UUSDC, 1_000_000))

	// Three times the uatom reserve:
	// out = 1000000 * (1 - 1000000 / 4000000) = 750000
	tokenIn := s.Coin(routertesting.UATOM, 3_000_000)

	curRoute := s.singlePoolRoute(pool, routertesting.UUSDC)
	tokenOut, err := curRoute.CalculateTokenOutByTokenIn(tokenIn)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewInt(750_000).String(), tokenOut.Amount.String())

	quote := routerusecase.NewQuote(tokenIn, tokenOut.Amount, []domain.SplitRoute{
		&routerusecase.RouteWithOutAmount{
			RouteImpl: curRoute,
			InAmount:  tokenIn.Amount,
			OutAmount: tokenOut.Amount,
		},
	})

	quote.PrepareResult(oneScalingFactor)

	// Effective price is 0.25 out per in against a spot price of one:
	// impact = 1 / 0.25 - 1 = 3.
	s.Require().Equal(osmomath.NewDec(3).String(), quote.GetPriceImpact().String())
	s.Require().True(quote.GetPriceImpact().GT(osmomath.OneDec()))
}

// Validates that the effective fee across routes is weighted by the amount in
// allocated to each route.
func (s *RouterTestSuite) TestPrepareResult_SplitRouteFee() {
	var (
		feeOne = osmomath.MustNewDecFromStr("0.01")
		feeTwo = osmomath.MustNewDecFromStr("0.03")

		poolOne = s.NewTransmuterPool(1, feeOne,
			s.Coin(routertesting.UUSDC, 1_000_000_000), s.Coin(routertesting.UUSDT, 1_000_000_000))
		poolTwo = s.NewTransmuterPool(2, feeTwo,
			s.Coin(routertesting.UUSDC, 1_000_000_000), s.Coin(routertesting.UUSDT, 1_000_000_000))
	)

	var (
		inOne = osmomath.NewInt(1_000_000)
		inTwo = osmomath.NewInt(3_000_000)

		outOne = osmomath.NewInt(990_000)
		outTwo = osmomath.NewInt(2_910_000)
	)

	tokenIn := s.Coin(routertesting.UUSDC, 4_000_000)

	quote := routerusecase.NewQuote(tokenIn, outOne.Add(outTwo), []domain.SplitRoute{
		&routerusecase.RouteWithOutAmount{
			RouteImpl: s.singlePoolRoute(poolOne, routertesting.UUSDT),
			InAmount:  inOne,
			OutAmount: outOne,
		},
		&routerusecase.RouteWithOutAmount{
			RouteImpl: s.singlePoolRoute(poolTwo, routertesting.UUSDT),
			InAmount:  inTwo,
			OutAmount: outTwo,
		},
	})

	_, fee := quote.PrepareResult(oneScalingFactor)

	// 0.01 * 1/4 + 0.03 * 3/4 = 0.025
	s.Require().Equal(osmomath.MustNewDecFromStr("0.025").String(), fee.String())
}

// Validates that the displayed prices are scaled by the given factor and the
// reciprocal direction is derived from the same underlying ratio.
func (s *RouterTestSuite) TestPrepareResult_ScalingFactor() {
	pool := s.NewTransmuterPool(1, routertesting.ZeroSpreadFactor,
		s.Coin(routertesting.UUSDC, 1_000_000_000), s.Coin(routertesting.UUSDT, 1_000_000_000))

	tokenIn := s.Coin(routertesting.UUSDC, 1_000_000)

	quote := routerusecase.NewQuote(tokenIn, tokenIn.Amount, []domain.SplitRoute{
		&routerusecase.RouteWithOutAmount{
			RouteImpl: s.singlePoolRoute(pool, routertesting.UUSDT),
			InAmount:  tokenIn.Amount,
			OutAmount: tokenIn.Amount,
		},
	})

	scalingFactor := osmomath.MustNewDecFromStr("100")

	quote.PrepareResult(scalingFactor)

	// The transmuter spot price is one, scaled to 100.
	s.Require().Equal(scalingFactor.String(), quote.GetInBaseOutQuoteSpotPrice().String())

	// No slippage on a transmuter.
	s.Require().True(quote.GetPriceImpact().IsZero())
}
