package usecase

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

var (
	one = osmomath.OneDec()

	_ domain.Quote      = &quoteImpl{}
	_ domain.SplitRoute = &RouteWithOutAmount{}
)

// RouteWithOutAmount is a route annotated with the in amount allocated to it
// and the out amount it produces for that allocation.
type RouteWithOutAmount struct {
	route.RouteImpl
	OutAmount osmomath.Int `json:"out_amount"`
	InAmount  osmomath.Int `json:"in_amount"`
}

// GetAmountIn implements domain.SplitRoute.
func (r *RouteWithOutAmount) GetAmountIn() osmomath.Int {
	return r.InAmount
}

// GetAmountOut implements domain.SplitRoute.
func (r *RouteWithOutAmount) GetAmountOut() osmomath.Int {
	return r.OutAmount
}

// quoteImpl is the quote implementation for the token swap method exact in.
type quoteImpl struct {
	AmountIn  sdk.Coin            `json:"amount_in"`
	AmountOut osmomath.Int        `json:"amount_out"`
	Route     []domain.SplitRoute `json:"route"`

	EffectiveFee osmomath.Dec `json:"effective_fee"`

	// PriceImpact is the relative deviation of the effective price from the
	// before-swap spot price, clamped to be non-negative.
	PriceImpact osmomath.Dec `json:"price_impact"`

	InBaseOutQuoteSpotPrice      osmomath.Dec `json:"in_base_out_quote_spot_price"`
	OutBaseInQuoteSpotPrice      osmomath.Dec `json:"out_base_in_quote_spot_price"`
	AfterSpotPriceInBaseOutQuote osmomath.Dec `json:"after_spot_price_in_base_out_quote"`
	AfterSpotPriceOutBaseInQuote osmomath.Dec `json:"after_spot_price_out_base_in_quote"`
	EffectivePriceInBaseOutQuote osmomath.Dec `json:"effective_price_in_base_out_quote"`
	EffectivePriceOutBaseInQuote osmomath.Dec `json:"effective_price_out_base_in_quote"`
}

// NewQuote creates a new exact-in quote with the given parameters.
func NewQuote(amountIn sdk.Coin, amountOut osmomath.Int, routes []domain.SplitRoute) domain.Quote {
	return &quoteImpl{
		AmountIn:  amountIn,
		AmountOut: amountOut,
		Route:     routes,
	}
}

// NewZeroQuote returns the fully populated zero-valued quote for the given
// token in denom. Used for the "no quote yet" states: zero amount in, equal
// denoms, or no route found. Callers can render it without error handling.
func NewZeroQuote(tokenInDenom string) domain.Quote {
	return &quoteImpl{
		AmountIn:  sdk.Coin{Denom: tokenInDenom, Amount: osmomath.ZeroInt()},
		AmountOut: osmomath.ZeroInt(),
		Route:     []domain.SplitRoute{},

		EffectiveFee: osmomath.ZeroDec(),
		PriceImpact:  osmomath.ZeroDec(),

		InBaseOutQuoteSpotPrice:      osmomath.ZeroDec(),
		OutBaseInQuoteSpotPrice:      osmomath.ZeroDec(),
		AfterSpotPriceInBaseOutQuote: osmomath.ZeroDec(),
		AfterSpotPriceOutBaseInQuote: osmomath.ZeroDec(),
		EffectivePriceInBaseOutQuote: osmomath.ZeroDec(),
		EffectivePriceOutBaseInQuote: osmomath.ZeroDec(),
	}
}

// PrepareResult implements domain.Quote.
// PrepareResult mutates the quote to prepare it with the data formatted for
// output to the client. Specifically:
// - strips away unnecessary fields from each pool in the route
// - computes the effective fee as the amount-in weighted average of each
//   route's multiplicatively compounded per-hop fees
// - computes the before/after swap spot prices as the amount-in weighted
//   average of the per-route prices, and the effective price from the total
//   amounts; reciprocal directions are derived from the same underlying ratio
// - computes the price impact, clamped to be non-negative so that rounding
//   never reports negative slippage
//
// The scaling factor adjusts displayed prices for the decimal difference
// between the token out and token in currencies.
//
// Returns the updated routes and the effective fee.
func (q *quoteImpl) PrepareResult(scalingFactor osmomath.Dec) ([]domain.SplitRoute, osmomath.Dec) {
	if q.AmountIn.Amount.IsNil() || q.AmountIn.Amount.IsZero() || q.AmountOut.IsNil() || q.AmountOut.IsZero() || len(q.Route) == 0 {
		zero := NewZeroQuote(q.AmountIn.Denom)
		*q = *zero.(*quoteImpl)
		return q.Route, q.EffectiveFee
	}

	totalAmountIn := q.AmountIn.Amount.ToLegacyDec()
	totalFeeAcrossRoutes := osmomath.ZeroDec()

	totalSpotPriceInBaseOutQuote := osmomath.ZeroDec()
	totalAfterSpotPriceInBaseOutQuote := osmomath.ZeroDec()

	resultRoutes := make([]domain.SplitRoute, 0, len(q.Route))

	for _, curRoute := range q.Route {
		routeTotalFee := osmomath.ZeroDec()
		routeAmountInFraction := curRoute.GetAmountIn().ToLegacyDec().Quo(totalAmountIn)

		// Compound the fee across pools in the route:
		// routeFee += (1 - routeFee) * poolFee
		for _, pool := range curRoute.GetPools() {
			routeTotalFee.AddMut(
				one.Sub(routeTotalFee).MulTruncateMut(pool.GetSpreadFactor()),
			)
		}

		// Update the total fee pro-rated by the amount in
		totalFeeAcrossRoutes.AddMut(routeTotalFee.MulMut(routeAmountInFraction))

		routeAmountIn := sdk.NewCoin(q.AmountIn.Denom, curRoute.GetAmountIn())
		newPools, routeSpotPriceInBaseOutQuote, routeAfterSpotPriceInBaseOutQuote, _, err := curRoute.PrepareResultPools(routeAmountIn)
		if err != nil {
			// A route that fails the final re-estimation contributes zero
			// prices. The amounts were already computed successfully.
			routeSpotPriceInBaseOutQuote = osmomath.ZeroDec()
			routeAfterSpotPriceInBaseOutQuote = osmomath.ZeroDec()
			newPools = curRoute.GetPools()
		}

		totalSpotPriceInBaseOutQuote = totalSpotPriceInBaseOutQuote.AddMut(routeSpotPriceInBaseOutQuote.MulMut(routeAmountInFraction))
		totalAfterSpotPriceInBaseOutQuote = totalAfterSpotPriceInBaseOutQuote.AddMut(routeAfterSpotPriceInBaseOutQuote.MulMut(routeAmountInFraction))

		resultRoutes = append(resultRoutes, &RouteWithOutAmount{
			RouteImpl: route.RouteImpl{
				Pools: newPools,
			},
			InAmount:  curRoute.GetAmountIn(),
			OutAmount: curRoute.GetAmountOut(),
		})
	}

	effectivePriceInBaseOutQuote := q.AmountOut.ToLegacyDec().Quo(totalAmountIn)

	// Calculate price impact in the out-base-in-quote direction: the effective
	// in-per-out price rises above the spot in-per-out price as the trade
	// consumes liquidity. Clamped at zero so rounding in the pool math never
	// surfaces as negative slippage.
	if !totalSpotPriceInBaseOutQuote.IsZero() {
		q.PriceImpact = totalSpotPriceInBaseOutQuote.Quo(effectivePriceInBaseOutQuote).SubMut(one)
		if q.PriceImpact.IsNegative() {
			q.PriceImpact = osmomath.ZeroDec()
		}
	} else {
		q.PriceImpact = osmomath.ZeroDec()
	}

	q.EffectiveFee = totalFeeAcrossRoutes
	q.Route = resultRoutes

	// Both price directions are derived from one underlying ratio so that
	// out/in is always the exact reciprocal of in/out.
	q.InBaseOutQuoteSpotPrice = totalSpotPriceInBaseOutQuote.Mul(scalingFactor)
	q.OutBaseInQuoteSpotPrice = reciprocal(q.InBaseOutQuoteSpotPrice)
	q.AfterSpotPriceInBaseOutQuote = totalAfterSpotPriceInBaseOutQuote.Mul(scalingFactor)
	q.AfterSpotPriceOutBaseInQuote = reciprocal(q.AfterSpotPriceInBaseOutQuote)
	q.EffectivePriceInBaseOutQuote = effectivePriceInBaseOutQuote.Mul(scalingFactor)
	q.EffectivePriceOutBaseInQuote = reciprocal(q.EffectivePriceInBaseOutQuote)

	return q.Route, q.EffectiveFee
}

func reciprocal(d osmomath.Dec) osmomath.Dec {
	if d.IsZero() {
		return osmomath.ZeroDec()
	}
	return one.Quo(d)
}

// GetAmountIn implements domain.Quote.
func (q *quoteImpl) GetAmountIn() sdk.Coin {
	return q.AmountIn
}

// GetAmountOut implements domain.Quote.
func (q *quoteImpl) GetAmountOut() osmomath.Int {
	return q.AmountOut
}

// GetRoute implements domain.Quote.
func (q *quoteImpl) GetRoute() []domain.SplitRoute {
	return q.Route
}

// GetEffectiveFee implements domain.Quote.
func (q *quoteImpl) GetEffectiveFee() osmomath.Dec {
	return q.EffectiveFee
}

// GetPriceImpact implements domain.Quote.
func (q *quoteImpl) GetPriceImpact() osmomath.Dec {
	return q.PriceImpact
}

// GetInBaseOutQuoteSpotPrice implements domain.Quote.
func (q *quoteImpl) GetInBaseOutQuoteSpotPrice() osmomath.Dec {
	return q.InBaseOutQuoteSpotPrice
}

// String implements domain.Quote.
func (q *quoteImpl) String() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Quote: %s in for %s out \n", q.AmountIn, q.AmountOut))

	for _, route := range q.Route {
		builder.WriteString(route.String())
	}

	return builder.String()
}
