package pools

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
)

var _ domain.RoutablePool = &routableWeightedPoolImpl{}

// routableWeightedPoolImpl is a constant-product pool with optional
// per-denom weights. Equal weights reduce to the classic xy=k curve.
type routableWeightedPoolImpl struct {
	ChainPool     domain.PoolI `json:"pool"`
	TokenOutDenom string       `json:"token_out_denom"`
}

// NewRoutableWeightedPool returns a new routable weighted pool with the given
// token out denom.
func NewRoutableWeightedPool(pool domain.PoolI, tokenOutDenom string) domain.RoutablePool {
	return &routableWeightedPoolImpl{
		ChainPool:     pool,
		TokenOutDenom: tokenOutDenom,
	}
}

// GetId implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetId() uint64 {
	return r.ChainPool.GetId()
}

// GetType implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetType() domain.PoolType {
	return domain.Weighted
}

// GetPoolDenoms implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetPoolDenoms() []string {
	return r.ChainPool.GetPoolDenoms()
}

// GetBalances implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetBalances() sdk.Coins {
	return r.ChainPool.GetBalances()
}

// GetTokenOutDenom implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetTokenOutDenom() string {
	return r.TokenOutDenom
}

// SetTokenOutDenom implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) SetTokenOutDenom(tokenOutDenom string) {
	r.TokenOutDenom = tokenOutDenom
}

// GetSpreadFactor implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetSpreadFactor() osmomath.Dec {
	return r.ChainPool.GetSpreadFactor()
}

// GetLiquidityCap implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) GetLiquidityCap() osmomath.Int {
	return r.ChainPool.GetLiquidityCap()
}

// CalculateTokenOutByTokenIn implements domain.RoutablePool.
// Solves the constant function invariant for the out amount:
//
//	amountOut = balanceOut * (1 - (balanceIn / (balanceIn + amountInAfterFee))^(weightIn/weightOut))
//
// where amountInAfterFee charges the pool spread factor on the input.
func (r *routableWeightedPoolImpl) CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (sdk.Coin, error) {
	balanceIn, balanceOut, err := r.balancesInOut(tokenIn.Denom, r.TokenOutDenom)
	if err != nil {
		return sdk.Coin{}, err
	}

	amountInAfterFee := tokenIn.Amount.ToLegacyDec().MulTruncate(osmomath.OneDec().Sub(r.GetSpreadFactor()))
	if amountInAfterFee.IsZero() {
		return sdk.NewCoin(r.TokenOutDenom, osmomath.ZeroInt()), nil
	}

	balanceInDec := balanceIn.ToLegacyDec()
	balanceRatio := balanceInDec.Quo(balanceInDec.Add(amountInAfterFee))

	weightRatio := r.weightRatio(tokenIn.Denom, r.TokenOutDenom)
	if !weightRatio.Equal(osmomath.OneDec()) {
		balanceRatio = osmomath.Pow(balanceRatio, weightRatio)
	}

	amountOut := balanceOut.ToLegacyDec().MulTruncate(osmomath.OneDec().Sub(balanceRatio)).TruncateInt()

	return sdk.NewCoin(r.TokenOutDenom, amountOut), nil
}

// CalcSpotPrice implements domain.RoutablePool.
// The spot price is the weight-adjusted balance ratio:
//
//	(balanceQuote / weightQuote) / (balanceBase / weightBase)
func (r *routableWeightedPoolImpl) CalcSpotPrice(baseDenom string, quoteDenom string) (osmomath.BigDec, error) {
	balanceBase, balanceQuote, err := r.balancesInOut(baseDenom, quoteDenom)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	return r.spotPrice(baseDenom, quoteDenom, balanceBase.ToLegacyDec(), balanceQuote.ToLegacyDec())
}

// CalcSpotPriceAfterSwap implements domain.RoutablePool.
// Recomputes the spot price from the balances the pool would hold after the
// given swap. The snapshot itself is never mutated.
func (r *routableWeightedPoolImpl) CalcSpotPriceAfterSwap(tokenIn sdk.Coin, quoteDenom string) (osmomath.BigDec, error) {
	tokenOut, err := r.CalculateTokenOutByTokenIn(tokenIn)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	balanceIn, balanceOut, err := r.balancesInOut(tokenIn.Denom, quoteDenom)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	newBalanceIn := balanceIn.Add(tokenIn.Amount).ToLegacyDec()
	newBalanceOut := balanceOut.Sub(tokenOut.Amount).ToLegacyDec()
	if !newBalanceOut.IsPositive() {
		return osmomath.BigDec{}, domain.InsufficientLiquidityError{
			PoolID:        r.GetId(),
			Denom:         quoteDenom,
			BalanceAmount: balanceOut.String(),
			Amount:        tokenOut.Amount.String(),
		}
	}

	return r.spotPrice(tokenIn.Denom, quoteDenom, newBalanceIn, newBalanceOut)
}

func (r *routableWeightedPoolImpl) spotPrice(baseDenom, quoteDenom string, balanceBase, balanceQuote osmomath.Dec) (osmomath.BigDec, error) {
	weights := r.ChainPool.GetWeights()
	if len(weights) > 0 {
		weightBase, okBase := weights[baseDenom]
		weightQuote, okQuote := weights[quoteDenom]
		if okBase && okQuote {
			balanceBase = balanceBase.Quo(weightBase.ToLegacyDec())
			balanceQuote = balanceQuote.Quo(weightQuote.ToLegacyDec())
		}
	}

	return osmomath.BigDecFromDec(balanceQuote).Quo(osmomath.BigDecFromDec(balanceBase)), nil
}

// balancesInOut returns the pool balances of the given denoms, erroring if
// either denom is not held by the pool.
func (r *routableWeightedPoolImpl) balancesInOut(denomIn, denomOut string) (osmomath.Int, osmomath.Int, error) {
	balances := r.ChainPool.GetBalances()

	balanceIn := balances.AmountOf(denomIn)
	if balanceIn.IsZero() {
		return osmomath.Int{}, osmomath.Int{}, domain.DenomNotFoundInPoolError{PoolID: r.GetId(), Denom: denomIn}
	}

	balanceOut := balances.AmountOf(denomOut)
	if balanceOut.IsZero() {
		return osmomath.Int{}, osmomath.Int{}, domain.DenomNotFoundInPoolError{PoolID: r.GetId(), Denom: denomOut}
	}

	return balanceIn, balanceOut, nil
}

// weightRatio returns weightIn / weightOut, defaulting to one when the pool
// has no explicit weights.
func (r *routableWeightedPoolImpl) weightRatio(denomIn, denomOut string) osmomath.Dec {
	weights := r.ChainPool.GetWeights()
	if len(weights) == 0 {
		return osmomath.OneDec()
	}

	weightIn, okIn := weights[denomIn]
	weightOut, okOut := weights[denomOut]
	if !okIn || !okOut {
		return osmomath.OneDec()
	}

	return weightIn.ToLegacyDec().Quo(weightOut.ToLegacyDec())
}

// String implements domain.RoutablePool.
func (r *routableWeightedPoolImpl) String() string {
	return fmt.Sprintf("pool (%d), pool type (%s), pool denoms (%v), token out (%s)", r.GetId(), r.GetType(), r.GetPoolDenoms(), r.TokenOutDenom)
}
