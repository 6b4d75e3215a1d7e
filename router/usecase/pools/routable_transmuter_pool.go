package pools

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
)

var _ domain.RoutablePool = &routableTransmuterPoolImpl{}

// routableTransmuterPoolImpl swaps assets one-to-one with no slippage,
// bounded by the pool balance of the token out denom.
type routableTransmuterPoolImpl struct {
	ChainPool     domain.PoolI `json:"pool"`
	TokenOutDenom string       `json:"token_out_denom"`
}

// NewRoutableTransmuterPool returns a new routable transmuter pool with the
// given token out denom.
func NewRoutableTransmuterPool(pool domain.PoolI, tokenOutDenom string) domain.RoutablePool {
	return &routableTransmuterPoolImpl{
		ChainPool:     pool,
		TokenOutDenom: tokenOutDenom,
	}
}

// GetId implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetId() uint64 {
	return r.ChainPool.GetId()
}

// GetType implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetType() domain.PoolType {
	return domain.Transmuter
}

// GetPoolDenoms implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetPoolDenoms() []string {
	return r.ChainPool.GetPoolDenoms()
}

// GetBalances implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetBalances() sdk.Coins {
	return r.ChainPool.GetBalances()
}

// GetTokenOutDenom implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetTokenOutDenom() string {
	return r.TokenOutDenom
}

// SetTokenOutDenom implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) SetTokenOutDenom(tokenOutDenom string) {
	r.TokenOutDenom = tokenOutDenom
}

// GetSpreadFactor implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetSpreadFactor() osmomath.Dec {
	return r.ChainPool.GetSpreadFactor()
}

// GetLiquidityCap implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) GetLiquidityCap() osmomath.Int {
	return r.ChainPool.GetLiquidityCap()
}

// CalculateTokenOutByTokenIn implements domain.RoutablePool.
// Transmuter pools swap one-to-one after the fee. The swap fails with
// InsufficientLiquidityError if the out amount exceeds the pool balance.
func (r *routableTransmuterPoolImpl) CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (sdk.Coin, error) {
	if err := r.hasDenoms(tokenIn.Denom, r.TokenOutDenom); err != nil {
		return sdk.Coin{}, err
	}

	amountOut := tokenIn.Amount.ToLegacyDec().MulTruncate(osmomath.OneDec().Sub(r.GetSpreadFactor())).TruncateInt()

	balanceOut := r.ChainPool.GetBalances().AmountOf(r.TokenOutDenom)
	if amountOut.GT(balanceOut) {
		return sdk.Coin{}, domain.InsufficientLiquidityError{
			PoolID:        r.GetId(),
			Denom:         r.TokenOutDenom,
			BalanceAmount: balanceOut.String(),
			Amount:        amountOut.String(),
		}
	}

	return sdk.NewCoin(r.TokenOutDenom, amountOut), nil
}

// CalcSpotPrice implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) CalcSpotPrice(baseDenom string, quoteDenom string) (osmomath.BigDec, error) {
	if err := r.hasDenoms(baseDenom, quoteDenom); err != nil {
		return osmomath.BigDec{}, err
	}
	return osmomath.OneBigDec(), nil
}

// CalcSpotPriceAfterSwap implements domain.RoutablePool.
// The price is one regardless of trade size for transmuter pools.
func (r *routableTransmuterPoolImpl) CalcSpotPriceAfterSwap(tokenIn sdk.Coin, quoteDenom string) (osmomath.BigDec, error) {
	if _, err := r.CalculateTokenOutByTokenIn(tokenIn); err != nil {
		return osmomath.BigDec{}, err
	}
	return osmomath.OneBigDec(), nil
}

func (r *routableTransmuterPoolImpl) hasDenoms(denoms ...string) error {
	poolDenoms := r.ChainPool.GetPoolDenoms()
	for _, denom := range denoms {
		found := false
		for _, poolDenom := range poolDenoms {
			if poolDenom == denom {
				found = true
				break
			}
		}
		if !found {
			return domain.DenomNotFoundInPoolError{PoolID: r.GetId(), Denom: denom}
		}
	}
	return nil
}

// String implements domain.RoutablePool.
func (r *routableTransmuterPoolImpl) String() string {
	return fmt.Sprintf("pool (%d), pool type (%s), pool denoms (%v), token out (%s)", r.GetId(), r.GetType(), r.GetPoolDenoms(), r.TokenOutDenom)
}
