package pools

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
)

var (
	_ domain.RoutablePool       = &routableResultPoolImpl{}
	_ domain.RoutableResultPool = &routableResultPoolImpl{}
)

// routableResultPoolImpl is a generalized implementation that is returned to
// the client in quotes. It contains the subset of pool data a client needs to
// render and submit the swap.
type routableResultPoolImpl struct {
	ID            uint64          `json:"id"`
	Type          domain.PoolType `json:"type"`
	SpreadFactor  osmomath.Dec    `json:"spread_factor"`
	TokenOutDenom string          `json:"token_out_denom"`
}

// NewRoutableResultPool returns the new routable result pool with the given parameters.
func NewRoutableResultPool(ID uint64, poolType domain.PoolType, spreadFactor osmomath.Dec, tokenOutDenom string) domain.RoutablePool {
	return &routableResultPoolImpl{
		ID:            ID,
		Type:          poolType,
		SpreadFactor:  spreadFactor,
		TokenOutDenom: tokenOutDenom,
	}
}

// GetId implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetId() uint64 {
	return r.ID
}

// GetType implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetType() domain.PoolType {
	return r.Type
}

// GetPoolDenoms implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetPoolDenoms() []string {
	return nil
}

// GetBalances implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetBalances() sdk.Coins {
	return sdk.Coins{}
}

// GetTokenOutDenom implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetTokenOutDenom() string {
	return r.TokenOutDenom
}

// SetTokenOutDenom implements domain.RoutablePool.
func (r *routableResultPoolImpl) SetTokenOutDenom(tokenOutDenom string) {
	r.TokenOutDenom = tokenOutDenom
}

// GetSpreadFactor implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetSpreadFactor() osmomath.Dec {
	return r.SpreadFactor
}

// GetLiquidityCap implements domain.RoutablePool.
func (r *routableResultPoolImpl) GetLiquidityCap() osmomath.Int {
	return osmomath.ZeroInt()
}

// CalcSpotPrice implements domain.RoutablePool.
func (r *routableResultPoolImpl) CalcSpotPrice(baseDenom string, quoteDenom string) (osmomath.BigDec, error) {
	return osmomath.BigDec{}, fmt.Errorf("result pool (%d) does not support spot price computation", r.ID)
}

// CalcSpotPriceAfterSwap implements domain.RoutablePool.
func (r *routableResultPoolImpl) CalcSpotPriceAfterSwap(tokenIn sdk.Coin, quoteDenom string) (osmomath.BigDec, error) {
	return osmomath.BigDec{}, fmt.Errorf("result pool (%d) does not support spot price computation", r.ID)
}

// CalculateTokenOutByTokenIn implements domain.RoutablePool.
func (r *routableResultPoolImpl) CalculateTokenOutByTokenIn(tokenIn sdk.Coin) (sdk.Coin, error) {
	return sdk.Coin{}, fmt.Errorf("result pool (%d) does not support token out computation", r.ID)
}

// String implements domain.RoutablePool.
func (r *routableResultPoolImpl) String() string {
	return fmt.Sprintf("result pool (%d), pool type (%s), token out (%s)", r.ID, r.Type, r.TokenOutDenom)
}
