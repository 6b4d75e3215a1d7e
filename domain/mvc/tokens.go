package mvc

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
)

// TokensUsecase defines an interface for the tokens use case.
type TokensUsecase interface {
	// GetMetadataByChainDenom returns token metadata for a given chain denom.
	GetMetadataByChainDenom(denom string) (domain.Token, error)

	// GetFullTokenMetadata returns token metadata for all chain denoms as a map.
	GetFullTokenMetadata() map[string]domain.Token

	// GetChainDenom returns chain denom by human readable symbol.
	GetChainDenom(symbol string) (string, error)

	// GetSpotPriceScalingFactorByDenom returns the multiplier for converting
	// a spot price quoted in chain units of quoteDenom per baseDenom into
	// display units. Returns one for unknown denoms.
	GetSpotPriceScalingFactorByDenom(baseDenom, quoteDenom string) osmomath.Dec
}
