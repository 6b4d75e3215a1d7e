package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/mvc"
)

type tokensUseCase struct {
	// The token registry is read-only after construction, so no mutex is
	// needed on any of the maps.
	tokenMetadataByChainDenom map[string]domain.Token

	symbolToChainDenomMap map[string]string

	precisionScalingFactorMap map[int]osmomath.Dec
}

var _ mvc.TokensUsecase = &tokensUseCase{}

var tenDec = osmomath.NewDec(10)

// NewTokensUsecase will create a new tokens use case object from the given
// token metadata keyed by chain denom.
func NewTokensUsecase(tokenMetadataByChainDenom map[string]domain.Token) mvc.TokensUsecase {
	// Create symbol to chain denom map
	symbolToChainDenomMap := make(map[string]string, len(tokenMetadataByChainDenom))
	uniquePrecisionMap := make(map[int]struct{}, len(tokenMetadataByChainDenom))

	for chainDenom, tokenMetadata := range tokenMetadataByChainDenom {
		lowerCaseSymbol := strings.ToLower(tokenMetadata.Symbol)

		symbolToChainDenomMap[lowerCaseSymbol] = chainDenom

		uniquePrecisionMap[tokenMetadata.Precision] = struct{}{}
	}

	// Precompute precision scaling factors
	precisionScalingFactors := make(map[int]osmomath.Dec, len(uniquePrecisionMap))
	for precision := range uniquePrecisionMap {
		precisionScalingFactors[precision] = tenDec.Power(uint64(precision))
	}

	return &tokensUseCase{
		tokenMetadataByChainDenom: tokenMetadataByChainDenom,
		symbolToChainDenomMap:     symbolToChainDenomMap,
		precisionScalingFactorMap: precisionScalingFactors,
	}
}

// GetMetadataByChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) GetMetadataByChainDenom(denom string) (domain.Token, error) {
	token, ok := t.tokenMetadataByChainDenom[denom]
	if !ok {
		return domain.Token{}, fmt.Errorf("metadata for denom (%s) is not found", denom)
	}

	return token, nil
}

// GetFullTokenMetadata implements mvc.TokensUsecase.
func (t *tokensUseCase) GetFullTokenMetadata() map[string]domain.Token {
	// Do a copy of the cached metadata
	result := make(map[string]domain.Token, len(t.tokenMetadataByChainDenom))
	for denom, tokenMetadata := range t.tokenMetadataByChainDenom {
		result[denom] = tokenMetadata
	}

	return result
}

// GetChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) GetChainDenom(symbol string) (string, error) {
	symbolLowerCase := strings.ToLower(symbol)

	chainDenom, ok := t.symbolToChainDenomMap[symbolLowerCase]
	if !ok {
		return "", fmt.Errorf("chain denom for symbol (%s) is not found", symbolLowerCase)
	}

	return chainDenom, nil
}

// GetSpotPriceScalingFactorByDenom implements mvc.TokensUsecase.
// Returns 10^(basePrecision - quotePrecision). Falls back to a factor of one
// when either denom is missing from the registry so that prices for
// unregistered tokens are still served, unscaled.
func (t *tokensUseCase) GetSpotPriceScalingFactorByDenom(baseDenom, quoteDenom string) osmomath.Dec {
	baseScalingFactor, err := t.getChainScalingFactorByDenom(baseDenom)
	if err != nil {
		return osmomath.OneDec()
	}

	quoteScalingFactor, err := t.getChainScalingFactorByDenom(quoteDenom)
	if err != nil || quoteScalingFactor.IsZero() {
		return osmomath.OneDec()
	}

	return baseScalingFactor.Quo(quoteScalingFactor)
}

func (t *tokensUseCase) getChainScalingFactorByDenom(denom string) (osmomath.Dec, error) {
	denomMetadata, err := t.GetMetadataByChainDenom(denom)
	if err != nil {
		return osmomath.Dec{}, err
	}

	scalingFactor, ok := t.precisionScalingFactorMap[denomMetadata.Precision]
	if !ok {
		return osmomath.Dec{}, fmt.Errorf("scaling factor for precision (%d) and denom (%s) not found", denomMetadata.Precision, denom)
	}

	return scalingFactor, nil
}

// GetTokensFromFile parses the asset registry file at the given path.
// The file holds a JSON array of tokens. Returns the token metadata keyed by
// chain denom.
func GetTokensFromFile(assetsFilePath string) (map[string]domain.Token, error) {
	assetsFileContent, err := os.ReadFile(assetsFilePath)
	if err != nil {
		return nil, err
	}

	var tokens []domain.Token
	if err := json.Unmarshal(assetsFileContent, &tokens); err != nil {
		return nil, fmt.Errorf("error parsing assets file (%s): %w", assetsFilePath, err)
	}

	tokensByChainDenom := make(map[string]domain.Token, len(tokens))
	for _, token := range tokens {
		tokensByChainDenom[token.Denom] = token
	}

	return tokensByChainDenom, nil
}
