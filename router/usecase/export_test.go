package usecase

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/router/usecase/route"
)

type (
	RouterUseCaseImpl = routerUseCaseImpl

	QuoteImpl = quoteImpl

	CandidatePoolWrapper = candidatePoolWrapper
)

func EstimateAndRankSingleRouteQuote(routes []route.RouteImpl, tokenIn sdk.Coin, logger log.Logger) (domain.Quote, []RouteWithOutAmount, error) {
	return estimateAndRankSingleRouteQuote(routes, tokenIn, logger)
}

func GetSplitQuote(routes []route.RouteImpl, tokenIn sdk.Coin, maxSplitIterations int) (domain.Quote, error) {
	return getSplitQuote(routes, tokenIn, maxSplitIterations)
}

func FilterDuplicatePoolIDRoutes(rankedRoutes []RouteWithOutAmount) []RouteWithOutAmount {
	return filterDuplicatePoolIDRoutes(rankedRoutes)
}

func ConvertRankedToCandidateRoutes(rankedRoutes []RouteWithOutAmount) domain.CandidateRoutes {
	return convertRankedToCandidateRoutes(rankedRoutes)
}

func FormatRouteCacheKey(tokenInDenom string, tokenOutDenom string) string {
	return formatRouteCacheKey(tokenInDenom, tokenOutDenom)
}

func FormatRankedRouteCacheKey(tokenInDenom string, tokenOutDenom string, tokenInOrderOfMagnitude int) string {
	return formatRankedRouteCacheKey(tokenInDenom, tokenOutDenom, tokenInOrderOfMagnitude)
}

func ValidateAndFilterRoutes(candidateRoutes [][]candidatePoolWrapper, tokenInDenom string, logger log.Logger) (domain.CandidateRoutes, error) {
	return validateAndFilterRoutes(candidateRoutes, tokenInDenom, logger)
}
