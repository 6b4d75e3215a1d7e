package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/mvc"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/router/types"
)

// RouterHandler represent the httphandler for the router
type RouterHandler struct {
	RUsecase mvc.RouterUsecase
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const routerResource = "/router"

func formatRouterResource(resource string) string {
	return routerResource + resource
}

// NewRouterHandler will initialize the router/ resources endpoint
func NewRouterHandler(e *echo.Echo, us mvc.RouterUsecase, tu mvc.TokensUsecase, logger log.Logger) {
	handler := &RouterHandler{
		RUsecase: us,
		TUsecase: tu,
		logger:   logger,
	}
	e.GET(formatRouterResource("/quote"), handler.GetOptimalQuote)
	e.GET(formatRouterResource("/routes"), handler.GetCandidateRoutes)
	e.GET(formatRouterResource("/spot-price-pool/:id"), handler.GetSpotPriceForPool)
}

// GetOptimalQuote returns the best quote it can compute for the given tokenIn
// and tokenOutDenom.
// If the `singleRoute` parameter is set to true, it gives the best single
// quote while excluding splits.
// If the `humanDenoms` parameter is set to true, the given denoms are
// interpreted as human readable symbols and translated to chain denoms.
func (a *RouterHandler) GetOptimalQuote(c echo.Context) (err error) {
	ctx := c.Request().Context()

	var req types.GetQuoteRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	tokenIn := *req.TokenIn
	tokenOutDenom := req.TokenOutDenom

	// translate denoms from human to chain if needed
	if req.HumanDenoms {
		tokenIn.Denom, tokenOutDenom, err = a.getChainDenoms(tokenIn.Denom, tokenOutDenom)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}

	var quote domain.Quote
	if req.SingleRoute {
		quote, err = a.RUsecase.GetBestSingleRouteQuote(ctx, tokenIn, tokenOutDenom)
	} else {
		quote, err = a.RUsecase.GetOptimalQuote(ctx, tokenIn, tokenOutDenom)
	}
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	scalingFactor := a.TUsecase.GetSpotPriceScalingFactorByDenom(tokenIn.Denom, tokenOutDenom)

	quote.PrepareResult(scalingFactor)

	return c.JSON(http.StatusOK, quote)
}

// GetCandidateRoutes returns all routes that can be used for routing from
// tokenIn to tokenOutDenom.
func (a *RouterHandler) GetCandidateRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetQuoteRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	tokenIn := *req.TokenIn
	tokenOutDenom := req.TokenOutDenom

	if req.HumanDenoms {
		var err error
		tokenIn.Denom, tokenOutDenom, err = a.getChainDenoms(tokenIn.Denom, tokenOutDenom)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}

	routes, err := a.RUsecase.GetCandidateRoutes(ctx, tokenIn, tokenOutDenom)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, routes)
}

// GetSpotPriceForPool returns the spot price for a given poolID, baseAsset
// and quoteAsset.
func (a *RouterHandler) GetSpotPriceForPool(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.Param("id")
	poolID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrPoolIDNotValid.Error()})
	}

	baseAsset := c.QueryParam("baseAsset")
	if len(baseAsset) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrBaseAssetNotSpecified.Error()})
	}
	quoteAsset := c.QueryParam("quoteAsset")
	if len(quoteAsset) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrQuoteAssetNotSpecified.Error()})
	}

	// A spot price of an asset against itself is meaningless.
	if err := domain.ValidateInputDenoms(baseAsset, quoteAsset); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	spotPrice, err := a.RUsecase.GetSpotPriceForPool(ctx, poolID, baseAsset, quoteAsset)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	scalingFactor := a.TUsecase.GetSpotPriceScalingFactorByDenom(baseAsset, quoteAsset)

	return c.JSON(http.StatusOK, spotPrice.Dec().Mul(scalingFactor))
}

// getChainDenoms converts the given human readable symbols to chain denoms.
func (a *RouterHandler) getChainDenoms(tokenInSymbol, tokenOutSymbol string) (string, string, error) {
	tokenInDenom, err := a.TUsecase.GetChainDenom(tokenInSymbol)
	if err != nil {
		return "", "", err
	}

	tokenOutDenom, err := a.TUsecase.GetChainDenom(tokenOutSymbol)
	if err != nil {
		return "", "", err
	}

	return tokenInDenom, tokenOutDenom, nil
}
