package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/labstack/echo/v4"

	"github.com/thesneakydev/swaprouter/domain"
)

// GetQuoteRequest represents a swap quote request for the /router/quote endpoint.
type GetQuoteRequest struct {
	TokenIn       *sdk.Coin
	TokenOutDenom string
	SingleRoute   bool
	HumanDenoms   bool
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetQuoteRequest.
func (r *GetQuoteRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var err error

	r.SingleRoute, err = domain.ParseBooleanQueryParam(c, "singleRoute")
	if err != nil {
		return err
	}

	r.HumanDenoms, err = domain.ParseBooleanQueryParam(c, "humanDenoms")
	if err != nil {
		return err
	}

	if tokenIn := c.QueryParam("tokenIn"); tokenIn != "" {
		tokenInCoin, err := sdk.ParseCoinNormalized(tokenIn)
		if err != nil {
			return ErrTokenInNotValid
		}
		r.TokenIn = &tokenInCoin
	}

	r.TokenOutDenom = c.QueryParam("tokenOutDenom")

	return nil
}

// Validate validates the GetQuoteRequest.
func (r *GetQuoteRequest) Validate() error {
	if r.TokenIn == nil {
		return ErrTokenInNotSpecified
	}

	if r.TokenOutDenom == "" {
		return ErrTokenOutDenomNotSpecified
	}

	return nil
}
