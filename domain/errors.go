package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osmosis-labs/osmosis/osmomath"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrInternalServerError):
		return http.StatusInternalServerError
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadParamInput):
		return http.StatusBadRequest
	default:
		var poolNotFoundError PoolNotFoundError
		if errors.As(err, &poolNotFoundError) {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// InvalidPoolError is an error type for a pool that holds fewer than two
// distinct denoms. Propagated as a fault: such a pool indicates a broken
// data feed and callers must not attempt to quote over it.
type InvalidPoolError struct {
	PoolID     uint64
	DenomCount int
}

func (e InvalidPoolError) Error() string {
	return fmt.Sprintf("pool (%d) has (%d) denoms, must have at least 2", e.PoolID, e.DenomCount)
}

type InvalidPoolSpreadFactorError struct {
	PoolID       uint64
	SpreadFactor osmomath.Dec
}

func (e InvalidPoolSpreadFactorError) Error() string {
	return fmt.Sprintf("pool (%d) has invalid spread factor (%s), must be in [0, 1)", e.PoolID, e.SpreadFactor)
}

type InvalidPoolBalanceError struct {
	PoolID uint64
	Denom  string
}

func (e InvalidPoolBalanceError) Error() string {
	return fmt.Sprintf("pool (%d) has non-positive balance for denom (%s)", e.PoolID, e.Denom)
}

type PoolNotFoundError struct {
	PoolID uint64
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool with ID (%d) is not found", e.PoolID)
}

// DenomNotFoundInPoolError is returned when quoting over a pool that does not
// hold the requested denom.
type DenomNotFoundInPoolError struct {
	PoolID uint64
	Denom  string
}

func (e DenomNotFoundInPoolError) Error() string {
	return fmt.Sprintf("denom (%s) is not found in pool (%d)", e.Denom, e.PoolID)
}

// InsufficientLiquidityError is returned when the requested output would
// exceed the pool's available balance of the token out denom.
type InsufficientLiquidityError struct {
	PoolID        uint64
	Denom         string
	BalanceAmount string
	Amount        string
}

func (e InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("insufficient liquidity of token (%s) in pool (%d), balance (%s), amount (%s)", e.Denom, e.PoolID, e.BalanceAmount, e.Amount)
}

type SameDenomError struct {
	DenomA string
	DenomB string
}

func (e SameDenomError) Error() string {
	return fmt.Sprintf("two input denoms are equal (%s), must not be the same", e.DenomA)
}
