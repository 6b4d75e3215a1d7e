package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/mvc"
)

// PoolsHandler represent the httphandler for pools
type PoolsHandler struct {
	PUsecase mvc.PoolsUsecase
}

const resourcePrefix = "/pools"

func formatPoolsResource(resource string) string {
	return resourcePrefix + resource
}

// NewPoolsHandler will initialize the pools/ resources endpoint
func NewPoolsHandler(e *echo.Echo, us mvc.PoolsUsecase) {
	handler := &PoolsHandler{
		PUsecase: us,
	}

	e.GET(formatPoolsResource(""), handler.GetPools)
	e.GET(formatPoolsResource("/:id"), handler.GetPool)
	e.POST(formatPoolsResource("/snapshot"), handler.StorePoolsSnapshot)
}

// GetPools returns a list of pools if the IDs parameter is not given.
// Otherwise, it batch fetches specific pools by the given pool IDs parameter.
func (a *PoolsHandler) GetPools(c echo.Context) error {
	// Get pool ID parameters as strings.
	poolIDsStr := c.QueryParam("IDs")

	// if IDs are not given, get all pools
	if len(poolIDsStr) == 0 {
		return c.JSON(http.StatusOK, a.PUsecase.GetAllPools())
	}

	poolIDs, err := domain.ParseNumbers(poolIDsStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	pools := make([]domain.PoolI, 0, len(poolIDs))
	for _, poolID := range poolIDs {
		pool, err := a.PUsecase.GetPool(poolID)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}

		pools = append(pools, pool)
	}

	return c.JSON(http.StatusOK, pools)
}

// GetPool returns the pool with the given ID.
func (a *PoolsHandler) GetPool(c echo.Context) error {
	idStr := c.Param("id")
	poolID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	pool, err := a.PUsecase.GetPool(poolID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, pool)
}

// StorePoolsSnapshot atomically replaces the pool snapshot with the pools
// given in the request body. The entire snapshot is rejected if any pool
// fails validation.
func (a *PoolsHandler) StorePoolsSnapshot(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: "error reading request body"})
	}

	var poolWrappers []domain.PoolWrapper
	if err := json.Unmarshal(body, &poolWrappers); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	newPools := make([]domain.PoolI, 0, len(poolWrappers))
	for i := range poolWrappers {
		newPools = append(newPools, &poolWrappers[i])
	}

	if err := a.PUsecase.StorePools(newPools); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]int{"num_pools": len(newPools)})
}
