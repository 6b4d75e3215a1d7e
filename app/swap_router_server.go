package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/thesneakydev/swaprouter/domain"
	"github.com/thesneakydev/swaprouter/domain/cache"
	"github.com/thesneakydev/swaprouter/domain/mvc"
	"github.com/thesneakydev/swaprouter/log"
	"github.com/thesneakydev/swaprouter/middleware"

	poolsHttpDelivery "github.com/thesneakydev/swaprouter/pools/delivery/http"
	poolsUseCase "github.com/thesneakydev/swaprouter/pools/usecase"
	routerHttpDelivery "github.com/thesneakydev/swaprouter/router/delivery/http"
	routerUseCase "github.com/thesneakydev/swaprouter/router/usecase"
	systemhttpdelivery "github.com/thesneakydev/swaprouter/system/delivery/http"
	tokensUseCase "github.com/thesneakydev/swaprouter/tokens/usecase"
)

// SwapRouterServer defines an interface for the swap router query server.
// It serves quotes and routing data over the pool snapshot it holds.
type SwapRouterServer interface {
	GetPoolsUseCase() mvc.PoolsUsecase
	GetRouterUseCase() mvc.RouterUsecase
	GetTokensUseCase() mvc.TokensUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type swapRouterServer struct {
	poolsUseCase  mvc.PoolsUsecase
	routerUseCase mvc.RouterUsecase
	tokensUseCase mvc.TokensUsecase
	e             *echo.Echo
	serverAddress string
	logger        log.Logger
}

// GetPoolsUseCase implements SwapRouterServer.
func (s *swapRouterServer) GetPoolsUseCase() mvc.PoolsUsecase {
	return s.poolsUseCase
}

// GetRouterUseCase implements SwapRouterServer.
func (s *swapRouterServer) GetRouterUseCase() mvc.RouterUsecase {
	return s.routerUseCase
}

// GetTokensUseCase implements SwapRouterServer.
func (s *swapRouterServer) GetTokensUseCase() mvc.TokensUsecase {
	return s.tokensUseCase
}

// GetLogger implements SwapRouterServer.
func (s *swapRouterServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements SwapRouterServer.
func (s *swapRouterServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Start implements SwapRouterServer.
func (s *swapRouterServer) Start(context.Context) error {
	s.logger.Info("Starting swap router server", zap.String("address", s.serverAddress))
	return s.e.Start(s.serverAddress)
}

// NewSwapRouterServer creates a new swap router server.
func NewSwapRouterServer(config domain.Config, logger log.Logger) (SwapRouterServer, error) {
	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	if config.OTEL != nil && config.OTEL.EnableTracing {
		e.Use(middleware.TraceWithParamsMiddleware("swaprouter"))
	}

	// Initialize pools usecase and seed it from the snapshot file if present.
	poolsUsecase := poolsUseCase.NewPoolsUsecase(logger)
	if config.PoolsFile != "" {
		pools, err := poolsUseCase.ReadPoolsFile(config.PoolsFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			logger.Warn("pools file not found, starting with an empty snapshot", zap.String("pools_file", config.PoolsFile))
		} else if err := poolsUsecase.StorePools(pools); err != nil {
			return nil, err
		}
	}

	// Initialize router usecase with the ranked route cache.
	rankedRouteCache := cache.New(config.Router.RouteCacheSize, time.Duration(config.Router.RouteCacheExpirySeconds)*time.Second)
	routerUsecase := routerUseCase.NewRouterUsecase(poolsUsecase, *config.Router, logger, rankedRouteCache)

	// Compute token metadata from the asset registry file.
	tokenMetadataByChainDenom := map[string]domain.Token{}
	if config.AssetsFile != "" {
		var err error
		tokenMetadataByChainDenom, err = tokensUseCase.GetTokensFromFile(config.AssetsFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			logger.Warn("assets file not found, starting with an empty token registry", zap.String("assets_file", config.AssetsFile))
			tokenMetadataByChainDenom = map[string]domain.Token{}
		}
	}

	tokensUsecase := tokensUseCase.NewTokensUsecase(tokenMetadataByChainDenom)

	// HTTP handlers
	poolsHttpDelivery.NewPoolsHandler(e, poolsUsecase)
	systemhttpdelivery.NewSystemHandler(e, config, logger, poolsUsecase)
	routerHttpDelivery.NewRouterHandler(e, routerUsecase, tokensUsecase, logger)

	return &swapRouterServer{
		poolsUseCase:  poolsUsecase,
		routerUseCase: routerUsecase,
		tokensUseCase: tokensUsecase,
		logger:        logger,
		e:             e,
		serverAddress: config.ServerAddress,
	}, nil
}
