package main

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	assetsclient "github.com/dolomite-exchange/zap-sidecar/assets/client"
	assetshttpdelivery "github.com/dolomite-exchange/zap-sidecar/assets/delivery/http"
	assetsusecase "github.com/dolomite-exchange/zap-sidecar/assets/usecase"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
	"github.com/dolomite-exchange/zap-sidecar/log"
	"github.com/dolomite-exchange/zap-sidecar/middleware"

	routerhttpdelivery "github.com/dolomite-exchange/zap-sidecar/router/delivery/http"
	routerusecase "github.com/dolomite-exchange/zap-sidecar/router/usecase"
	"github.com/dolomite-exchange/zap-sidecar/router/usecase/estimators"
	"github.com/dolomite-exchange/zap-sidecar/router/usecase/sources"

	systemhttpdelivery "github.com/dolomite-exchange/zap-sidecar/system/delivery/http"
)

// ZapSidecarServer defines an interface for the zap sidecar server.
// It encapsulates the asset registry ingestion and exposes endpoints for
// building zap execution routes.
type ZapSidecarServer interface {
	GetAssetsUseCase() mvc.AssetsUsecase
	GetZapUseCase() mvc.ZapUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type zapSidecarServer struct {
	assetsUseCase mvc.AssetsUsecase
	zapUseCase    mvc.ZapUsecase
	e             *echo.Echo
	address       string
	logger        log.Logger
}

// GetAssetsUseCase implements ZapSidecarServer.
func (s *zapSidecarServer) GetAssetsUseCase() mvc.AssetsUsecase {
	return s.assetsUseCase
}

// GetZapUseCase implements ZapSidecarServer.
func (s *zapSidecarServer) GetZapUseCase() mvc.ZapUsecase {
	return s.zapUseCase
}

// GetLogger implements ZapSidecarServer.
func (s *zapSidecarServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements ZapSidecarServer.
func (s *zapSidecarServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Start implements ZapSidecarServer.
func (s *zapSidecarServer) Start(context.Context) error {
	s.logger.Info("Starting zap sidecar server", zap.String("address", s.address))
	err := s.e.Start(s.address)
	if err != nil {
		return err
	}

	return nil
}

// NewZapSidecarServer creates a new zap sidecar server.
func NewZapSidecarServer(config domain.Config, logger log.Logger) (ZapSidecarServer, error) {
	if config.Router == nil {
		return nil, fmt.Errorf("router config must be set")
	}
	if config.Sources == nil {
		return nil, fmt.Errorf("sources config must be set")
	}

	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware("zap-sidecar"))

	// Initialize the asset registry client and usecase.
	registryClient := assetsclient.NewSubgraphClient(config.SubgraphURL, config.Router.BlockSnapshotCacheSize, logger)
	estimatorFactory := estimators.NewFactory(config.Sources)

	assetsUseCase := assetsusecase.NewAssetsUsecase(registryClient, estimatorFactory, config.Router, logger)
	if config.Router.AssetsRefreshIntervalSeconds > 0 {
		refreshInterval := time.Duration(config.Router.AssetsRefreshIntervalSeconds) * time.Second
		assetsUseCase = assetsusecase.WithBackgroundRefresh(assetsUseCase, refreshInterval)
	}

	defaultSlippageTolerance, err := math.LegacyNewDecFromStr(config.Router.DefaultSlippageTolerance)
	if err != nil {
		return nil, fmt.Errorf("invalid default slippage tolerance: %w", err)
	}
	if err := domain.ValidateSlippageTolerance(defaultSlippageTolerance); err != nil {
		return nil, err
	}

	// Initialize the external quote sources. A source with no configured
	// endpoint is simply not registered.
	var quoteSources []domain.QuoteSource
	if config.Sources.OdosURL != "" {
		quoteSources = append(quoteSources, sources.NewOdosSource(config.Sources.OdosURL, config.ChainId))
	}
	if config.Sources.ParaswapURL != "" {
		quoteSources = append(quoteSources, sources.NewParaswapSource(config.Sources.ParaswapURL, config.ChainId))
	}

	zapUseCase := routerusecase.NewZapUsecase(assetsUseCase, quoteSources, config.ChainId, defaultSlippageTolerance, logger)

	// HTTP handlers
	routerhttpdelivery.NewZapHandler(e, zapUseCase, logger)
	assetshttpdelivery.NewAssetsHandler(e, assetsUseCase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, assetsUseCase)

	return &zapSidecarServer{
		assetsUseCase: assetsUseCase,
		zapUseCase:    zapUseCase,
		logger:        logger,
		e:             e,
		address:       config.ServerAddress,
	}, nil
}
