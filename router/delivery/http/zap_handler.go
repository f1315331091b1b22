package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
	"github.com/dolomite-exchange/zap-sidecar/log"
	"github.com/dolomite-exchange/zap-sidecar/router/types"
	"github.com/dolomite-exchange/zap-sidecar/validator"
)

// ZapHandler represents the http handler for the zap router.
type ZapHandler struct {
	ZUsecase mvc.ZapUsecase
	logger   log.Logger
}

const zapResource = "/zap"

func formatZapResource(resource string) string {
	return zapResource + resource
}

// NewZapHandler will initialize the zap/ resources endpoint.
func NewZapHandler(e *echo.Echo, us mvc.ZapUsecase, logger log.Logger) {
	handler := &ZapHandler{
		ZUsecase: us,
		logger:   logger,
	}
	e.GET(formatZapResource("/routes"), handler.GetZapRoutes)
}

// @Summary Zap Routes
// @Description returns the candidate zap execution plans converting amountIn
// of the input asset into the output asset. An empty list means no route was
// found and is distinct from an error.
// @ID get-zap-routes
// @Produce json
// @Param inputMarketId query int true "Input asset (market) id."
// @Param inputSymbol query string false "Input asset symbol, checked against the registry for staleness."
// @Param amountIn query string true "Input amount in the asset's smallest unit."
// @Param outputMarketId query int true "Output asset (market) id."
// @Param outputSymbol query string false "Output asset symbol."
// @Param amountOutMin query string true "Minimum acceptable output, echoed onto each plan."
// @Param txOrigin query string true "Address that will submit the zap."
// @Param slippageTolerance query string false "Slippage fraction in [0, 0.1]."
// @Param blockTag query string false "Block number pinning the registry snapshot, or \"latest\"."
// @Param isLiquidation query bool false "Select liquidation-specific conversion executors."
// @Param disallowAggregator query bool false "Skip the external aggregator fan-out."
// @Param subAccountNumber query int false "Acting sub account."
// @Success 200 {object} []domain.ZapOutputParam "The candidate zap plans"
// @Router /zap/routes [get]
func (a *ZapHandler) GetZapRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.GetZapRoutesRequest
	if err := req.UnmarshalHTTPRequest(c); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	if err := validator.Validate(&req); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	plans, err := a.ZUsecase.BuildZapRoutes(ctx, req.InputAsset, req.AmountIn, req.OutputAsset, req.AmountOutMin, req.TxOrigin, req.Config)
	if err != nil {
		a.logger.Error("failed to build zap routes", zap.String("path", domain.GetURLPathFromContext(ctx)), zap.Error(err))
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(200, plans)
}
