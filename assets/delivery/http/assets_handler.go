package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
	"github.com/dolomite-exchange/zap-sidecar/log"
)

// AssetsHandler represents the http handler for the asset registry.
type AssetsHandler struct {
	AUsecase mvc.AssetsUsecase
	logger   log.Logger
}

const assetsResource = "/assets"

func formatAssetsResource(resource string) string {
	return assetsResource + resource
}

// NewAssetsHandler will initialize the assets/ resources endpoint.
func NewAssetsHandler(e *echo.Echo, us mvc.AssetsUsecase, logger log.Logger) {
	handler := &AssetsHandler{
		AUsecase: us,
		logger:   logger,
	}
	e.GET(formatAssetsResource("/all"), handler.GetAssets)
	e.GET(formatAssetsResource("/:id"), handler.GetAssetById)
}

// @Summary All Assets
// @Description returns the full asset registry snapshot with conversion metadata.
// @ID get-all-assets
// @Produce json
// @Success 200 {object} map[uint64]domain.Asset "Assets by id"
// @Router /assets/all [get]
func (a *AssetsHandler) GetAssets(c echo.Context) error {
	ctx := c.Request().Context()

	assets, err := a.AUsecase.GetAssets(ctx, 0)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, assets)
}

// @Summary Asset by Id
// @Description returns one asset by its market id.
// @ID get-asset-by-id
// @Produce json
// @Success 200 {object} domain.Asset "The asset"
// @Router /assets/{id} [get]
func (a *AssetsHandler) GetAssetById(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: domain.ErrBadParamInput.Error()})
	}

	asset, err := a.AUsecase.ResolveAsset(ctx, domain.AssetReference{Id: id}, 0)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, asset)
}
