package estimators

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.EstimatorFactory = &Factory{}

// Factory derives amount estimator bindings from asset conversion metadata.
// The concrete estimator is selected per asset category, with async
// descriptors routed to the off-chain maturity estimator.
type Factory struct {
	client               *http.Client
	maturityEstimatorURL string
}

const defaultEstimateTimeout = 10 * time.Second

// NewFactory creates a new estimator factory.
func NewFactory(sourcesConfig *domain.SourcesConfig) *Factory {
	return &Factory{
		client: &http.Client{
			Timeout: defaultEstimateTimeout,
		},
		maturityEstimatorURL: sourcesConfig.MaturityEstimatorURL,
	}
}

// BindingsFor implements domain.EstimatorFactory.
func (f *Factory) BindingsFor(asset domain.Asset) (domain.EstimatorBindings, error) {
	if err := asset.Validate(); err != nil {
		return domain.EstimatorBindings{}, err
	}

	switch asset.Category {
	case domain.AssetCategoryIsolationMode:
		return domain.EstimatorBindings{
			Unwrap: f.syncOrAsync(asset, asset.Conversion.Unwrap, true),
			Wrap:   f.syncOrAsync(asset, asset.Conversion.Wrap, false),
		}, nil
	case domain.AssetCategoryLiquidityToken:
		return domain.EstimatorBindings{
			Unwrap: NewPoolShareUnwrapEstimator(asset),
			Wrap:   NewPoolShareWrapEstimator(asset),
		}, nil
	default:
		return domain.EstimatorBindings{}, fmt.Errorf("asset (%s) with id (%d) has category (%s) without estimator bindings", asset.Symbol, asset.Id, asset.Category)
	}
}

func (f *Factory) syncOrAsync(asset domain.Asset, descriptor domain.ConversionDescriptor, isUnwrap bool) domain.AmountEstimator {
	if descriptor.IsAsync {
		return NewMaturityEstimator(f.client, f.maturityEstimatorURL, asset.Id, isUnwrap)
	}
	return NewFixedRateEstimator()
}
