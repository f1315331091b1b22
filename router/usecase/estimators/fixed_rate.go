package estimators

import (
	"context"

	"cosmossdk.io/math"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.AmountEstimator = &fixedRateEstimator{}

// fixedRateEstimator prices 1:1 custody conversions. Isolation-mode wrappers
// mint and burn at par, so the output equals the input and the executor
// needs no payload.
type fixedRateEstimator struct{}

// NewFixedRateEstimator creates an estimator for fixed 1:1 conversions.
func NewFixedRateEstimator() domain.AmountEstimator {
	return &fixedRateEstimator{}
}

// Estimate implements domain.AmountEstimator.
func (e *fixedRateEstimator) Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
	return domain.EstimateOutput{
		AmountOut: amountIn,
		TradeData: nil,
	}, nil
}
