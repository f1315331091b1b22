package mocks

import (
	"context"

	"cosmossdk.io/math"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.AmountEstimator = &AmountEstimatorMock{}

// AmountEstimatorMock is a mock implementation of the domain.AmountEstimator
// interface.
type AmountEstimatorMock struct {
	EstimateFunc func(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error)
}

func (m *AmountEstimatorMock) Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
	if m.EstimateFunc != nil {
		return m.EstimateFunc(ctx, amountIn, targetAssetId, opts)
	}
	panic("unimplemented")
}
