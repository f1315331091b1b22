package mocks

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
)

var _ mvc.ZapUsecase = &ZapUsecaseMock{}

// ZapUsecaseMock is a mock implementation of the mvc.ZapUsecase interface.
type ZapUsecaseMock struct {
	BuildZapRoutesFunc func(ctx context.Context, inputAsset domain.AssetReference, amountIn math.Int, outputAsset domain.AssetReference, amountOutMin math.Int, executorAddress common.Address, config domain.ZapConfig) ([]domain.ZapOutputParam, error)
}

func (m *ZapUsecaseMock) BuildZapRoutes(ctx context.Context, inputAsset domain.AssetReference, amountIn math.Int, outputAsset domain.AssetReference, amountOutMin math.Int, executorAddress common.Address, config domain.ZapConfig) ([]domain.ZapOutputParam, error) {
	if m.BuildZapRoutesFunc != nil {
		return m.BuildZapRoutesFunc(ctx, inputAsset, amountIn, outputAsset, amountOutMin, executorAddress, config)
	}
	panic("unimplemented")
}
