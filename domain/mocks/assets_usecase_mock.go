package mocks

import (
	"context"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
)

var _ mvc.AssetsUsecase = &AssetsUsecaseMock{}

// AssetsUsecaseMock is a mock implementation of the mvc.AssetsUsecase
// interface.
type AssetsUsecaseMock struct {
	GetAssetsFunc            func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error)
	ResolveAssetFunc         func(ctx context.Context, ref domain.AssetReference, blockTag int64) (domain.Asset, error)
	GetEstimatorBindingsFunc func(ctx context.Context, asset domain.Asset) (domain.EstimatorBindings, error)
}

func (m *AssetsUsecaseMock) GetAssets(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
	if m.GetAssetsFunc != nil {
		return m.GetAssetsFunc(ctx, blockTag)
	}
	panic("unimplemented")
}

func (m *AssetsUsecaseMock) ResolveAsset(ctx context.Context, ref domain.AssetReference, blockTag int64) (domain.Asset, error) {
	if m.ResolveAssetFunc != nil {
		return m.ResolveAssetFunc(ctx, ref, blockTag)
	}
	panic("unimplemented")
}

func (m *AssetsUsecaseMock) GetEstimatorBindings(ctx context.Context, asset domain.Asset) (domain.EstimatorBindings, error) {
	if m.GetEstimatorBindingsFunc != nil {
		return m.GetEstimatorBindingsFunc(ctx, asset)
	}
	panic("unimplemented")
}
