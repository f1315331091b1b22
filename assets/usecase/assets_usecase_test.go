package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/dolomite-exchange/zap-sidecar/assets/usecase"
	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mocks"
	"github.com/dolomite-exchange/zap-sidecar/log"
)

const (
	usdcAssetId   = uint64(1)
	plvGlpAssetId = uint64(3)
)

var defaultRouterConfig = &domain.RouterConfig{
	AssetsCacheExpirySeconds: 300,
	BlockSnapshotCacheSize:   16,
}

func registryAssets() map[uint64]domain.Asset {
	return map[uint64]domain.Asset{
		usdcAssetId: {
			Id:       usdcAssetId,
			Symbol:   "USDC",
			Category: domain.AssetCategoryPlain,
		},
		plvGlpAssetId: {
			Id:       plvGlpAssetId,
			Symbol:   "dplvGLP",
			Category: domain.AssetCategoryIsolationMode,
			Conversion: &domain.ConversionPair{
				Unwrap: domain.ConversionDescriptor{
					Executor:       common.HexToAddress("0x0000000000000000000000000000000000000f01"),
					TargetAssetIds: []uint64{usdcAssetId},
				},
				Wrap: domain.ConversionDescriptor{
					Executor:       common.HexToAddress("0x0000000000000000000000000000000000000f02"),
					TargetAssetIds: []uint64{usdcAssetId},
				},
			},
		},
	}
}

func identityBindings() domain.EstimatorBindings {
	estimator := &mocks.AmountEstimatorMock{
		EstimateFunc: func(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
			return domain.EstimateOutput{AmountOut: amountIn}, nil
		},
	}
	return domain.EstimatorBindings{Unwrap: estimator, Wrap: estimator}
}

func TestGetAssets_ReadThroughCache(t *testing.T) {
	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return registryAssets(), nil
		},
	}
	estimatorFactory := &mocks.EstimatorFactoryMock{
		BindingsForFunc: func(asset domain.Asset) (domain.EstimatorBindings, error) {
			return identityBindings(), nil
		},
	}

	assetsUsecase := usecase.NewAssetsUsecase(registryClient, estimatorFactory, defaultRouterConfig, &log.NoOpLogger{})

	// First read misses and loads from the registry.
	assets, err := assetsUsecase.GetAssets(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	require.Equal(t, 1, registryClient.CallCount)

	// Subsequent reads within the TTL are served from the cache.
	for i := 0; i < 5; i++ {
		_, err = assetsUsecase.GetAssets(context.Background(), 0)
		require.NoError(t, err)
	}
	require.Equal(t, 1, registryClient.CallCount)

	// Explicit-block reads bypass the latest-snapshot cache.
	_, err = assetsUsecase.GetAssets(context.Background(), 123456)
	require.NoError(t, err)
	require.Equal(t, 2, registryClient.CallCount)
}

func TestGetAssets_DisabledCache(t *testing.T) {
	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return registryAssets(), nil
		},
	}
	estimatorFactory := &mocks.EstimatorFactoryMock{
		BindingsForFunc: func(asset domain.Asset) (domain.EstimatorBindings, error) {
			return identityBindings(), nil
		},
	}

	// A non-positive expiry disables the cache; every read hits the registry.
	assetsUsecase := usecase.NewAssetsUsecase(registryClient, estimatorFactory, &domain.RouterConfig{AssetsCacheExpirySeconds: 0}, &log.NoOpLogger{})

	for i := 0; i < 3; i++ {
		_, err := assetsUsecase.GetAssets(context.Background(), 0)
		require.NoError(t, err)
	}
	require.Equal(t, 3, registryClient.CallCount)
}

func TestGetAssets_RegistryFailure(t *testing.T) {
	registryErr := errors.New("subgraph unavailable")
	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return nil, registryErr
		},
	}

	assetsUsecase := usecase.NewAssetsUsecase(registryClient, &mocks.EstimatorFactoryMock{}, defaultRouterConfig, &log.NoOpLogger{})

	_, err := assetsUsecase.GetAssets(context.Background(), 0)
	require.ErrorIs(t, err, registryErr)
}

func TestGetAssets_InvalidMetadata(t *testing.T) {
	assets := registryAssets()

	// Break the invariant: a wrapped asset without conversion descriptors.
	plvGlp := assets[plvGlpAssetId]
	plvGlp.Conversion = nil
	assets[plvGlpAssetId] = plvGlp

	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return assets, nil
		},
	}

	assetsUsecase := usecase.NewAssetsUsecase(registryClient, &mocks.EstimatorFactoryMock{}, defaultRouterConfig, &log.NoOpLogger{})

	_, err := assetsUsecase.GetAssets(context.Background(), 0)
	require.Error(t, err)

	var conversionErr domain.AssetConversionError
	require.ErrorAs(t, err, &conversionErr)
	require.Equal(t, plvGlpAssetId, conversionErr.AssetId)
}

func TestResolveAsset(t *testing.T) {
	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return registryAssets(), nil
		},
	}
	estimatorFactory := &mocks.EstimatorFactoryMock{
		BindingsForFunc: func(asset domain.Asset) (domain.EstimatorBindings, error) {
			return identityBindings(), nil
		},
	}

	assetsUsecase := usecase.NewAssetsUsecase(registryClient, estimatorFactory, defaultRouterConfig, &log.NoOpLogger{})

	testCases := []struct {
		name      string
		ref       domain.AssetReference
		expectErr bool
	}{
		{
			name: "resolve by id",
			ref:  domain.AssetReference{Id: usdcAssetId},
		},
		{
			name: "resolve by id with matching symbol",
			ref:  domain.AssetReference{Id: usdcAssetId, Symbol: "USDC"},
		},
		{
			name:      "unknown id",
			ref:       domain.AssetReference{Id: 999},
			expectErr: true,
		},
		{
			name:      "stale symbol for a known id",
			ref:       domain.AssetReference{Id: usdcAssetId, Symbol: "WETH"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := assetsUsecase.ResolveAsset(context.Background(), tc.ref, 0)

			if tc.expectErr {
				var notFoundErr domain.AssetNotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				require.Equal(t, tc.ref.Id, notFoundErr.Id)
				require.Equal(t, tc.ref.Symbol, notFoundErr.Symbol)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.ref.Id, asset.Id)
		})
	}
}

func TestGetEstimatorBindings(t *testing.T) {
	factoryCallCount := 0

	registryClient := &mocks.AssetRegistryClientMock{
		ListAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return registryAssets(), nil
		},
	}
	estimatorFactory := &mocks.EstimatorFactoryMock{
		BindingsForFunc: func(asset domain.Asset) (domain.EstimatorBindings, error) {
			factoryCallCount++
			return identityBindings(), nil
		},
	}

	assetsUsecase := usecase.NewAssetsUsecase(registryClient, estimatorFactory, defaultRouterConfig, &log.NoOpLogger{})

	// Warm the snapshot; bindings are derived once per wrapped asset.
	_, err := assetsUsecase.GetAssets(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 1, factoryCallCount)

	// Cached bindings are reused, not re-derived.
	bindings, err := assetsUsecase.GetEstimatorBindings(context.Background(), registryAssets()[plvGlpAssetId])
	require.NoError(t, err)
	require.NotNil(t, bindings.Unwrap)
	require.NotNil(t, bindings.Wrap)
	require.Equal(t, 1, factoryCallCount)

	// Plain assets have no bindings.
	_, err = assetsUsecase.GetEstimatorBindings(context.Background(), registryAssets()[usdcAssetId])
	require.Error(t, err)
}
