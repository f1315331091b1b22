package mvc

import (
	"context"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

// AssetsUsecase represents the asset registry's usecases.
type AssetsUsecase interface {
	// GetAssets returns the full registry snapshot for the given block tag,
	// reading through the cache on miss. blockTag <= 0 means latest.
	GetAssets(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error)

	// ResolveAsset resolves an asset reference against the registry
	// snapshot. Returns domain.AssetNotFoundError if the reference cannot
	// be resolved.
	ResolveAsset(ctx context.Context, ref domain.AssetReference, blockTag int64) (domain.Asset, error)

	// GetEstimatorBindings returns the derived amount estimator bindings
	// for the given wrapped asset. Returns an error for plain assets.
	GetEstimatorBindings(ctx context.Context, asset domain.Asset) (domain.EstimatorBindings, error)
}
