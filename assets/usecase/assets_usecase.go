package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/cache"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
	"github.com/dolomite-exchange/zap-sidecar/log"
	"github.com/dolomite-exchange/zap-sidecar/zaputil/datafetchers"
)

var _ mvc.AssetsUsecase = &assetsUseCase{}

type assetsUseCase struct {
	registryClient   domain.AssetRegistryClient
	estimatorFactory domain.EstimatorFactory
	logger           log.Logger

	snapshotCache  *cache.Cache
	snapshotExpiry time.Duration

	refreshFetcher *datafetchers.IntervalFetcher[registrySnapshot]
}

// registrySnapshot is one cached registry read together with the estimator
// bindings derived from it.
type registrySnapshot struct {
	assets   map[uint64]domain.Asset
	bindings map[uint64]domain.EstimatorBindings
}

const latestSnapshotCacheKey = "assets:latest"

var (
	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zap_assets_cache_hits_total",
			Help: "Total number of asset registry cache hits",
		},
	)
	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zap_assets_cache_misses_total",
			Help: "Total number of asset registry cache misses",
		},
	)
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// NewAssetsUsecase creates a new assets use case.
func NewAssetsUsecase(registryClient domain.AssetRegistryClient, estimatorFactory domain.EstimatorFactory, config *domain.RouterConfig, logger log.Logger) mvc.AssetsUsecase {
	snapshotExpiry := time.Duration(config.AssetsCacheExpirySeconds) * time.Second

	return &assetsUseCase{
		registryClient:   registryClient,
		estimatorFactory: estimatorFactory,
		logger:           logger,

		snapshotCache:  cache.New(snapshotExpiry),
		snapshotExpiry: snapshotExpiry,
	}
}

// WithBackgroundRefresh starts a background refresh of the latest snapshot
// at the given interval on the given assets use case.
func WithBackgroundRefresh(assetsUsecase mvc.AssetsUsecase, interval time.Duration) mvc.AssetsUsecase {
	useCaseImpl, ok := assetsUsecase.(*assetsUseCase)
	if !ok {
		panic("error casting assets use case to assets use case impl")
	}
	useCaseImpl.startBackgroundRefresh(interval)
	return assetsUsecase
}

// startBackgroundRefresh keeps the latest snapshot warm on the given
// interval so that request paths rarely pay the registry round trip.
func (a *assetsUseCase) startBackgroundRefresh(interval time.Duration) {
	a.refreshFetcher = datafetchers.NewIntervalFetcher(func() (registrySnapshot, error) {
		snapshot, err := a.loadSnapshot(context.Background(), 0)
		if err != nil {
			a.logger.Error("failed to refresh registry snapshot", zap.Error(err))
			return registrySnapshot{}, err
		}

		a.snapshotCache.Set(latestSnapshotCacheKey, snapshot)

		return snapshot, nil
	}, interval)
}

// GetAssets implements mvc.AssetsUsecase.
func (a *assetsUseCase) GetAssets(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
	snapshot, err := a.getSnapshot(ctx, blockTag)
	if err != nil {
		return nil, err
	}

	return snapshot.assets, nil
}

// ResolveAsset implements mvc.AssetsUsecase.
func (a *assetsUseCase) ResolveAsset(ctx context.Context, ref domain.AssetReference, blockTag int64) (domain.Asset, error) {
	snapshot, err := a.getSnapshot(ctx, blockTag)
	if err != nil {
		return domain.Asset{}, err
	}

	asset, ok := snapshot.assets[ref.Id]
	if !ok {
		return domain.Asset{}, domain.AssetNotFoundError{Id: ref.Id, Symbol: ref.Symbol}
	}

	// A symbol mismatch means the caller holds stale metadata: the id has
	// been reassigned or the listing changed. Refusing here names both
	// sides so the caller can refresh.
	if ref.Symbol != "" && ref.Symbol != asset.Symbol {
		return domain.Asset{}, domain.AssetNotFoundError{Id: ref.Id, Symbol: ref.Symbol}
	}

	return asset, nil
}

// GetEstimatorBindings implements mvc.AssetsUsecase.
func (a *assetsUseCase) GetEstimatorBindings(ctx context.Context, asset domain.Asset) (domain.EstimatorBindings, error) {
	if !asset.IsWrapped() {
		return domain.EstimatorBindings{}, fmt.Errorf("asset (%s) with id (%d) is plain and has no estimator bindings", asset.Symbol, asset.Id)
	}

	if cached, found := a.snapshotCache.Get(latestSnapshotCacheKey); found {
		snapshot := cached.(registrySnapshot)
		if bindings, ok := snapshot.bindings[asset.Id]; ok {
			return bindings, nil
		}
	}

	// The asset came from an explicit-block snapshot; derive on demand.
	return a.estimatorFactory.BindingsFor(asset)
}

// getSnapshot returns the snapshot for the given block tag, reading through
// the TTL cache for the latest block. Explicit-block snapshots are
// immutable and memoized by the registry client itself.
func (a *assetsUseCase) getSnapshot(ctx context.Context, blockTag int64) (registrySnapshot, error) {
	if blockTag > 0 {
		return a.loadSnapshot(ctx, blockTag)
	}

	if cached, found := a.snapshotCache.Get(latestSnapshotCacheKey); found {
		cacheHits.Inc()
		return cached.(registrySnapshot), nil
	}
	cacheMisses.Inc()

	snapshot, err := a.loadSnapshot(ctx, 0)
	if err != nil {
		return registrySnapshot{}, err
	}

	// A duplicate concurrent miss overwrites with an equivalent value; the
	// race is accepted since snapshots are idempotent.
	a.snapshotCache.Set(latestSnapshotCacheKey, snapshot)

	return snapshot, nil
}

func (a *assetsUseCase) loadSnapshot(ctx context.Context, blockTag int64) (registrySnapshot, error) {
	assets, err := a.registryClient.ListAssets(ctx, blockTag)
	if err != nil {
		return registrySnapshot{}, err
	}

	bindings := make(map[uint64]domain.EstimatorBindings)
	for id, asset := range assets {
		if err := asset.Validate(); err != nil {
			return registrySnapshot{}, err
		}

		if !asset.IsWrapped() {
			continue
		}

		assetBindings, err := a.estimatorFactory.BindingsFor(asset)
		if err != nil {
			return registrySnapshot{}, err
		}

		bindings[id] = assetBindings
	}

	return registrySnapshot{
		assets:   assets,
		bindings: bindings,
	}, nil
}
