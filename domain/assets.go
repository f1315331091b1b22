package domain

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// AssetCategory is the closed set of asset categories supported by the zap
// router. The category determines which conversion steps must surround the
// residual aggregator swap.
type AssetCategory int

const (
	// AssetCategoryPlain is a regular asset tradable directly on external
	// liquidity venues.
	AssetCategoryPlain AssetCategory = iota
	// AssetCategoryIsolationMode is a 1:1 custody wrapper that must be
	// unwrapped/wrapped through a dedicated executor before/after trading.
	AssetCategoryIsolationMode
	// AssetCategoryLiquidityToken is a share of a pooled position whose
	// conversion amount depends on pool state.
	AssetCategoryLiquidityToken
)

// String implements fmt.Stringer.
func (c AssetCategory) String() string {
	switch c {
	case AssetCategoryPlain:
		return "plain"
	case AssetCategoryIsolationMode:
		return "isolation_mode"
	case AssetCategoryLiquidityToken:
		return "liquidity_token"
	default:
		return "unknown"
	}
}

// ConversionDescriptor describes how an asset is converted in one direction
// (unwrap or wrap) and which executor performs the conversion.
type ConversionDescriptor struct {
	// Executor is the on-chain contract that performs the conversion.
	Executor common.Address `json:"executor"`
	// LiquidationExecutor, when set, replaces Executor for liquidation zaps.
	LiquidationExecutor *common.Address `json:"liquidation_executor,omitempty"`
	// TargetAssetIds are the candidate assets on the other side of the
	// conversion. Must contain at least one entry.
	TargetAssetIds []uint64 `json:"target_asset_ids"`
	// Label is a human readable description of the conversion.
	Label string `json:"label"`
	// IsAsync is true if the conversion amount requires an off-chain
	// request/response estimation round trip.
	IsAsync bool `json:"is_async"`
}

// ExecutorFor returns the executor to use for the given zap mode.
func (d ConversionDescriptor) ExecutorFor(isLiquidation bool) common.Address {
	if isLiquidation && d.LiquidationExecutor != nil {
		return *d.LiquidationExecutor
	}
	return d.Executor
}

// ConversionPair holds both conversion directions of a wrapped asset.
// Wrapped assets must declare both directions; the registry rejects
// metadata that populates only one.
type ConversionPair struct {
	Unwrap ConversionDescriptor `json:"unwrap"`
	Wrap   ConversionDescriptor `json:"wrap"`
}

// PoolState is the pooled-position state backing a liquidity token asset.
// It is refreshed together with the registry snapshot and consumed by the
// pool share estimator.
type PoolState struct {
	// TotalSupply is the total liquidity token supply.
	TotalSupply math.Int `json:"total_supply"`
	// UnderlyingBalances maps underlying asset id to the pool's balance of it.
	UnderlyingBalances map[uint64]math.Int `json:"underlying_balances"`
}

// Asset represents one tradable unit on the platform.
type Asset struct {
	// Id is the platform-wide unique, stable asset (market) id.
	Id uint64 `json:"id"`
	// Symbol is the short ticker, e.g. "WETH".
	Symbol string `json:"symbol"`
	// Name is the display name.
	Name string `json:"name"`
	// Address is the token contract address.
	Address common.Address `json:"address"`
	// Decimals is the token precision.
	Decimals int `json:"decimals"`
	// Category tags the asset as plain, isolation-mode or liquidity-token.
	Category AssetCategory `json:"category"`
	// Conversion is nil iff Category is AssetCategoryPlain.
	Conversion *ConversionPair `json:"conversion,omitempty"`
	// Pool carries pooled-position state for liquidity token assets.
	Pool *PoolState `json:"pool,omitempty"`
}

// IsWrapped is true for assets that require a conversion step before or
// after they can be traded on external liquidity.
func (a Asset) IsWrapped() bool {
	return a.Category != AssetCategoryPlain
}

// Validate enforces the category/descriptor invariant: wrapped assets must
// declare both conversion directions, each naming at least one target asset.
func (a Asset) Validate() error {
	if a.Category == AssetCategoryPlain {
		if a.Conversion != nil {
			return AssetConversionError{AssetId: a.Id, Symbol: a.Symbol, Reason: "plain asset declares conversion descriptors"}
		}
		return nil
	}

	if a.Conversion == nil {
		return AssetConversionError{AssetId: a.Id, Symbol: a.Symbol, Reason: "wrapped asset missing conversion descriptors"}
	}

	if len(a.Conversion.Unwrap.TargetAssetIds) == 0 {
		return AssetConversionError{AssetId: a.Id, Symbol: a.Symbol, Reason: "unwrap descriptor has no target assets"}
	}

	if len(a.Conversion.Wrap.TargetAssetIds) == 0 {
		return AssetConversionError{AssetId: a.Id, Symbol: a.Symbol, Reason: "wrap descriptor has no target assets"}
	}

	return nil
}

// AssetReference identifies an asset in a zap request. Id is authoritative;
// Symbol is carried for diagnostics so a stale-metadata failure can name
// what the caller asked for.
type AssetReference struct {
	Id     uint64 `json:"id"`
	Symbol string `json:"symbol"`
}

// AssetRegistryClient lists the tradable assets and their conversion
// metadata as of a given block.
type AssetRegistryClient interface {
	// ListAssets returns all tradable assets keyed by asset id.
	// blockTag <= 0 means the latest block.
	ListAssets(ctx context.Context, blockTag int64) (map[uint64]Asset, error)
}
