package domain

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EstimateOutput is the result of pricing one conversion direction.
type EstimateOutput struct {
	// AmountOut is the expected (not minimum) output amount.
	AmountOut math.Int `json:"amount_out"`
	// TradeData is the opaque execution payload for the conversion step.
	// Empty for fixed-rate conversions.
	TradeData hexutil.Bytes `json:"trade_data"`
}

// EstimateOptions carries the request options relevant to amount estimation.
type EstimateOptions struct {
	// SlippageTolerance is the effective slippage fraction of the request.
	// Estimators that internally query a worst-case quote must back this
	// factor out so that stacked steps never compound slippage more than
	// once per step.
	SlippageTolerance math.LegacyDec
	// BlockTag pins estimations that read historical state. <= 0 is latest.
	BlockTag int64
	// IsLiquidation is true for liquidation zaps.
	IsLiquidation bool
}

// AmountEstimator prices one conversion direction for one asset. A binding
// is derived from the asset's conversion descriptor when the registry
// snapshot is loaded and cached alongside it.
type AmountEstimator interface {
	// Estimate returns the expected output amount and execution payload for
	// the conversion of amountIn. targetAssetId is the plain-side asset of
	// the conversion: the asset produced by an unwrap, or the asset
	// consumed by a wrap.
	Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts EstimateOptions) (EstimateOutput, error)
}

// EstimatorBindings holds the derived per-direction estimator bindings of
// one wrapped asset.
type EstimatorBindings struct {
	Unwrap AmountEstimator
	Wrap   AmountEstimator
}

// EstimatorFactory derives the amount estimator bindings of a wrapped asset
// from its conversion descriptors. Implementations select the concrete
// estimator per asset category and per the descriptor's IsAsync flag.
type EstimatorFactory interface {
	// BindingsFor returns the estimator bindings of the given asset.
	// Returns an error for plain assets.
	BindingsFor(asset Asset) (EstimatorBindings, error)
}
