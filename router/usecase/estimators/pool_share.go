package estimators

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var (
	_ domain.AmountEstimator = &poolShareUnwrapEstimator{}
	_ domain.AmountEstimator = &poolShareWrapEstimator{}
)

// poolShareUnwrapEstimator prices the redemption of a liquidity token into
// one of its underlyings using the pool state carried on the asset:
//
//	amountOut = amountIn * underlyingBalance / totalSupply
type poolShareUnwrapEstimator struct {
	asset domain.Asset
}

// NewPoolShareUnwrapEstimator creates the redeem-direction estimator for
// the given liquidity token asset.
func NewPoolShareUnwrapEstimator(asset domain.Asset) domain.AmountEstimator {
	return &poolShareUnwrapEstimator{asset: asset}
}

// Estimate implements domain.AmountEstimator.
func (e *poolShareUnwrapEstimator) Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
	balance, totalSupply, err := poolStateFor(e.asset, targetAssetId)
	if err != nil {
		return domain.EstimateOutput{}, err
	}

	return domain.EstimateOutput{
		AmountOut: amountIn.Mul(balance).Quo(totalSupply),
		TradeData: nil,
	}, nil
}

// poolShareWrapEstimator prices the mint of a liquidity token from one of
// its underlyings, the inverse of the redeem direction:
//
//	amountOut = amountIn * totalSupply / underlyingBalance
type poolShareWrapEstimator struct {
	asset domain.Asset
}

// NewPoolShareWrapEstimator creates the mint-direction estimator for the
// given liquidity token asset.
func NewPoolShareWrapEstimator(asset domain.Asset) domain.AmountEstimator {
	return &poolShareWrapEstimator{asset: asset}
}

// Estimate implements domain.AmountEstimator.
func (e *poolShareWrapEstimator) Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
	balance, totalSupply, err := poolStateFor(e.asset, targetAssetId)
	if err != nil {
		return domain.EstimateOutput{}, err
	}

	return domain.EstimateOutput{
		AmountOut: amountIn.Mul(totalSupply).Quo(balance),
		TradeData: nil,
	}, nil
}

func poolStateFor(asset domain.Asset, targetAssetId uint64) (balance math.Int, totalSupply math.Int, err error) {
	if asset.Pool == nil {
		return math.Int{}, math.Int{}, fmt.Errorf("liquidity token asset (%s) with id (%d) has no pool state", asset.Symbol, asset.Id)
	}

	balance, ok := asset.Pool.UnderlyingBalances[targetAssetId]
	if !ok {
		return math.Int{}, math.Int{}, fmt.Errorf("asset (%d) is not an underlying of pool asset (%s) with id (%d)", targetAssetId, asset.Symbol, asset.Id)
	}

	if !balance.IsPositive() || !asset.Pool.TotalSupply.IsPositive() {
		return math.Int{}, math.Int{}, fmt.Errorf("pool asset (%s) with id (%d) has empty pool state", asset.Symbol, asset.Id)
	}

	return balance, asset.Pool.TotalSupply, nil
}
