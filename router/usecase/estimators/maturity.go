package estimators

import (
	"context"
	"fmt"
	"net/http"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/zaputil/zaphttp"
)

var _ domain.AmountEstimator = &maturityEstimator{}

// maturityEstimator prices fixed-maturity instrument conversions through an
// off-chain estimation endpoint. The endpoint returns a worst-case amount
// that already has the slippage tolerance applied; the estimator backs that
// factor out to report an expected amount, since plans stack estimators and
// slippage must not compound more than once per step.
type maturityEstimator struct {
	client *http.Client
	url    string

	assetId  uint64
	isUnwrap bool
}

// NewMaturityEstimator creates an async off-chain estimator for the given
// asset and direction.
func NewMaturityEstimator(client *http.Client, url string, assetId uint64, isUnwrap bool) domain.AmountEstimator {
	return &maturityEstimator{
		client: client,
		url:    url,

		assetId:  assetId,
		isUnwrap: isUnwrap,
	}
}

type maturityEstimateRequest struct {
	AssetId       uint64 `json:"asset_id"`
	TargetAssetId uint64 `json:"target_asset_id"`
	AmountIn      string `json:"amount_in"`
	IsUnwrap      bool   `json:"is_unwrap"`
	IsLiquidation bool   `json:"is_liquidation"`
	// SlippageTolerance is the fraction the endpoint applies to produce its
	// worst-case amount. Decimal string.
	SlippageTolerance string `json:"slippage_tolerance"`
	BlockTag          int64  `json:"block_tag,omitempty"`
}

type maturityEstimateResponse struct {
	// WorstAmountOut is the minimum output with slippage applied.
	WorstAmountOut string `json:"worst_amount_out"`
	// TradeData is the executor payload for the conversion.
	TradeData hexutil.Bytes `json:"trade_data"`
}

// Estimate implements domain.AmountEstimator.
func (e *maturityEstimator) Estimate(ctx context.Context, amountIn math.Int, targetAssetId uint64, opts domain.EstimateOptions) (domain.EstimateOutput, error) {
	slippage := opts.SlippageTolerance
	if slippage.IsNil() {
		slippage = math.LegacyZeroDec()
	}

	response, err := zaphttp.Post[maturityEstimateResponse](ctx, e.client, e.url, "/estimate", maturityEstimateRequest{
		AssetId:           e.assetId,
		TargetAssetId:     targetAssetId,
		AmountIn:          amountIn.String(),
		IsUnwrap:          e.isUnwrap,
		IsLiquidation:     opts.IsLiquidation,
		SlippageTolerance: slippage.String(),
		BlockTag:          opts.BlockTag,
	})
	if err != nil {
		return domain.EstimateOutput{}, err
	}

	worstAmountOut, ok := math.NewIntFromString(response.WorstAmountOut)
	if !ok {
		return domain.EstimateOutput{}, fmt.Errorf("invalid worst amount out (%s)", response.WorstAmountOut)
	}

	// Back the slippage factor out: expected = worst / (1 - slippage).
	expected := worstAmountOut
	if slippage.IsPositive() {
		expected = math.LegacyNewDecFromInt(worstAmountOut).Quo(math.LegacyOneDec().Sub(slippage)).TruncateInt()
	}

	return domain.EstimateOutput{
		AmountOut: expected,
		TradeData: response.TradeData,
	}, nil
}
