package mvc

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

// ZapUsecase represents the zap router's usecases.
type ZapUsecase interface {
	// BuildZapRoutes computes the candidate zap execution plans converting
	// amountIn of the input asset into the output asset.
	//
	// An empty plan list with a nil error means "no route found" and is a
	// valid result. A non-nil error means the computation could not even
	// be attempted (bad input, unreachable registry, or a failed mandatory
	// conversion estimate).
	BuildZapRoutes(
		ctx context.Context,
		inputAsset domain.AssetReference,
		amountIn math.Int,
		outputAsset domain.AssetReference,
		amountOutMin math.Int,
		executorAddress common.Address,
		config domain.ZapConfig,
	) ([]domain.ZapOutputParam, error)
}
