package usecase

import (
	"context"
	"sync"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mvc"
	"github.com/dolomite-exchange/zap-sidecar/log"
)

var _ mvc.ZapUsecase = &zapUseCaseImpl{}

type zapUseCaseImpl struct {
	assetsUsecase mvc.AssetsUsecase
	sources       []domain.QuoteSource
	chainId       uint64

	defaultSlippageTolerance math.LegacyDec

	logger log.Logger
}

var (
	quoteSourceErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zap_quote_source_errors_total",
			Help: "Total number of dropped quote source results",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(quoteSourceErrorCounter)
}

// estimationAmountOutMin is the minimum output used while collecting
// aggregator quotes. The plan's real minimum is enforced by the caller at
// execution time, not during estimation.
var estimationAmountOutMin = math.OneInt()

// NewZapUsecase creates a new zap router use case.
func NewZapUsecase(assetsUsecase mvc.AssetsUsecase, sources []domain.QuoteSource, chainId uint64, defaultSlippageTolerance math.LegacyDec, logger log.Logger) mvc.ZapUsecase {
	return &zapUseCaseImpl{
		assetsUsecase: assetsUsecase,
		sources:       sources,
		chainId:       chainId,

		defaultSlippageTolerance: defaultSlippageTolerance,

		logger: logger,
	}
}

// planLane accumulates the amounts and steps of one candidate plan. Lanes
// start out identical across quote sources and only diverge once the
// residual swap leg is quoted.
type planLane struct {
	// source is nil when the aggregator fan-out is disallowed or no source
	// is usable; such a lane can only carry conversion-only plans.
	source  domain.QuoteSource
	amounts []math.Int
	steps   []domain.TraderParam
	dropped bool
}

// BuildZapRoutes implements mvc.ZapUsecase.
func (z *zapUseCaseImpl) BuildZapRoutes(
	ctx context.Context,
	inputRef domain.AssetReference,
	amountIn math.Int,
	outputRef domain.AssetReference,
	amountOutMin math.Int,
	executorAddress common.Address,
	config domain.ZapConfig,
) ([]domain.ZapOutputParam, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, domain.AmountError{Field: "amountIn", Amount: amountIn}
	}

	if amountOutMin.IsNil() || !amountOutMin.IsPositive() {
		return nil, domain.AmountError{Field: "amountOutMin", Amount: amountOutMin}
	}

	if err := domain.ValidateSlippageTolerance(config.SlippageTolerance); err != nil {
		return nil, err
	}

	if executorAddress == (common.Address{}) {
		return nil, domain.ExecutorAddressError{Address: executorAddress.Hex()}
	}

	inputAsset, err := z.assetsUsecase.ResolveAsset(ctx, inputRef, config.BlockTag)
	if err != nil {
		return nil, err
	}

	outputAsset, err := z.assetsUsecase.ResolveAsset(ctx, outputRef, config.BlockTag)
	if err != nil {
		return nil, err
	}

	estimateOpts := domain.EstimateOptions{
		SlippageTolerance: z.effectiveSlippageTolerance(config),
		BlockTag:          config.BlockTag,
		IsLiquidation:     config.IsLiquidation,
	}

	lanes := z.initializeLanes(amountIn, config)

	path := []uint64{inputAsset.Id}

	// Input-side conversion. The estimate is shared across all lanes: the
	// conversion does not depend on which external swap follows.
	effectiveInput := inputAsset
	if inputAsset.IsWrapped() {
		unwrapDescriptor := inputAsset.Conversion.Unwrap
		targetAssetId := unwrapDescriptor.TargetAssetIds[0]

		bindings, err := z.assetsUsecase.GetEstimatorBindings(ctx, inputAsset)
		if err != nil {
			return nil, err
		}

		estimate, err := bindings.Unwrap.Estimate(ctx, amountIn, targetAssetId, estimateOpts)
		if err != nil {
			return nil, domain.ConversionEstimateError{AssetId: inputAsset.Id, Symbol: inputAsset.Symbol, Direction: "unwrap", Err: err}
		}

		path = append(path, targetAssetId)

		step := domain.TraderParam{
			Type:      conversionTraderType(inputAsset, true),
			Trader:    unwrapDescriptor.ExecutorFor(config.IsLiquidation),
			TradeData: estimate.TradeData,
		}

		for i := range lanes {
			lanes[i].amounts = append(lanes[i].amounts, estimate.AmountOut)
			lanes[i].steps = append(lanes[i].steps, step)
		}

		effectiveInput, err = z.assetsUsecase.ResolveAsset(ctx, domain.AssetReference{Id: targetAssetId}, config.BlockTag)
		if err != nil {
			return nil, err
		}
	}

	// Output-side conversion target. Only the target asset id is needed
	// now; the estimate is deferred until the residual swap output is
	// known, because a wrap's cost can depend on amount.
	effectiveOutput := outputAsset
	if outputAsset.IsWrapped() {
		wrapSourceAssetId := outputAsset.Conversion.Wrap.TargetAssetIds[0]

		effectiveOutput, err = z.assetsUsecase.ResolveAsset(ctx, domain.AssetReference{Id: wrapSourceAssetId}, config.BlockTag)
		if err != nil {
			return nil, err
		}
	}

	// Residual swap leg across all usable quote sources concurrently.
	if effectiveInput.Id != effectiveOutput.Id {
		if path[len(path)-1] != effectiveOutput.Id {
			path = append(path, effectiveOutput.Id)
		}

		hasAggregatorLane := false
		for i := range lanes {
			if lanes[i].source != nil {
				hasAggregatorLane = true
				break
			}
		}
		if !hasAggregatorLane {
			// A plain swap is required but no aggregator may be used; no
			// plan is possible. This is "no route", not an error.
			return []domain.ZapOutputParam{}, nil
		}

		z.quoteResidualSwap(ctx, lanes, effectiveInput, effectiveOutput, executorAddress, config)
	} else {
		// No residual swap: all lanes are identical, keep only the first.
		lanes = lanes[:1]
	}

	// Output-side conversion estimate, once per surviving lane from that
	// lane's accumulated amount.
	if outputAsset.IsWrapped() {
		wrapDescriptor := outputAsset.Conversion.Wrap
		wrapSourceAssetId := wrapDescriptor.TargetAssetIds[0]

		bindings, err := z.assetsUsecase.GetEstimatorBindings(ctx, outputAsset)
		if err != nil {
			return nil, err
		}

		step := domain.TraderParam{
			Type:   conversionTraderType(outputAsset, false),
			Trader: wrapDescriptor.ExecutorFor(config.IsLiquidation),
		}

		for i := range lanes {
			if lanes[i].dropped {
				continue
			}

			laneAmountIn := lanes[i].amounts[len(lanes[i].amounts)-1]

			estimate, err := bindings.Wrap.Estimate(ctx, laneAmountIn, wrapSourceAssetId, estimateOpts)
			if err != nil {
				// All plans share the mandatory wrap step; failing to
				// price it invalidates every candidate.
				return nil, domain.ConversionEstimateError{AssetId: outputAsset.Id, Symbol: outputAsset.Symbol, Direction: "wrap", Err: err}
			}

			laneStep := step
			laneStep.TradeData = estimate.TradeData

			lanes[i].amounts = append(lanes[i].amounts, estimate.AmountOut)
			lanes[i].steps = append(lanes[i].steps, laneStep)
		}
	}

	if path[len(path)-1] != outputAsset.Id {
		path = append(path, outputAsset.Id)
	}

	makerAccounts := config.AdditionalMakerAccounts
	if makerAccounts == nil {
		makerAccounts = []domain.AccountInfo{}
	}

	plans := make([]domain.ZapOutputParam, 0, len(lanes))
	for i := range lanes {
		if lanes[i].dropped {
			continue
		}

		plan := domain.ZapOutputParam{
			MarketIdsPath:        path,
			AmountWeisPath:       lanes[i].amounts,
			TraderParams:         lanes[i].steps,
			MakerAccounts:        makerAccounts,
			OriginalAmountOutMin: amountOutMin,
		}

		if err := plan.Validate(); err != nil {
			return nil, err
		}

		plans = append(plans, plan)
	}

	return dedupPlans(plans), nil
}

// initializeLanes seeds one amount accumulator and step list per usable
// quote source, or a single aggregator-less lane when the fan-out is
// disallowed or no source serves this chain.
func (z *zapUseCaseImpl) initializeLanes(amountIn math.Int, config domain.ZapConfig) []planLane {
	var lanes []planLane

	if !config.DisallowAggregator {
		for _, source := range z.sources {
			if !source.IsUsable(z.chainId) {
				continue
			}

			lanes = append(lanes, planLane{
				source:  source,
				amounts: []math.Int{amountIn},
			})
		}
	}

	if len(lanes) == 0 {
		lanes = append(lanes, planLane{
			amounts: []math.Int{amountIn},
		})
	}

	return lanes
}

// quoteResidualSwap fans the plain swap leg out to every lane's quote
// source concurrently and folds each result back into its lane by index.
// Sources that fail or report no route are dropped from the result set;
// the call still succeeds with the surviving lanes.
func (z *zapUseCaseImpl) quoteResidualSwap(ctx context.Context, lanes []planLane, swapInput, swapOutput domain.Asset, executorAddress common.Address, config domain.ZapConfig) {
	type laneQuoteResult struct {
		laneIndex int
		output    *domain.AggregatorOutput
		err       error
	}

	resultsChan := make(chan laneQuoteResult, len(lanes))

	var wg sync.WaitGroup
	for i := range lanes {
		if lanes[i].source == nil {
			lanes[i].dropped = true
			continue
		}

		swapAmountIn := lanes[i].amounts[len(lanes[i].amounts)-1]

		wg.Add(1)
		go func(laneIndex int, source domain.QuoteSource) {
			defer wg.Done()

			output, err := source.Quote(ctx, domain.QuoteRequest{
				InputAsset:      swapInput,
				InputAmount:     swapAmountIn,
				OutputAsset:     swapOutput,
				MinOutputAmount: estimationAmountOutMin,
				ExecutorAddress: executorAddress,
				Config:          config,
			})
			resultsChan <- laneQuoteResult{laneIndex: laneIndex, output: output, err: err}
		}(i, lanes[i].source)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for result := range resultsChan {
		lane := &lanes[result.laneIndex]

		if result.err != nil {
			quoteSourceErrorCounter.WithLabelValues(lane.source.Name()).Inc()
			z.logger.Warn("dropping failed quote source", zap.String("source", lane.source.Name()), zap.Error(result.err))
			lane.dropped = true
			continue
		}

		if result.output == nil {
			lane.dropped = true
			continue
		}

		lane.amounts = append(lane.amounts, result.output.ExpectedAmountOut)
		lane.steps = append(lane.steps, domain.TraderParam{
			Type:      domain.TraderTypeExternalLiquidity,
			Trader:    result.output.TraderAddress,
			TradeData: result.output.TradeData,
		})
	}
}

// conversionTraderType maps the asset category to the step kind of its
// conversion: isolation-mode conversions go through the dedicated
// unwrapper/wrapper, liquidity token conversions execute against external
// liquidity.
func conversionTraderType(asset domain.Asset, isUnwrap bool) domain.TraderType {
	if asset.Category == domain.AssetCategoryIsolationMode {
		if isUnwrap {
			return domain.TraderTypeIsolationModeUnwrapper
		}
		return domain.TraderTypeIsolationModeWrapper
	}
	return domain.TraderTypeExternalLiquidity
}

func (z *zapUseCaseImpl) effectiveSlippageTolerance(config domain.ZapConfig) math.LegacyDec {
	if config.SlippageTolerance.IsNil() {
		return z.defaultSlippageTolerance
	}
	return config.SlippageTolerance
}
