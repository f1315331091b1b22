package domain

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TraderType enumerates the kinds of route steps a zap plan can contain.
type TraderType int

const (
	// TraderTypeExternalLiquidity is a swap or conversion executed against
	// external liquidity (an aggregator or a pool conversion).
	TraderTypeExternalLiquidity TraderType = iota
	// TraderTypeInternalLiquidity is a swap against platform-internal maker
	// accounts. Not produced by the router yet.
	TraderTypeInternalLiquidity
	// TraderTypeIsolationModeUnwrapper unwraps an isolation-mode asset.
	TraderTypeIsolationModeUnwrapper
	// TraderTypeIsolationModeWrapper wraps into an isolation-mode asset.
	TraderTypeIsolationModeWrapper
)

// String implements fmt.Stringer.
func (t TraderType) String() string {
	switch t {
	case TraderTypeExternalLiquidity:
		return "external_liquidity"
	case TraderTypeInternalLiquidity:
		return "internal_liquidity"
	case TraderTypeIsolationModeUnwrapper:
		return "isolation_mode_unwrapper"
	case TraderTypeIsolationModeWrapper:
		return "isolation_mode_wrapper"
	default:
		return "unknown"
	}
}

// AccountInfo references a platform sub-account.
type AccountInfo struct {
	Owner  common.Address `json:"owner"`
	Number uint64         `json:"number"`
}

// TraderParam is one atomic leg of a zap plan. Step i consumes the asset at
// path position i and produces the asset at path position i+1.
type TraderParam struct {
	// Type is the kind of step.
	Type TraderType `json:"trader_type"`
	// Trader is the executor contract for this step.
	Trader common.Address `json:"trader"`
	// TradeData is the opaque execution payload forwarded verbatim from the
	// quote source or amount estimator that produced this step.
	TradeData hexutil.Bytes `json:"trade_data"`
	// MakerAccountIndex indexes into the plan's MakerAccounts list for
	// internal liquidity steps. Zero for all other step kinds.
	MakerAccountIndex int `json:"maker_account_index"`
}

// ZapOutputParam is one complete, ready-to-submit zap execution plan.
type ZapOutputParam struct {
	// MarketIdsPath is the ordered asset id path. Length is one greater than
	// the number of trader params.
	MarketIdsPath []uint64 `json:"market_ids_path"`
	// AmountWeisPath carries the expected amount at each path position.
	// The first entry is the requested input amount; the last entry is an
	// estimate, not a guarantee.
	AmountWeisPath []math.Int `json:"amount_weis_path"`
	// TraderParams are the ordered execution steps.
	TraderParams []TraderParam `json:"trader_params"`
	// MakerAccounts lists the internal liquidity maker accounts referenced
	// by the trader params. Currently always empty.
	MakerAccounts []AccountInfo `json:"maker_accounts"`
	// OriginalAmountOutMin echoes the caller's minimum output constraint
	// verbatim. It is enforced at execution time, never during estimation.
	OriginalAmountOutMin math.Int `json:"original_amount_out_min"`
}

// Validate checks the structural plan invariants.
func (p ZapOutputParam) Validate() error {
	if len(p.MarketIdsPath) != len(p.TraderParams)+1 {
		return ErrInvalidPlanShape
	}
	if len(p.AmountWeisPath) != len(p.MarketIdsPath) {
		return ErrInvalidPlanShape
	}
	return nil
}

// ZapConfig carries the per-request options of a zap route computation.
type ZapConfig struct {
	// SlippageTolerance is a fraction in [0, 0.1]. The nil dec means
	// "use the configured default".
	SlippageTolerance math.LegacyDec `json:"slippage_tolerance"`
	// BlockTag pins the registry snapshot. <= 0 means latest.
	BlockTag int64 `json:"block_tag"`
	// IsLiquidation selects liquidation-specific conversion executors where
	// an asset declares them.
	IsLiquidation bool `json:"is_liquidation"`
	// DisallowAggregator skips the external quote source fan-out entirely.
	DisallowAggregator bool `json:"disallow_aggregator"`
	// SubAccountNumber is the acting sub account, if any.
	SubAccountNumber *uint64 `json:"sub_account_number,omitempty"`
	// AdditionalMakerAccounts are extra maker accounts passed through onto
	// each produced plan.
	AdditionalMakerAccounts []AccountInfo `json:"additional_maker_accounts,omitempty"`
}

// MaxSlippageTolerance is the inclusive upper bound of the accepted
// slippage tolerance fraction.
var MaxSlippageTolerance = math.LegacyMustNewDecFromStr("0.1")

// ValidateSlippageTolerance checks that the given slippage fraction is
// within [0, MaxSlippageTolerance]. The nil dec is accepted and means
// "use default".
func ValidateSlippageTolerance(slippage math.LegacyDec) error {
	if slippage.IsNil() {
		return nil
	}
	if slippage.IsNegative() || slippage.GT(MaxSlippageTolerance) {
		return SlippageToleranceError{SlippageTolerance: slippage}
	}
	return nil
}
