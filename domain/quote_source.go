package domain

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AggregatorOutput is the result of one external quote source pricing a
// plain swap.
type AggregatorOutput struct {
	// TraderAddress is the contract the aggregator executes through.
	TraderAddress common.Address `json:"trader_address"`
	// TradeData is the opaque calldata to submit to the trader.
	TradeData hexutil.Bytes `json:"trade_data"`
	// ExpectedAmountOut is the aggregator's expected output amount.
	ExpectedAmountOut math.Int `json:"expected_amount_out"`
}

// QuoteRequest is the input to a quote source.
type QuoteRequest struct {
	InputAsset      Asset
	InputAmount     math.Int
	OutputAsset     Asset
	MinOutputAmount math.Int
	// ExecutorAddress is the account that will submit the resulting zap.
	ExecutorAddress common.Address
	Config          ZapConfig
}

// QuoteSource prices a plain swap between two assets via one external
// swap aggregation API.
//
// Quote must never return an error for "no liquidity"; that case returns a
// nil output. Errors are reserved for transport and configuration failures.
type QuoteSource interface {
	// Name returns a stable identifier for the source, used for metrics
	// and logs.
	Name() string

	// IsUsable reports whether the source supports the given chain.
	IsUsable(chainId uint64) bool

	// Quote returns the aggregator output for the given request, or nil if
	// the source has no route.
	Quote(ctx context.Context, req QuoteRequest) (*AggregatorOutput, error)
}
