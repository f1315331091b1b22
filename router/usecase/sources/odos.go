package sources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/zaputil/zaphttp"
)

var _ domain.QuoteSource = &odosSource{}

// odosSource quotes plain swaps through the Odos aggregation API.
type odosSource struct {
	client  *http.Client
	url     string
	chainId uint64
}

const (
	odosSourceName = "odos"

	defaultQuoteTimeout = 10 * time.Second
)

// odosSupportedChains is the set of chains the Odos API serves.
var odosSupportedChains = map[uint64]struct{}{
	1:     {}, // Ethereum
	10:    {}, // Optimism
	137:   {}, // Polygon
	8453:  {}, // Base
	42161: {}, // Arbitrum One
}

// NewOdosSource creates a new Odos quote source.
func NewOdosSource(url string, chainId uint64) domain.QuoteSource {
	return &odosSource{
		client: &http.Client{
			Timeout: defaultQuoteTimeout,
		},
		url:     url,
		chainId: chainId,
	}
}

// Name implements domain.QuoteSource.
func (s *odosSource) Name() string {
	return odosSourceName
}

// IsUsable implements domain.QuoteSource.
func (s *odosSource) IsUsable(chainId uint64) bool {
	_, ok := odosSupportedChains[chainId]
	return ok
}

type odosQuoteRequest struct {
	ChainId     uint64 `json:"chainId"`
	InputToken  string `json:"inputToken"`
	InputAmount string `json:"inputAmount"`
	OutputToken string `json:"outputToken"`
	MinOutput   string `json:"minOutput"`
	UserAddr    string `json:"userAddr"`
	// Disables the API's partial-fill behavior; zaps are atomic.
	DisablePartialFill bool `json:"disablePartialFill"`
}

type odosQuoteResponse struct {
	// OutAmount is empty when the API has no route for the pair.
	OutAmount   string        `json:"outAmount"`
	To          string        `json:"to"`
	Data        hexutil.Bytes `json:"data"`
	PathViz     any           `json:"pathViz,omitempty"`
	BlockNumber int64         `json:"blockNumber"`
}

// Quote implements domain.QuoteSource.
func (s *odosSource) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.AggregatorOutput, error) {
	response, err := zaphttp.Post[odosQuoteResponse](ctx, s.client, s.url, "/sor/quote", odosQuoteRequest{
		ChainId:            s.chainId,
		InputToken:         req.InputAsset.Address.Hex(),
		InputAmount:        req.InputAmount.String(),
		OutputToken:        req.OutputAsset.Address.Hex(),
		MinOutput:          req.MinOutputAmount.String(),
		UserAddr:           req.ExecutorAddress.Hex(),
		DisablePartialFill: true,
	})
	if err != nil {
		return nil, err
	}

	// No liquidity for the pair is a valid "no route" result, not an error.
	if response.OutAmount == "" || response.OutAmount == "0" {
		return nil, nil
	}

	expectedAmountOut, ok := math.NewIntFromString(response.OutAmount)
	if !ok {
		return nil, fmt.Errorf("odos returned invalid out amount (%s)", response.OutAmount)
	}

	if !common.IsHexAddress(response.To) {
		return nil, fmt.Errorf("odos returned invalid trader address (%s)", response.To)
	}

	return &domain.AggregatorOutput{
		TraderAddress:     common.HexToAddress(response.To),
		TradeData:         response.Data,
		ExpectedAmountOut: expectedAmountOut,
	}, nil
}
