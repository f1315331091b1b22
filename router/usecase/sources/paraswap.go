package sources

import (
	"context"
	"fmt"
	"net/http"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/zaputil/zaphttp"
)

var _ domain.QuoteSource = &paraswapSource{}

// paraswapSource quotes plain swaps through the ParaSwap aggregation API.
type paraswapSource struct {
	client  *http.Client
	url     string
	chainId uint64
}

const paraswapSourceName = "paraswap"

// paraswapSupportedChains is the set of chains the ParaSwap API serves.
var paraswapSupportedChains = map[uint64]struct{}{
	1:     {}, // Ethereum
	10:    {}, // Optimism
	56:    {}, // BNB Chain
	137:   {}, // Polygon
	8453:  {}, // Base
	42161: {}, // Arbitrum One
	43114: {}, // Avalanche
}

// NewParaswapSource creates a new ParaSwap quote source.
func NewParaswapSource(url string, chainId uint64) domain.QuoteSource {
	return &paraswapSource{
		client: &http.Client{
			Timeout: defaultQuoteTimeout,
		},
		url:     url,
		chainId: chainId,
	}
}

// Name implements domain.QuoteSource.
func (s *paraswapSource) Name() string {
	return paraswapSourceName
}

// IsUsable implements domain.QuoteSource.
func (s *paraswapSource) IsUsable(chainId uint64) bool {
	_, ok := paraswapSupportedChains[chainId]
	return ok
}

type paraswapPricesResponse struct {
	PriceRoute *struct {
		DestAmount string `json:"destAmount"`
	} `json:"priceRoute"`
	// Error carries the API's "no routes found" marker among other
	// route-level failures.
	Error string `json:"error,omitempty"`
}

type paraswapTransactionsRequest struct {
	SrcToken   string `json:"srcToken"`
	DestToken  string `json:"destToken"`
	SrcAmount  string `json:"srcAmount"`
	DestAmount string `json:"destAmount"`
	UserAddr   string `json:"userAddress"`
}

type paraswapTransactionsResponse struct {
	To   string        `json:"to"`
	Data hexutil.Bytes `json:"data"`
}

// Quote implements domain.QuoteSource.
func (s *paraswapSource) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.AggregatorOutput, error) {
	pricesEndpoint := fmt.Sprintf(
		"/prices?srcToken=%s&destToken=%s&amount=%s&side=SELL&network=%d",
		req.InputAsset.Address.Hex(),
		req.OutputAsset.Address.Hex(),
		req.InputAmount.String(),
		s.chainId,
	)

	prices, err := zaphttp.Get[paraswapPricesResponse](ctx, s.client, s.url, pricesEndpoint)
	if err != nil {
		return nil, err
	}

	// The API reports missing liquidity as a route-level error; treat it
	// as "no route" rather than a transport failure.
	if prices.PriceRoute == nil {
		return nil, nil
	}

	expectedAmountOut, ok := math.NewIntFromString(prices.PriceRoute.DestAmount)
	if !ok {
		return nil, fmt.Errorf("paraswap returned invalid dest amount (%s)", prices.PriceRoute.DestAmount)
	}

	transactionsEndpoint := fmt.Sprintf("/transactions/%d?ignoreChecks=true", s.chainId)
	transaction, err := zaphttp.Post[paraswapTransactionsResponse](ctx, s.client, s.url, transactionsEndpoint, paraswapTransactionsRequest{
		SrcToken:   req.InputAsset.Address.Hex(),
		DestToken:  req.OutputAsset.Address.Hex(),
		SrcAmount:  req.InputAmount.String(),
		DestAmount: req.MinOutputAmount.String(),
		UserAddr:   req.ExecutorAddress.Hex(),
	})
	if err != nil {
		return nil, err
	}

	if !common.IsHexAddress(transaction.To) {
		return nil, fmt.Errorf("paraswap returned invalid trader address (%s)", transaction.To)
	}

	return &domain.AggregatorOutput{
		TraderAddress:     common.HexToAddress(transaction.To),
		TradeData:         transaction.Data,
		ExpectedAmountOut: expectedAmountOut,
	}, nil
}
