package estimators_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/router/usecase/estimators"
)

func liquidityTokenAsset(totalSupply, underlyingBalance int64) domain.Asset {
	return domain.Asset{
		Id:       4,
		Symbol:   "dGRAIL-LP",
		Category: domain.AssetCategoryLiquidityToken,
		Conversion: &domain.ConversionPair{
			Unwrap: domain.ConversionDescriptor{TargetAssetIds: []uint64{2}},
			Wrap:   domain.ConversionDescriptor{TargetAssetIds: []uint64{2}},
		},
		Pool: &domain.PoolState{
			TotalSupply: math.NewInt(totalSupply),
			UnderlyingBalances: map[uint64]math.Int{
				2: math.NewInt(underlyingBalance),
			},
		},
	}
}

func TestFixedRateEstimator(t *testing.T) {
	estimator := estimators.NewFixedRateEstimator()

	output, err := estimator.Estimate(context.Background(), math.NewInt(12345), 1, domain.EstimateOptions{})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(12345), output.AmountOut)
	require.Empty(t, output.TradeData)
}

func TestPoolShareEstimators(t *testing.T) {
	testCases := []struct {
		name              string
		totalSupply       int64
		underlyingBalance int64
		amountIn          int64
		targetAssetId     uint64

		expectedUnwrapOut int64
		expectedWrapOut   int64
		expectErr         bool
	}{
		{
			name:              "pool worth twice its supply",
			totalSupply:       1_000_000,
			underlyingBalance: 2_000_000,
			amountIn:          500_000,
			targetAssetId:     2,

			expectedUnwrapOut: 1_000_000,
			expectedWrapOut:   250_000,
		},
		{
			name:              "truncating division",
			totalSupply:       3,
			underlyingBalance: 10,
			amountIn:          1,
			targetAssetId:     2,

			expectedUnwrapOut: 3, // 1 * 10 / 3
			expectedWrapOut:   0, // 1 * 3 / 10
		},
		{
			name:              "asset is not an underlying",
			totalSupply:       1_000_000,
			underlyingBalance: 2_000_000,
			amountIn:          500_000,
			targetAssetId:     99,

			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asset := liquidityTokenAsset(tc.totalSupply, tc.underlyingBalance)

			unwrapOutput, unwrapErr := estimators.NewPoolShareUnwrapEstimator(asset).Estimate(context.Background(), math.NewInt(tc.amountIn), tc.targetAssetId, domain.EstimateOptions{})
			wrapOutput, wrapErr := estimators.NewPoolShareWrapEstimator(asset).Estimate(context.Background(), math.NewInt(tc.amountIn), tc.targetAssetId, domain.EstimateOptions{})

			if tc.expectErr {
				require.Error(t, unwrapErr)
				require.Error(t, wrapErr)
				return
			}

			require.NoError(t, unwrapErr)
			require.Equal(t, math.NewInt(tc.expectedUnwrapOut), unwrapOutput.AmountOut)

			require.NoError(t, wrapErr)
			require.Equal(t, math.NewInt(tc.expectedWrapOut), wrapOutput.AmountOut)
		})
	}
}

func TestPoolShareEstimator_MissingPoolState(t *testing.T) {
	asset := liquidityTokenAsset(1, 1)
	asset.Pool = nil

	_, err := estimators.NewPoolShareUnwrapEstimator(asset).Estimate(context.Background(), math.NewInt(100), 2, domain.EstimateOptions{})
	require.Error(t, err)
}

func TestMaturityEstimator(t *testing.T) {
	tradeData := hexutil.Bytes{0xde, 0xad, 0xbe, 0xef}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/estimate", r.URL.Path)

		var request map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Equal(t, "1000000", request["amount_in"])
		require.Equal(t, true, request["is_unwrap"])
		require.Equal(t, "0.010000000000000000", request["slippage_tolerance"])

		w.Header().Set("Content-Type", "application/json")
		// Worst-case output with the 1% slippage already applied.
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"worst_amount_out": "990000",
			"trade_data":       tradeData,
		}))
	}))
	defer server.Close()

	estimator := estimators.NewMaturityEstimator(server.Client(), server.URL, 3, true)

	output, err := estimator.Estimate(context.Background(), math.NewInt(1_000_000), 1, domain.EstimateOptions{
		SlippageTolerance: math.LegacyMustNewDecFromStr("0.01"),
	})
	require.NoError(t, err)

	// The slippage factor is backed out: 990000 / (1 - 0.01) = 1000000.
	require.Equal(t, math.NewInt(1_000_000), output.AmountOut)
	require.Equal(t, tradeData, output.TradeData)
}

func TestMaturityEstimator_ZeroSlippage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"worst_amount_out": "990000",
		}))
	}))
	defer server.Close()

	estimator := estimators.NewMaturityEstimator(server.Client(), server.URL, 3, false)

	// With no slippage the worst amount is the expected amount.
	output, err := estimator.Estimate(context.Background(), math.NewInt(1_000_000), 1, domain.EstimateOptions{})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(990_000), output.AmountOut)
}

func TestMaturityEstimator_EndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	estimator := estimators.NewMaturityEstimator(server.Client(), server.URL, 3, true)

	_, err := estimator.Estimate(context.Background(), math.NewInt(1_000_000), 1, domain.EstimateOptions{})
	require.Error(t, err)
}

func TestFactoryBindings(t *testing.T) {
	factory := estimators.NewFactory(&domain.SourcesConfig{MaturityEstimatorURL: "http://localhost:9093"})

	isolationAsset := domain.Asset{
		Id:       3,
		Symbol:   "dplvGLP",
		Category: domain.AssetCategoryIsolationMode,
		Conversion: &domain.ConversionPair{
			Unwrap: domain.ConversionDescriptor{TargetAssetIds: []uint64{1}},
			Wrap:   domain.ConversionDescriptor{TargetAssetIds: []uint64{1}},
		},
	}

	bindings, err := factory.BindingsFor(isolationAsset)
	require.NoError(t, err)
	require.NotNil(t, bindings.Unwrap)
	require.NotNil(t, bindings.Wrap)

	// Synchronous isolation mode conversions price at par.
	output, err := bindings.Unwrap.Estimate(context.Background(), math.NewInt(777), 1, domain.EstimateOptions{})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(777), output.AmountOut)

	liquidityAsset := liquidityTokenAsset(1_000_000, 2_000_000)
	bindings, err = factory.BindingsFor(liquidityAsset)
	require.NoError(t, err)

	output, err = bindings.Unwrap.Estimate(context.Background(), math.NewInt(100), 2, domain.EstimateOptions{})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), output.AmountOut)

	// Plain assets have no bindings.
	_, err = factory.BindingsFor(domain.Asset{Id: 1, Symbol: "USDC", Category: domain.AssetCategoryPlain})
	require.Error(t, err)
}
