package types_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/router/types"
)

func newZapRoutesContext(t *testing.T, params map[string]string) echo.Context {
	t.Helper()

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/zap/routes?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func defaultParams() map[string]string {
	return map[string]string{
		"inputMarketId":  "2",
		"inputSymbol":    "WETH",
		"outputMarketId": "3",
		"amountIn":       "1000000000000000000",
		"amountOutMin":   "995000000",
		"txOrigin":       "0x52256ef863a713Bd9138f943691898b09A6Db9a1",
	}
}

func TestGetZapRoutesRequest_UnmarshalHTTPRequest(t *testing.T) {
	subAccountNumber := uint64(3)

	testCases := []struct {
		name        string
		params      func(map[string]string)
		expected    func(*types.GetZapRoutesRequest)
		expectedErr error
	}{
		{
			name:   "happy path with defaults",
			params: func(map[string]string) {},
			expected: func(r *types.GetZapRoutesRequest) {
				r.InputAsset = domain.AssetReference{Id: 2, Symbol: "WETH"}
				r.OutputAsset = domain.AssetReference{Id: 3}
				r.AmountIn = math.NewInt(1_000_000_000_000_000_000)
				r.AmountOutMin = math.NewInt(995_000_000)
				r.TxOrigin = common.HexToAddress("0x52256ef863a713Bd9138f943691898b09A6Db9a1")
			},
		},
		{
			name: "all optional parameters set",
			params: func(p map[string]string) {
				p["slippageTolerance"] = "0.01"
				p["blockTag"] = "123456"
				p["isLiquidation"] = "true"
				p["disallowAggregator"] = "true"
				p["subAccountNumber"] = "3"
			},
			expected: func(r *types.GetZapRoutesRequest) {
				r.InputAsset = domain.AssetReference{Id: 2, Symbol: "WETH"}
				r.OutputAsset = domain.AssetReference{Id: 3}
				r.AmountIn = math.NewInt(1_000_000_000_000_000_000)
				r.AmountOutMin = math.NewInt(995_000_000)
				r.TxOrigin = common.HexToAddress("0x52256ef863a713Bd9138f943691898b09A6Db9a1")
				r.Config = domain.ZapConfig{
					SlippageTolerance:  math.LegacyMustNewDecFromStr("0.01"),
					BlockTag:           123456,
					IsLiquidation:      true,
					DisallowAggregator: true,
					SubAccountNumber:   &subAccountNumber,
				}
			},
		},
		{
			name: "blockTag latest maps to zero",
			params: func(p map[string]string) {
				p["blockTag"] = "latest"
			},
			expected: func(r *types.GetZapRoutesRequest) {
				r.InputAsset = domain.AssetReference{Id: 2, Symbol: "WETH"}
				r.OutputAsset = domain.AssetReference{Id: 3}
				r.AmountIn = math.NewInt(1_000_000_000_000_000_000)
				r.AmountOutMin = math.NewInt(995_000_000)
				r.TxOrigin = common.HexToAddress("0x52256ef863a713Bd9138f943691898b09A6Db9a1")
			},
		},
		{
			name: "missing input market id",
			params: func(p map[string]string) {
				delete(p, "inputMarketId")
			},
			expectedErr: types.ErrInputMarketIdNotSpecified,
		},
		{
			name: "non-numeric input market id",
			params: func(p map[string]string) {
				p["inputMarketId"] = "weth"
			},
			expectedErr: types.ErrInputMarketIdNotValid,
		},
		{
			name: "missing output market id",
			params: func(p map[string]string) {
				delete(p, "outputMarketId")
			},
			expectedErr: types.ErrOutputMarketIdNotSpecified,
		},
		{
			name: "missing amount in",
			params: func(p map[string]string) {
				delete(p, "amountIn")
			},
			expectedErr: types.ErrAmountInNotSpecified,
		},
		{
			name: "non-integer amount in",
			params: func(p map[string]string) {
				p["amountIn"] = "1.5"
			},
			expectedErr: types.ErrAmountInNotValid,
		},
		{
			name: "missing amount out min",
			params: func(p map[string]string) {
				delete(p, "amountOutMin")
			},
			expectedErr: types.ErrAmountOutMinNotSpecified,
		},
		{
			name: "missing tx origin",
			params: func(p map[string]string) {
				delete(p, "txOrigin")
			},
			expectedErr: types.ErrTxOriginNotSpecified,
		},
		{
			name: "malformed tx origin",
			params: func(p map[string]string) {
				p["txOrigin"] = "not-an-address"
			},
			expectedErr: types.ErrTxOriginNotValid,
		},
		{
			name: "malformed slippage tolerance",
			params: func(p map[string]string) {
				p["slippageTolerance"] = "one percent"
			},
			expectedErr: types.ErrSlippageToleranceNotValid,
		},
		{
			name: "malformed block tag",
			params: func(p map[string]string) {
				p["blockTag"] = "pending"
			},
			expectedErr: types.ErrBlockTagNotValid,
		},
		{
			name: "malformed boolean",
			params: func(p map[string]string) {
				p["isLiquidation"] = "maybe"
			},
			expectedErr: domain.ErrBadParamInput,
		},
		{
			name: "malformed sub account number",
			params: func(p map[string]string) {
				p["subAccountNumber"] = "-1"
			},
			expectedErr: types.ErrSubAccountNumberNotValid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := defaultParams()
			tc.params(params)

			var req types.GetZapRoutesRequest
			err := req.UnmarshalHTTPRequest(newZapRoutesContext(t, params))

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)

			var expected types.GetZapRoutesRequest
			tc.expected(&expected)
			require.Equal(t, expected, req)
		})
	}
}

func TestGetZapRoutesRequest_Validate(t *testing.T) {
	validRequest := func() types.GetZapRoutesRequest {
		return types.GetZapRoutesRequest{
			InputAsset:   domain.AssetReference{Id: 2},
			AmountIn:     math.NewInt(100),
			OutputAsset:  domain.AssetReference{Id: 3},
			AmountOutMin: math.NewInt(90),
			TxOrigin:     common.HexToAddress("0x52256ef863a713Bd9138f943691898b09A6Db9a1"),
		}
	}

	testCases := []struct {
		name      string
		mutate    func(*types.GetZapRoutesRequest)
		expectErr bool
	}{
		{
			name:   "valid request",
			mutate: func(*types.GetZapRoutesRequest) {},
		},
		{
			name: "valid request with slippage at the maximum",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.Config.SlippageTolerance = domain.MaxSlippageTolerance
			},
		},
		{
			name: "zero amount in",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.AmountIn = math.ZeroInt()
			},
			expectErr: true,
		},
		{
			name: "negative amount out min",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.AmountOutMin = math.NewInt(-5)
			},
			expectErr: true,
		},
		{
			name: "slippage above the maximum",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.Config.SlippageTolerance = math.LegacyMustNewDecFromStr("0.11")
			},
			expectErr: true,
		},
		{
			name: "negative slippage",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.Config.SlippageTolerance = math.LegacyMustNewDecFromStr("-0.01")
			},
			expectErr: true,
		},
		{
			name: "zero tx origin",
			mutate: func(r *types.GetZapRoutesRequest) {
				r.TxOrigin = common.Address{}
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			if tc.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
