package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	assetshttpdelivery "github.com/dolomite-exchange/zap-sidecar/assets/delivery/http"
	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/mocks"
	"github.com/dolomite-exchange/zap-sidecar/log"
)

func serveAssets(t *testing.T, usecase *mocks.AssetsUsecaseMock, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	assetshttpdelivery.NewAssetsHandler(e, usecase, &log.NoOpLogger{})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetAssets(t *testing.T) {
	usecase := &mocks.AssetsUsecaseMock{
		GetAssetsFunc: func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
			return map[uint64]domain.Asset{
				1: {Id: 1, Symbol: "USDC"},
				2: {Id: 2, Symbol: "WETH"},
			}, nil
		},
	}

	rec := serveAssets(t, usecase, "/assets/all")
	require.Equal(t, http.StatusOK, rec.Code)

	var assets map[uint64]domain.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	require.Len(t, assets, 2)
	require.Equal(t, "WETH", assets[2].Symbol)
}

func TestGetAssetById(t *testing.T) {
	usecase := &mocks.AssetsUsecaseMock{
		ResolveAssetFunc: func(ctx context.Context, ref domain.AssetReference, blockTag int64) (domain.Asset, error) {
			if ref.Id == 1 {
				return domain.Asset{Id: 1, Symbol: "USDC"}, nil
			}
			return domain.Asset{}, domain.AssetNotFoundError{Id: ref.Id}
		},
	}

	testCases := []struct {
		name           string
		target         string
		expectedStatus int
	}{
		{
			name:           "known asset",
			target:         "/assets/1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown asset",
			target:         "/assets/99",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			target:         "/assets/usdc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveAssets(t, usecase, tc.target)
			require.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}
