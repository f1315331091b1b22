package mocks

import (
	"context"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.AssetRegistryClient = &AssetRegistryClientMock{}

// AssetRegistryClientMock is a mock implementation of the
// domain.AssetRegistryClient interface.
type AssetRegistryClientMock struct {
	ListAssetsFunc func(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error)

	// CallCount tracks the number of ListAssets invocations for
	// read-through cache assertions.
	CallCount int
}

func (m *AssetRegistryClientMock) ListAssets(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
	m.CallCount++
	if m.ListAssetsFunc != nil {
		return m.ListAssetsFunc(ctx, blockTag)
	}
	panic("unimplemented")
}
