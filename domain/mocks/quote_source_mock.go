package mocks

import (
	"context"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.QuoteSource = &QuoteSourceMock{}

// QuoteSourceMock is a mock implementation of the domain.QuoteSource
// interface.
type QuoteSourceMock struct {
	NameValue    string
	IsUsableFunc func(chainId uint64) bool
	QuoteFunc    func(ctx context.Context, req domain.QuoteRequest) (*domain.AggregatorOutput, error)
}

func (m *QuoteSourceMock) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *QuoteSourceMock) IsUsable(chainId uint64) bool {
	if m.IsUsableFunc != nil {
		return m.IsUsableFunc(chainId)
	}
	return true
}

func (m *QuoteSourceMock) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.AggregatorOutput, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, req)
	}
	panic("unimplemented")
}
