package mocks

import (
	"github.com/dolomite-exchange/zap-sidecar/domain"
)

var _ domain.EstimatorFactory = &EstimatorFactoryMock{}

// EstimatorFactoryMock is a mock implementation of the
// domain.EstimatorFactory interface.
type EstimatorFactoryMock struct {
	BindingsForFunc func(asset domain.Asset) (domain.EstimatorBindings, error)
}

func (m *EstimatorFactoryMock) BindingsFor(asset domain.Asset) (domain.EstimatorBindings, error) {
	if m.BindingsForFunc != nil {
		return m.BindingsForFunc(asset)
	}
	panic("unimplemented")
}
