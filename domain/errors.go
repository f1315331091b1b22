package domain

import (
	"errors"
	"fmt"
	"net/http"

	"cosmossdk.io/math"
)

var (
	// ErrInternalServerError will throw if any Internal Server Error happens.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item does not exist.
	ErrNotFound = errors.New("your requested item is not found")
	// ErrBadParamInput will throw if the given request-body or params are not valid.
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrInvalidPlanShape is returned when a produced zap plan violates the
	// path/amounts/steps length invariants.
	ErrInvalidPlanShape = errors.New("zap plan shape is invalid")
)

// AssetNotFoundError is returned when an asset reference cannot be resolved
// against the registry snapshot. It names both the id and the symbol the
// caller supplied so that stale metadata can be diagnosed.
type AssetNotFoundError struct {
	Id     uint64
	Symbol string
}

func (e AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset (%s) with id (%d) is not found in the asset registry", e.Symbol, e.Id)
}

// AssetConversionError is a fatal registry configuration error: an asset's
// category and its conversion descriptors disagree.
type AssetConversionError struct {
	AssetId uint64
	Symbol  string
	Reason  string
}

func (e AssetConversionError) Error() string {
	return fmt.Sprintf("asset (%s) with id (%d) has invalid conversion metadata: %s", e.Symbol, e.AssetId, e.Reason)
}

// AmountError is returned when a request amount is not strictly positive.
type AmountError struct {
	Field  string
	Amount math.Int
}

func (e AmountError) Error() string {
	return fmt.Sprintf("%s (%s) must be positive", e.Field, e.Amount)
}

// SlippageToleranceError is returned when the requested slippage tolerance
// is outside the accepted [0, 0.1] range.
type SlippageToleranceError struct {
	SlippageTolerance math.LegacyDec
}

func (e SlippageToleranceError) Error() string {
	return fmt.Sprintf("slippage tolerance (%s) must be in range [0, %s]", e.SlippageTolerance, MaxSlippageTolerance)
}

// ExecutorAddressError is returned when the executor address fails the
// address format check.
type ExecutorAddressError struct {
	Address string
}

func (e ExecutorAddressError) Error() string {
	return fmt.Sprintf("executor address (%s) is not a valid hex address", e.Address)
}

// ConversionEstimateError wraps a failure to price a mandatory conversion
// step. Such a failure invalidates every candidate plan because all plans
// share the conversion estimate.
type ConversionEstimateError struct {
	AssetId   uint64
	Symbol    string
	Direction string
	Err       error
}

func (e ConversionEstimateError) Error() string {
	return fmt.Sprintf("failed to estimate %s conversion for asset (%s) with id (%d): %s", e.Direction, e.Symbol, e.AssetId, e.Err)
}

func (e ConversionEstimateError) Unwrap() error {
	return e.Err
}

// GetStatusCode returns the HTTP status code for the given error.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch err.(type) {
	case AssetNotFoundError:
		return http.StatusNotFound
	case AmountError, SlippageToleranceError, ExecutorAddressError:
		return http.StatusBadRequest
	}

	switch err {
	case ErrInternalServerError:
		return http.StatusInternalServerError
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represents the response error struct.
type ResponseError struct {
	Message string `json:"message"`
}
