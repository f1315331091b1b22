package types

import "errors"

// Handler errors
var (
	ErrInputMarketIdNotSpecified  = errors.New("inputMarketId is required")
	ErrInputMarketIdNotValid      = errors.New("inputMarketId must be an unsigned integer")
	ErrOutputMarketIdNotSpecified = errors.New("outputMarketId is required")
	ErrOutputMarketIdNotValid     = errors.New("outputMarketId must be an unsigned integer")
	ErrAmountInNotSpecified       = errors.New("amountIn is required")
	ErrAmountInNotValid           = errors.New("amountIn must be an integer in the asset's smallest unit")
	ErrAmountOutMinNotSpecified   = errors.New("amountOutMin is required")
	ErrAmountOutMinNotValid       = errors.New("amountOutMin must be an integer in the asset's smallest unit")
	ErrTxOriginNotSpecified       = errors.New("txOrigin is required")
	ErrTxOriginNotValid           = errors.New("txOrigin must be a valid hex address")
	ErrSlippageToleranceNotValid  = errors.New("slippageTolerance must be a decimal fraction")
	ErrBlockTagNotValid           = errors.New("blockTag must be an integer or \"latest\"")
	ErrSubAccountNumberNotValid   = errors.New("subAccountNumber must be an unsigned integer")
)
