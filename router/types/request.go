package types

import (
	"strconv"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/dolomite-exchange/zap-sidecar/domain"
)

// GetZapRoutesRequest represents the parsed /zap/routes request.
type GetZapRoutesRequest struct {
	InputAsset   domain.AssetReference
	AmountIn     math.Int
	OutputAsset  domain.AssetReference
	AmountOutMin math.Int
	TxOrigin     common.Address

	Config domain.ZapConfig
}

// UnmarshalHTTPRequest unmarshals the HTTP request into GetZapRoutesRequest.
// It returns an error if a parameter cannot be parsed; cross-field
// validation is left to Validate.
func (r *GetZapRoutesRequest) UnmarshalHTTPRequest(c echo.Context) error {
	inputMarketIdStr := c.QueryParam("inputMarketId")
	if inputMarketIdStr == "" {
		return ErrInputMarketIdNotSpecified
	}
	inputMarketId, err := strconv.ParseUint(inputMarketIdStr, 10, 64)
	if err != nil {
		return ErrInputMarketIdNotValid
	}
	r.InputAsset = domain.AssetReference{Id: inputMarketId, Symbol: c.QueryParam("inputSymbol")}

	outputMarketIdStr := c.QueryParam("outputMarketId")
	if outputMarketIdStr == "" {
		return ErrOutputMarketIdNotSpecified
	}
	outputMarketId, err := strconv.ParseUint(outputMarketIdStr, 10, 64)
	if err != nil {
		return ErrOutputMarketIdNotValid
	}
	r.OutputAsset = domain.AssetReference{Id: outputMarketId, Symbol: c.QueryParam("outputSymbol")}

	amountInStr := c.QueryParam("amountIn")
	if amountInStr == "" {
		return ErrAmountInNotSpecified
	}
	amountIn, ok := math.NewIntFromString(amountInStr)
	if !ok {
		return ErrAmountInNotValid
	}
	r.AmountIn = amountIn

	amountOutMinStr := c.QueryParam("amountOutMin")
	if amountOutMinStr == "" {
		return ErrAmountOutMinNotSpecified
	}
	amountOutMin, ok := math.NewIntFromString(amountOutMinStr)
	if !ok {
		return ErrAmountOutMinNotValid
	}
	r.AmountOutMin = amountOutMin

	txOrigin := c.QueryParam("txOrigin")
	if txOrigin == "" {
		return ErrTxOriginNotSpecified
	}
	if !common.IsHexAddress(txOrigin) {
		return ErrTxOriginNotValid
	}
	r.TxOrigin = common.HexToAddress(txOrigin)

	if slippageStr := c.QueryParam("slippageTolerance"); slippageStr != "" {
		slippage, err := math.LegacyNewDecFromStr(slippageStr)
		if err != nil {
			return ErrSlippageToleranceNotValid
		}
		r.Config.SlippageTolerance = slippage
	}

	if blockTagStr := c.QueryParam("blockTag"); blockTagStr != "" && blockTagStr != "latest" {
		blockTag, err := strconv.ParseInt(blockTagStr, 10, 64)
		if err != nil {
			return ErrBlockTagNotValid
		}
		r.Config.BlockTag = blockTag
	}

	r.Config.IsLiquidation, err = parseBooleanQueryParam(c, "isLiquidation")
	if err != nil {
		return err
	}

	r.Config.DisallowAggregator, err = parseBooleanQueryParam(c, "disallowAggregator")
	if err != nil {
		return err
	}

	if subAccountStr := c.QueryParam("subAccountNumber"); subAccountStr != "" {
		subAccountNumber, err := strconv.ParseUint(subAccountStr, 10, 64)
		if err != nil {
			return ErrSubAccountNumberNotValid
		}
		r.Config.SubAccountNumber = &subAccountNumber
	}

	return nil
}

// Validate validates the GetZapRoutesRequest.
func (r *GetZapRoutesRequest) Validate() error {
	if !r.AmountIn.IsPositive() {
		return domain.AmountError{Field: "amountIn", Amount: r.AmountIn}
	}

	if !r.AmountOutMin.IsPositive() {
		return domain.AmountError{Field: "amountOutMin", Amount: r.AmountOutMin}
	}

	if err := domain.ValidateSlippageTolerance(r.Config.SlippageTolerance); err != nil {
		return err
	}

	if r.TxOrigin == (common.Address{}) {
		return domain.ExecutorAddressError{Address: r.TxOrigin.Hex()}
	}

	return nil
}

func parseBooleanQueryParam(c echo.Context, param string) (bool, error) {
	value := c.QueryParam(param)
	if value == "" {
		return false, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, domain.ErrBadParamInput
	}

	return parsed, nil
}
