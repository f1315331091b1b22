package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/dolomite-exchange/zap-sidecar/domain"
	"github.com/dolomite-exchange/zap-sidecar/domain/workerpool"
	"github.com/dolomite-exchange/zap-sidecar/log"
	"github.com/dolomite-exchange/zap-sidecar/slices"
	"github.com/dolomite-exchange/zap-sidecar/zaputil/zaphttp"
)

var _ domain.AssetRegistryClient = &SubgraphClient{}

// SubgraphClient lists tradable assets from the platform subgraph.
//
// Asset ids are fetched first with a lightweight query; full records are then
// fetched in id chunks over a bounded worker pool. Snapshots pinned to an
// explicit block are immutable, so they are memoized in a bounded LRU.
type SubgraphClient struct {
	client *http.Client
	url    string
	logger log.Logger

	// idsPageSize is the number of asset ids fetched per listing query.
	idsPageSize int
	// assetsPageSize is the number of asset records fetched per query.
	assetsPageSize int
	// maxConcurrentPages bounds the parallel page fetches.
	maxConcurrentPages int

	blockSnapshots *expirable.LRU[int64, map[uint64]domain.Asset]
}

const (
	defaultIdsPageSize        = 1000
	defaultAssetsPageSize     = 100
	defaultMaxConcurrentPages = 4

	defaultRequestTimeout = 15 * time.Second
)

// NewSubgraphClient creates a new subgraph-backed asset registry client.
// blockSnapshotCacheSize bounds the historical snapshot LRU.
func NewSubgraphClient(url string, blockSnapshotCacheSize int, logger log.Logger) *SubgraphClient {
	return &SubgraphClient{
		client: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		url:    url,
		logger: logger,

		idsPageSize:        defaultIdsPageSize,
		assetsPageSize:     defaultAssetsPageSize,
		maxConcurrentPages: defaultMaxConcurrentPages,

		blockSnapshots: expirable.NewLRU[int64, map[uint64]domain.Asset](blockSnapshotCacheSize, nil, 0),
	}
}

// graphqlRequest is the subgraph request envelope.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the subgraph response envelope.
type graphqlResponse[T any] struct {
	Data   T `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

type assetIdsData struct {
	Assets []struct {
		Id string `json:"id"`
	} `json:"assets"`
}

type assetsData struct {
	Assets []subgraphAsset `json:"assets"`
}

// subgraphAsset is the raw subgraph asset record.
type subgraphAsset struct {
	Id       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Category string `json:"category"`

	UnwrapperInfo *subgraphConversionInfo `json:"unwrapperInfo"`
	WrapperInfo   *subgraphConversionInfo `json:"wrapperInfo"`

	Pool *struct {
		TotalSupply string `json:"totalSupply"`
		Balances    []struct {
			AssetId string `json:"assetId"`
			Amount  string `json:"amount"`
		} `json:"balances"`
	} `json:"pool"`
}

type subgraphConversionInfo struct {
	Executor            string   `json:"executor"`
	LiquidationExecutor string   `json:"liquidationExecutor"`
	TargetAssetIds      []string `json:"targetAssetIds"`
	Label               string   `json:"label"`
	IsAsync             bool     `json:"isAsync"`
}

const (
	listAssetIdsQuery = `query AssetIds($block: Int, $first: Int!, $skip: Int!) {
  assets(block: $block, first: $first, skip: $skip) {
    id
  }
}`

	listAssetsByIdsQuery = `query AssetsByIds($block: Int, $ids: [String!]!) {
  assets(block: $block, where: { id_in: $ids }) {
    id
    symbol
    name
    address
    decimals
    category
    unwrapperInfo { executor liquidationExecutor targetAssetIds label isAsync }
    wrapperInfo { executor liquidationExecutor targetAssetIds label isAsync }
    pool { totalSupply balances { assetId amount } }
  }
}`
)

// ListAssets implements domain.AssetRegistryClient.
func (c *SubgraphClient) ListAssets(ctx context.Context, blockTag int64) (map[uint64]domain.Asset, error) {
	if blockTag > 0 {
		if snapshot, ok := c.blockSnapshots.Get(blockTag); ok {
			return snapshot, nil
		}
	}

	ids, err := c.listAssetIds(ctx, blockTag)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset ids: %w", err)
	}

	idChunks := slices.Split(ids, c.assetsPageSize)

	tasks := make([]func() ([]subgraphAsset, error), 0, len(idChunks))
	for _, chunk := range idChunks {
		chunk := chunk
		tasks = append(tasks, func() ([]subgraphAsset, error) {
			return c.listAssetsByIds(ctx, blockTag, chunk)
		})
	}

	pages := make([][]subgraphAsset, len(idChunks))
	for _, pageResult := range workerpool.RunBatch(c.maxConcurrentPages, tasks) {
		if pageResult.Err != nil {
			return nil, fmt.Errorf("failed to fetch asset page (%d): %w", pageResult.Index, pageResult.Err)
		}
		pages[pageResult.Index] = pageResult.Result
	}

	assets := make(map[uint64]domain.Asset, len(ids))
	for _, raw := range slices.Merge(pages) {
		asset, err := convertAsset(raw)
		if err != nil {
			return nil, err
		}

		if err := asset.Validate(); err != nil {
			return nil, err
		}

		assets[asset.Id] = asset
	}

	c.logger.Debug("fetched registry snapshot", zap.Int64("block_tag", blockTag), zap.Int("num_assets", len(assets)))

	if blockTag > 0 {
		c.blockSnapshots.Add(blockTag, assets)
	}

	return assets, nil
}

func (c *SubgraphClient) listAssetIds(ctx context.Context, blockTag int64) ([]string, error) {
	var ids []string

	// Page the listing until a short page so that registries larger than one
	// page are not silently truncated.
	for skip := 0; ; skip += c.idsPageSize {
		variables := blockVariables(blockTag)
		variables["first"] = c.idsPageSize
		variables["skip"] = skip

		data, err := query[assetIdsData](ctx, c, listAssetIdsQuery, variables)
		if err != nil {
			return nil, err
		}

		for _, asset := range data.Assets {
			ids = append(ids, asset.Id)
		}

		if len(data.Assets) < c.idsPageSize {
			return ids, nil
		}
	}
}

func (c *SubgraphClient) listAssetsByIds(ctx context.Context, blockTag int64, ids []string) ([]subgraphAsset, error) {
	variables := blockVariables(blockTag)
	variables["ids"] = ids

	data, err := query[assetsData](ctx, c, listAssetsByIdsQuery, variables)
	if err != nil {
		return nil, err
	}

	return data.Assets, nil
}

// query posts one GraphQL query and unwraps the response envelope.
// A package-level function since methods cannot have type parameters.
func query[T any](ctx context.Context, c *SubgraphClient, queryString string, variables map[string]any) (*T, error) {
	response, err := zaphttp.Post[graphqlResponse[T]](ctx, c.client, c.url, "", graphqlRequest{
		Query:     queryString,
		Variables: variables,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("subgraph error: %s", response.Errors[0].Message)
	}

	return &response.Data, nil
}

func blockVariables(blockTag int64) map[string]any {
	variables := map[string]any{}
	if blockTag > 0 {
		variables["block"] = blockTag
	}
	return variables
}

func convertAsset(raw subgraphAsset) (domain.Asset, error) {
	id, err := strconv.ParseUint(raw.Id, 10, 64)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("invalid asset id (%s): %w", raw.Id, err)
	}

	asset := domain.Asset{
		Id:       id,
		Symbol:   raw.Symbol,
		Name:     raw.Name,
		Address:  common.HexToAddress(raw.Address),
		Decimals: raw.Decimals,
	}

	switch raw.Category {
	case "PLAIN", "":
		asset.Category = domain.AssetCategoryPlain
	case "ISOLATION_MODE":
		asset.Category = domain.AssetCategoryIsolationMode
	case "LIQUIDITY_TOKEN":
		asset.Category = domain.AssetCategoryLiquidityToken
	default:
		return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: fmt.Sprintf("unknown category (%s)", raw.Category)}
	}

	if raw.UnwrapperInfo != nil || raw.WrapperInfo != nil {
		// Missing halves surface as a validation error downstream rather
		// than a silent skip.
		pair := &domain.ConversionPair{}
		if raw.UnwrapperInfo != nil {
			descriptor, err := convertConversionInfo(*raw.UnwrapperInfo)
			if err != nil {
				return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: err.Error()}
			}
			pair.Unwrap = descriptor
		}
		if raw.WrapperInfo != nil {
			descriptor, err := convertConversionInfo(*raw.WrapperInfo)
			if err != nil {
				return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: err.Error()}
			}
			pair.Wrap = descriptor
		}
		asset.Conversion = pair
	}

	if raw.Pool != nil {
		totalSupply, ok := math.NewIntFromString(raw.Pool.TotalSupply)
		if !ok {
			return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: fmt.Sprintf("invalid pool total supply (%s)", raw.Pool.TotalSupply)}
		}

		balances := make(map[uint64]math.Int, len(raw.Pool.Balances))
		for _, balance := range raw.Pool.Balances {
			balanceAssetId, err := strconv.ParseUint(balance.AssetId, 10, 64)
			if err != nil {
				return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: fmt.Sprintf("invalid pool balance asset id (%s)", balance.AssetId)}
			}

			amount, ok := math.NewIntFromString(balance.Amount)
			if !ok {
				return domain.Asset{}, domain.AssetConversionError{AssetId: id, Symbol: raw.Symbol, Reason: fmt.Sprintf("invalid pool balance amount (%s)", balance.Amount)}
			}

			balances[balanceAssetId] = amount
		}

		asset.Pool = &domain.PoolState{
			TotalSupply:        totalSupply,
			UnderlyingBalances: balances,
		}
	}

	return asset, nil
}

func convertConversionInfo(raw subgraphConversionInfo) (domain.ConversionDescriptor, error) {
	if !common.IsHexAddress(raw.Executor) {
		return domain.ConversionDescriptor{}, fmt.Errorf("invalid conversion executor address (%s)", raw.Executor)
	}

	descriptor := domain.ConversionDescriptor{
		Executor: common.HexToAddress(raw.Executor),
		Label:    raw.Label,
		IsAsync:  raw.IsAsync,
	}

	if raw.LiquidationExecutor != "" {
		if !common.IsHexAddress(raw.LiquidationExecutor) {
			return domain.ConversionDescriptor{}, fmt.Errorf("invalid liquidation executor address (%s)", raw.LiquidationExecutor)
		}
		liquidationExecutor := common.HexToAddress(raw.LiquidationExecutor)
		descriptor.LiquidationExecutor = &liquidationExecutor
	}

	for _, rawTargetId := range raw.TargetAssetIds {
		targetId, err := strconv.ParseUint(rawTargetId, 10, 64)
		if err != nil {
			return domain.ConversionDescriptor{}, fmt.Errorf("invalid conversion target asset id (%s)", rawTargetId)
		}
		descriptor.TargetAssetIds = append(descriptor.TargetAssetIds, targetId)
	}

	return descriptor, nil
}
