package main

import (
	"github.com/dolomite-exchange/zap-sidecar/domain"
)

// DefaultConfig defines the default config for the zap sidecar server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "zap-sidecar.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	ChainId: 42161,

	SubgraphURL: "http://localhost:8000/subgraphs/name/dolomite/margin-arbitrum",

	Router: &domain.RouterConfig{
		AssetsCacheExpirySeconds:     300, // 5 minutes
		AssetsRefreshIntervalSeconds: 60,
		DefaultSlippageTolerance:     "0.005",
		BlockSnapshotCacheSize:       128,
	},

	Sources: &domain.SourcesConfig{
		OdosURL:              "https://api.odos.xyz",
		ParaswapURL:          "https://api.paraswap.io",
		MaturityEstimatorURL: "",
	},
}
