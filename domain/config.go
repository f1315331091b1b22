package domain

// Config defines the config for the zap sidecar server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// ChainId is the EVM chain the sidecar serves.
	ChainId uint64 `mapstructure:"chain-id"`

	// SubgraphURL is the asset registry subgraph endpoint.
	SubgraphURL string `mapstructure:"subgraph-url"`

	// Router encapsulates the zap router config.
	Router *RouterConfig `mapstructure:"router"`

	// Sources encapsulates the external quote source config.
	Sources *SourcesConfig `mapstructure:"sources"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// RouterConfig defines the config for the zap router.
type RouterConfig struct {
	// AssetsCacheExpirySeconds is the TTL of the cached registry snapshot.
	// A non-positive value effectively disables the cache: every read is
	// a miss.
	AssetsCacheExpirySeconds int `mapstructure:"assets-cache-expiry-seconds"`
	// AssetsRefreshIntervalSeconds is the background registry refresh
	// cadence. Zero disables the background refresh.
	AssetsRefreshIntervalSeconds int `mapstructure:"assets-refresh-interval-seconds"`
	// DefaultSlippageTolerance is the slippage fraction applied when the
	// request does not supply one. Decimal string, e.g. "0.005".
	DefaultSlippageTolerance string `mapstructure:"default-slippage-tolerance"`
	// BlockSnapshotCacheSize bounds the LRU of historical per-block
	// registry snapshots.
	BlockSnapshotCacheSize int `mapstructure:"block-snapshot-cache-size"`
}

// SourcesConfig defines the external quote source endpoints.
type SourcesConfig struct {
	OdosURL     string `mapstructure:"odos-url"`
	ParaswapURL string `mapstructure:"paraswap-url"`
	// MaturityEstimatorURL is the off-chain pricing endpoint for
	// fixed-maturity instrument conversions.
	MaturityEstimatorURL string `mapstructure:"maturity-estimator-url"`
}

// CORSConfig defines the CORS handler configuration.
type CORSConfig struct {
	// AllowedHeaders is the value of the Access-Control-Allow-Headers header.
	AllowedHeaders string `mapstructure:"allowed-headers"`
	// AllowedMethods is the value of the Access-Control-Allow-Methods header.
	AllowedMethods string `mapstructure:"allowed-methods"`
	// AllowedOrigin is the value of the Access-Control-Allow-Origin header.
	AllowedOrigin string `mapstructure:"allowed-origin"`
}

// OTELConfig defines the tracing/error reporting configuration.
type OTELConfig struct {
	DSN                string           `mapstructure:"dsn"`
	SampleRate         float64          `mapstructure:"sample-rate"`
	EnableTracing      bool             `mapstructure:"enable-tracing"`
	ProfilesSampleRate float64          `mapstructure:"profiles-sample-rate"`
	Environment        string           `mapstructure:"environment"`
	CustomSampleRate   CustomSampleRate `mapstructure:"custom-sample-rate"`
}

// CustomSampleRate defines per-endpoint trace sampling rates.
type CustomSampleRate struct {
	ZapRoutes float64 `mapstructure:"zap-routes"`
	Other     float64 `mapstructure:"other"`
}
