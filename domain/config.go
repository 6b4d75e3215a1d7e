package domain

// Config defines the config for the swap router query server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// PoolsFile is the path to the JSON pool snapshot loaded at startup.
	PoolsFile string `mapstructure:"pools-file"`

	// AssetsFile is the path to the JSON token registry file with denom
	// metadata (symbol, decimals).
	AssetsFile string `mapstructure:"assets-file"`

	CORS *CORSConfig `mapstructure:"cors"`

	// Router encapsulates the router config.
	Router *RouterConfig `mapstructure:"router"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// CORSConfig defines the CORS headers set by the middleware.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig represents error reporting and tracing config.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}

// DefaultConfig defines the default config for the server.
var DefaultConfig = Config{
	ServerAddress: ":9092",

	LoggerFilename:     "swaprouter.log",
	LoggerIsProduction: false,
	LoggerLevel:        "info",

	PoolsFile:  "pools.json",
	AssetsFile: "assets.json",

	CORS: &CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Server-Time",
		AllowedMethods: "HEAD, GET, POST",
		AllowedOrigin:  "*",
	},

	Router: &DefaultRouterConfig,

	OTEL: &OTELConfig{},
}
