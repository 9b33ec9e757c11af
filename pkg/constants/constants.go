// Package constants provides shared constants for the house-price application.
package constants

// Currency and unit constants
const (
	// CurrencySymbol prefixes every displayed price.
	CurrencySymbol = "₹"

	// PriceUnit is the unit predicted prices are expressed in.
	PriceUnit = "lakhs"

	// DecimalPrecision is the precision for price rounding (2 decimal places)
	DecimalPrecision = 100

	// FallbackPrediction is returned when no model file is configured.
	FallbackPrediction = 45.5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "HOUSE_PRICE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":5110"

	// DefaultClientBaseURL is where the predict command sends requests by default.
	DefaultClientBaseURL = "http://localhost:5110"

	// DefaultMaxBodySizeBytes is the default maximum /predict request body (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitPerSecond is the sustained /predict rate per client IP.
	DefaultRateLimitPerSecond = 5

	// DefaultRateLimitBurst is the /predict burst size per client IP.
	DefaultRateLimitBurst = 10

	// DefaultHistoryLimit is the number of records /api/history returns by default.
	DefaultHistoryLimit = 20

	// MaxHistoryLimit caps the limit query parameter of /api/history.
	MaxHistoryLimit = 100
)

// HTTP routes
const (
	// PredictPath is the fixed prediction route.
	PredictPath = "/predict"

	// FeatureInfoPath serves the feature descriptions.
	FeatureInfoPath = "/feature_info"

	// VersionPath serves build metadata.
	VersionPath = "/api/version"

	// HistoryPath serves recent predictions.
	HistoryPath = "/api/history"
)

// Cache drivers
const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)
