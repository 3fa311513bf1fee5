// Package constants provides shared constants for the finance-calculators application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day count used for staking and simple daily accrual
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Formatting constants
const (
	// CurrencySymbol prefixes every formatted currency amount
	CurrencySymbol = "$"

	// CurrencyDecimals is the fixed precision for currency output
	CurrencyDecimals = 2

	// DefaultPercentDecimals is used when an output does not declare its own precision
	DefaultPercentDecimals = 2

	// DefaultRatioDecimals is used for plain ratios such as the current ratio
	DefaultRatioDecimals = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "fincalc.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. FINCALC_LOGGING_LEVEL
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the shell API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultServerTimeout bounds reading a request and writing its response
	DefaultServerTimeout = 15 * time.Second
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// UnitEpsilon absorbs floating error before a ceiling so that an exact
	// quotient like 1000.0000000001 still yields 1000 units.
	UnitEpsilon = 1e-9

	// MaxInputMagnitude caps the absolute value of any numeric input
	MaxInputMagnitude = 1e15

	// InputResolution is the smallest non-zero magnitude an input keeps;
	// anything closer to zero is read as zero
	InputResolution = 1e-9
)
