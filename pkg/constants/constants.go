// Package constants provides shared constants for the takhmino calculators.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons
	CurrencyTolerance = 0.01
)

// Gold goal simulation calibration. These are product-tuned values.
const (
	// MaxSimulationMonths caps every month-by-month loop (100 years).
	MaxSimulationMonths = 1200

	// DefaultRandomRuns is the number of randomized runs behind the best/worst range.
	DefaultRandomRuns = 30

	// RangeBestPercentile and RangeWorstPercentile pick the range bounds out of
	// the randomized months-to-reach distribution.
	RangeBestPercentile  = 15.0
	RangeWorstPercentile = 85.0

	// USDBlendWeight and GoldBlendWeight split the effective monthly growth
	// when a USD growth rate is supplied.
	USDBlendWeight  = 0.7
	GoldBlendWeight = 0.3

	// ScenarioDelta is the fixed percentage-point perturbation applied to
	// growth and inflation rates for the optimistic and pessimistic scenarios.
	ScenarioDelta = 10.0

	// PessimisticGrowthFloor is the lowest annual growth rate a pessimistic
	// scenario may carry.
	PessimisticGrowthFloor = -50.0

	// SolverMaxIterations and SolverTolerance bound the required-saving bisection.
	SolverMaxIterations = 60
	SolverTolerance     = 0.001

	// SolverMaxDoublings caps how often the bisection bracket may double
	// before the goal is declared out of reach.
	SolverMaxDoublings = 60
)

// Expense analysis calibration.
const (
	// IncomeTierLow and IncomeTierHigh split peer benchmarks into three income tiers.
	IncomeTierLow  = 20_000_000.0
	IncomeTierHigh = 40_000_000.0

	// DarkMoneyAllowancePercent is the share of income flexible spending may use
	// before the excess counts as dark money.
	DarkMoneyAllowancePercent = 15.0

	// DarkMoneyReportPercent is the minimum excess (as share of income) worth reporting.
	DarkMoneyReportPercent = 3.0

	// HealthFillerScore is the constant component of the health score.
	HealthFillerScore = 60.0

	// MaxLeaks is the number of leak categories reported.
	MaxLeaks = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Tool identifiers used by the run log and the HTTP API.
const (
	ToolLoan            = "loan"
	ToolGold            = "gold-goal"
	ToolExpense         = "expense-leak"
	ToolPurchasingPower = "purchasing-power"
)

// Application identity and display defaults.
const (
	// ServiceName names the service in traces and metrics.
	ServiceName = "takhmino"

	// DefaultLocale is the display locale when none is configured.
	DefaultLocale = "fa-IR"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimit is the number of requests allowed per client per window
	DefaultRateLimit = 60

	// DefaultReadHeaderTimeout bounds how long a client may take to send headers
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the API
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultRunListLimit is the default page size for run history listings
	DefaultRunListLimit = 20

	// MaxRunListLimit caps run history listings
	MaxRunListLimit = 100
)
